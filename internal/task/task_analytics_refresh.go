package task

import (
	"context"
	"time"

	internalApp "github.com/inkwells/smart-note-service/internal/app"
)

// analyticsRefreshTask keeps the analytics snapshot warm so public reads stay
// cheap even on a cold cache.
// analyticsRefreshTask 预热统计快照，即使缓存冷启动公共读取也保持低开销。
type analyticsRefreshTask struct {
	app      *internalApp.App
	interval time.Duration
	startup  bool
}

var _ Task = (*analyticsRefreshTask)(nil)

func newAnalyticsRefreshTask(app *internalApp.App) *analyticsRefreshTask {
	config := app.Config()
	return &analyticsRefreshTask{
		app:      app,
		interval: config.GetAnalyticsRefreshInterval(),
		startup:  config.Analytics.StartupRefresh,
	}
}

func (t *analyticsRefreshTask) Name() string {
	return "analytics_refresh"
}

func (t *analyticsRefreshTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *analyticsRefreshTask) IsStartupRun() bool {
	return t.startup
}

func (t *analyticsRefreshTask) Run(ctx context.Context) error {
	if t.app.IsShuttingDown() {
		return nil
	}
	return t.app.AnalyticsService.Refresh(ctx)
}
