package task

import (
	internalApp "github.com/inkwells/smart-note-service/internal/app"
	"github.com/inkwells/smart-note-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager wires business tasks into the scheduler
// Manager 将业务任务接入调度器
type Manager struct {
	logger    *zap.Logger
	app       *internalApp.App
	scheduler *Scheduler
}

func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, app *internalApp.App) *Manager {
	return &Manager{
		logger:    logger,
		app:       app,
		scheduler: NewScheduler(logger, sc),
	}
}

// RegisterTasks 注册所有业务任务
func (m *Manager) RegisterTasks() error {
	m.scheduler.AddTask(newAnalyticsRefreshTask(m.app))
	return nil
}

// Start 启动任务调度器
func (m *Manager) Start() {
	m.scheduler.Start()
}
