// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"

	"github.com/inkwells/smart-note-service/internal/dao"
	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/service"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	UserRepo        domain.UserRepository
	NoteRepo        domain.NoteRepository
	NoteHistoryRepo domain.NoteHistoryRepository

	// Service 层
	UserService      service.UserService
	NoteService      service.NoteService
	AnalyticsService service.AnalyticsService
	Summarizer       service.Summarizer

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 关闭控制
	shutdownCh chan struct{}
}

// NewApp 创建应用容器实例，初始化所有依赖并进行依赖注入
func NewApp(config *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     config,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	a.Dao = dao.New(db, dao.WithLogger(logger))

	tokenManager, err := pkgapp.NewTokenManager(pkgapp.TokenConfig{
		PrivateKeyPath: config.Security.JWT.PrivateKeyPath,
		PublicKeyPath:  config.Security.JWT.PublicKeyPath,
		Issuer:         config.Security.JWT.Issuer,
		AccessExpiry:   config.GetAccessTokenExpiry(),
		RefreshExpiry:  config.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}
	a.TokenManager = tokenManager

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteHistoryRepo = dao.NewNoteHistoryRepository(a.Dao)

	// 初始化摘要协作方
	if config.Summarizer.APIKey != "" {
		a.Summarizer = service.NewOpenAISummarizer(service.SummarizerConfig{
			APIKey:  config.Summarizer.APIKey,
			BaseURL: config.Summarizer.BaseURL,
			Model:   config.Summarizer.Model,
			Prompt:  config.Summarizer.Prompt,
			Timeout: config.GetSummarizerTimeout(),
		}, logger)
	} else {
		logger.Warn("summarizer api key not configured, notes will store empty summarizations")
		a.Summarizer = service.NewNoopSummarizer()
	}

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.NoteHistoryRepo, a.Summarizer, logger)
	a.AnalyticsService = service.NewAnalyticsService(a.NoteRepo, service.AnalyticsServiceConfig{
		CacheTTL: config.GetAnalyticsCacheTTL(),
	}, logger)

	logger.Info("App container initialized successfully")
	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		a.logger.Info("database connection closed")
	}
	return nil
}

// Shutdown 优雅关闭应用容器
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	done := make(chan error, 1)
	go func() {
		done <- a.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}
