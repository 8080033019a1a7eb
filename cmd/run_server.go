package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/inkwells/smart-note-service/internal/app"
	"github.com/inkwells/smart-note-service/internal/dao"
	"github.com/inkwells/smart-note-service/internal/routers"
	"github.com/inkwells/smart-note-service/internal/task"
	"github.com/inkwells/smart-note-service/pkg/fileurl"
	"github.com/inkwells/smart-note-service/pkg/logger"
	"github.com/inkwells/smart-note-service/pkg/safe_close"
	"github.com/inkwells/smart-note-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultShutdownTimeout default shutdown timeout duration
// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

type Server struct {
	logger            *zap.Logger
	config            *internalApp.AppConfig
	db                *gorm.DB
	ut                *ut.UniversalTranslator
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App
}

func NewServer(runEnv *runFlags) (*Server, error) {

	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Determine run mode
	// 确定运行模式
	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	if len(runMode) > 0 {
		appConfig.Server.RunMode = runMode
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	// First run generates the signing key pair
	// 首次运行时生成签名密钥对
	if err := initSigningKeys(appConfig, s.logger); err != nil {
		return nil, fmt.Errorf("initSigningKeys: %w", err)
	}

	db, err := initDatabaseWithConfig(appConfig, s.logger)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	uni, err := initValidator()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	initScheduler(s)

	banner := `
   _____                      __     _   __      __
  / ___/____ ___  ____ ______/ /_   / | / /___  / /____
  \__ \/ __ '__ \/ __ '/ ___/ __/  /  |/ / __ \/ __/ _ \
 ___/ / / / / / / /_/ / /  / /_   / /|  / /_/ / /_/  __/
/____/_/ /_/ /_/\__,_/_/   \__/  /_/ |_/\____/\__/\___/  `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// Start HTTP API server
	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		attachHTTPServer(s, s.httpServer, "api service")
	}

	// Start private HTTP server (metrics, pprof)
	// 启动私有 HTTP 服务器（指标、pprof）
	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouter(appConfig.Server.RunMode, s.logger),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		attachHTTPServer(s, s.privateHttpServer, "private api service")
	}

	// Register App Container graceful shutdown
	// 注册 App Container 的优雅关闭
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()

			if err := s.app.Shutdown(ctx); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			}
		}
	})

	return s, nil
}

// attachHTTPServer runs the server until the close signal, then drains it
// attachHTTPServer 运行服务器直到收到关闭信号，然后排空连接
func attachHTTPServer(s *Server, server *http.Server, name string) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- server.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.logger, s.sc, s.app)
	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}
	manager.Start()
}

// initLoggerWithConfig initializes logger (using injected config)
// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, config *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      config.Log.Level,
		File:       config.Log.File,
		Production: config.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg
	return nil
}

// initValidator wires validator/v10 into gin binding with json field names and
// english translations.
// initValidator 将 validator/v10 接入 gin 绑定，
// 使用 json 字段名并注册英文翻译。
func initValidator() (*ut.UniversalTranslator, error) {
	var uni *ut.UniversalTranslator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if ok {
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni = ut.New(enLocale, enLocale)

		enTran, _ := uni.GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
			return nil, err
		}
	}

	return uni, nil
}

// initSigningKeys generates the RS256 key pair when missing
// initSigningKeys 在密钥缺失时生成 RS256 密钥对
func initSigningKeys(config *internalApp.AppConfig, lg *zap.Logger) error {
	jwtConfig := config.Security.JWT
	created := !fileurl.IsExist(jwtConfig.PrivateKeyPath) || !fileurl.IsExist(jwtConfig.PublicKeyPath)

	if err := util.GenerateRSAKeyFiles(jwtConfig.PrivateKeyPath, jwtConfig.PublicKeyPath, util.DefaultRSAKeyBits); err != nil {
		return err
	}
	if created {
		lg.Warn("signing key pair generated",
			zap.String("privateKey", jwtConfig.PrivateKeyPath),
			zap.String("publicKey", jwtConfig.PublicKeyPath))
	}
	return nil
}

// initDatabaseWithConfig initializes database (using injected config)
// initDatabaseWithConfig 初始化数据库（使用注入的配置）
func initDatabaseWithConfig(config *internalApp.AppConfig, lg *zap.Logger) (*gorm.DB, error) {
	dbConfig := dao.DatabaseConfig{
		Type:            config.Database.Type,
		Path:            config.Database.Path,
		UserName:        config.Database.UserName,
		Password:        config.Database.Password,
		Host:            config.Database.Host,
		Name:            config.Database.Name,
		TablePrefix:     config.Database.TablePrefix,
		AutoMigrate:     config.Database.AutoMigrate,
		Charset:         config.Database.Charset,
		ParseTime:       config.Database.ParseTime,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
		RunMode:         config.Server.RunMode,
	}

	return dao.NewDBEngineWithConfig(dbConfig, lg)
}

// initStorageWithConfig initializes storage directories (using injected config)
// initStorageWithConfig 初始化存储目录（使用注入的配置）
func initStorageWithConfig(config *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(config.Log.File),
		filepath.Dir(config.Database.Path),
		filepath.Dir(config.Security.JWT.PrivateKeyPath),
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp gets App Container
// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig gets app configuration
// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
