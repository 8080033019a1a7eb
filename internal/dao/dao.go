// Package dao 提供数据库引擎与仓储实现
package dao

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/inkwells/smart-note-service/internal/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string // sqlite / mysql / postgres
	Path            string // sqlite file path // sqlite 文件路径
	UserName        string
	Password        string
	Host            string // host or host:port // 主机或 主机:端口
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds // 秒
	ConnMaxIdleTime int // seconds // 秒
	RunMode         string
}

// Dao 仓储依赖容器
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Option Dao 构造选项
type Option func(*Dao)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = logger
	}
}

// New creates the Dao container
// New 创建 Dao 容器
func New(db *gorm.DB, options ...Option) *Dao {
	d := &Dao{
		db:     db,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// DB exposes the underlying gorm handle
// DB 暴露底层 gorm 句柄
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngineWithConfig builds the gorm engine for the configured driver
// NewDBEngineWithConfig 按配置的驱动构建 gorm 引擎
func NewDBEngineWithConfig(config DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch strings.ToLower(config.Type) {
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(config.Path)
	case "mysql":
		charset := config.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			config.UserName, config.Password, config.Host, config.Name, charset, config.ParseTime)
		dialector = mysql.Open(dsn)
	case "postgres", "postgresql":
		host, port := config.Host, "5432"
		if h, p, err := net.SplitHostPort(config.Host); err == nil {
			host, port = h, p
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, config.UserName, config.Password, config.Name)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	logMode := gormlogger.Default.LogMode(gormlogger.Silent)
	if config.RunMode == "debug" {
		logMode = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
		// surfaces unique-index violations as gorm.ErrDuplicatedKey
		// 将唯一索引冲突转换为 gorm.ErrDuplicatedKey
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   config.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if config.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(config.ConnMaxLifetime) * time.Second)
	}
	if config.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(config.ConnMaxIdleTime) * time.Second)
	}

	if config.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		if lg != nil {
			lg.Info("database migrated", zap.String("type", config.Type))
		}
	}

	return db, nil
}
