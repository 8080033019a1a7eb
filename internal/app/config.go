package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	RunMode           string `yaml:"run-mode" default:"release"`
	HttpPort          string `yaml:"http-port" default:":8000"`
	PrivateHttpListen string `yaml:"private-http-listen" default:":8001"`
	ReadTimeout       int    `yaml:"read-timeout" default:"60"`
	WriteTimeout      int    `yaml:"write-timeout" default:"60"`
}

// AppSectionConfig 应用行为配置
type AppSectionConfig struct {
	// DefaultContextTimeout request context timeout in seconds
	// DefaultContextTimeout 请求上下文超时（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file" default:"storage/logs/smart-note-service.log"`
	Production bool   `yaml:"production" default:"false"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string `yaml:"type" default:"sqlite"`
	Path            string `yaml:"path" default:"storage/database/smart-note.db"`
	UserName        string `yaml:"username"`
	Password        string `yaml:"password"`
	Host            string `yaml:"host" default:"127.0.0.1:3306"`
	Name            string `yaml:"name"`
	TablePrefix     string `yaml:"table-prefix" default:"sns_"`
	AutoMigrate     bool   `yaml:"auto-migrate" default:"true"`
	Charset         string `yaml:"charset" default:"utf8mb4"`
	ParseTime       bool   `yaml:"parse-time" default:"true"`
	MaxIdleConns    int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns    int    `yaml:"max-open-conns" default:"30"`
	ConnMaxLifetime int    `yaml:"conn-max-lifetime" default:"7200"`
	ConnMaxIdleTime int    `yaml:"conn-max-idle-time" default:"600"`
}

// JWTConfig RS256 令牌配置
type JWTConfig struct {
	PrivateKeyPath     string `yaml:"private-key-path" default:"storage/certs/jwt_private.pem"`
	PublicKeyPath      string `yaml:"public-key-path" default:"storage/certs/jwt_public.pem"`
	Issuer             string `yaml:"issuer" default:"smart-note-service"`
	AccessTokenExpiry  string `yaml:"access-token-expiry" default:"30m"`
	RefreshTokenExpiry string `yaml:"refresh-token-expiry" default:"720h"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// SummarizerConfig 摘要协作方配置
type SummarizerConfig struct {
	// APIKey empty disables summarization, notes then store an empty summary
	// APIKey 为空时禁用摘要，笔记存储空摘要
	APIKey  string `yaml:"api-key"`
	BaseURL string `yaml:"base-url"`
	Model   string `yaml:"model" default:"gpt-4o-mini"`
	Prompt  string `yaml:"prompt"`
	Timeout string `yaml:"timeout" default:"10s"`
}

// AnalyticsConfig 统计配置
type AnalyticsConfig struct {
	RefreshInterval string `yaml:"refresh-interval" default:"5m"`
	CacheTTL        string `yaml:"cache-ttl" default:"1m"`
	StartupRefresh  bool   `yaml:"startup-refresh" default:"true"`
}

// AppConfig 应用总配置
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	App        AppSectionConfig `yaml:"app"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Security   SecurityConfig   `yaml:"security"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
}

// LoadConfig reads the YAML config, applying struct defaults before and after
// unmarshalling so omitted sections still get their defaults.
// LoadConfig 读取 YAML 配置，在反序列化前后各应用一次结构体默认值，
// 保证省略的配置段也能获得默认值。
func LoadConfig(path string) (*AppConfig, string, error) {
	config := &AppConfig{}
	if err := defaults.Set(config); err != nil {
		return nil, "", errors.Wrap(err, "set config defaults")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, "", errors.Wrap(err, "parse config file")
	}
	if err := defaults.Set(config); err != nil {
		return nil, "", errors.Wrap(err, "set config defaults")
	}

	realpath, err := filepath.Abs(path)
	if err != nil {
		realpath = path
	}
	return config, realpath, nil
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetAccessTokenExpiry 访问令牌有效期
func (c *AppConfig) GetAccessTokenExpiry() time.Duration {
	return parseDuration(c.Security.JWT.AccessTokenExpiry, 30*time.Minute)
}

// GetRefreshTokenExpiry 刷新令牌有效期
func (c *AppConfig) GetRefreshTokenExpiry() time.Duration {
	return parseDuration(c.Security.JWT.RefreshTokenExpiry, 30*24*time.Hour)
}

// GetSummarizerTimeout 摘要请求超时
func (c *AppConfig) GetSummarizerTimeout() time.Duration {
	return parseDuration(c.Summarizer.Timeout, 10*time.Second)
}

// GetAnalyticsRefreshInterval 统计刷新间隔
func (c *AppConfig) GetAnalyticsRefreshInterval() time.Duration {
	return parseDuration(c.Analytics.RefreshInterval, 5*time.Minute)
}

// GetAnalyticsCacheTTL 统计缓存保鲜时长
func (c *AppConfig) GetAnalyticsCacheTTL() time.Duration {
	return parseDuration(c.Analytics.CacheTTL, time.Minute)
}

// GetDefaultContextTimeout 请求上下文超时
func (c *AppConfig) GetDefaultContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
