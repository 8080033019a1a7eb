package app

// 构建信息，由 -ldflags 注入
var (
	// Name 服务名称
	Name = "smart-note-service"
	// Version 服务版本
	Version = "1.0.0"
	// GitTag 构建时的 git 提交
	GitTag = "dev"
	// BuildTime 构建时间
	BuildTime = "unknown"
)
