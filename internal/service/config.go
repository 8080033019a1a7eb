// Package service 实现业务逻辑层
package service

import "time"

// AnalyticsServiceConfig 统计服务配置
type AnalyticsServiceConfig struct {
	// CacheTTL how long a computed snapshot stays fresh
	// CacheTTL 统计快照的保鲜时长
	CacheTTL time.Duration
	// CommonWordsLimit number of top words reported
	// CommonWordsLimit 返回的高频词数量
	CommonWordsLimit int
	// RankedNotesLimit number of longest/shortest notes reported
	// RankedNotesLimit 返回的最长/最短笔记数量
	RankedNotesLimit int
}

// ServiceConfig Service 层配置
type ServiceConfig struct {
	Analytics AnalyticsServiceConfig
}
