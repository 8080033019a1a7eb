package model

import "github.com/inkwells/smart-note-service/pkg/timex"

// Note 笔记表模型
// Timestamps are written by the repository so that a note and its history
// snapshot share the exact same update time.
// 时间戳由仓储层写入，保证笔记与其历史快照共享完全相同的更新时间。
type Note struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64      `gorm:"column:user_id;index;not null"`
	Title         string     `gorm:"column:title;size:150;not null"`
	Text          string     `gorm:"column:text;type:text;not null"`
	Summarization string     `gorm:"column:summarization;type:text;not null"`
	CreatedAt     timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}
