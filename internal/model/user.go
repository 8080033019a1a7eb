package model

import "github.com/inkwells/smart-note-service/pkg/timex"

// User 用户表模型
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement"`
	Username  string     `gorm:"column:username;size:150;uniqueIndex;not null"`
	Password  string     `gorm:"column:password;size:255;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}
