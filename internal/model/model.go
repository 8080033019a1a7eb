// Package model 定义 gorm 数据模型与迁移
package model

import "gorm.io/gorm"

// AutoMigrate creates or updates all tables
// AutoMigrate 创建或更新所有数据表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Note{},
		&NoteHistory{},
	)
}
