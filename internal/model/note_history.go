package model

import "github.com/inkwells/smart-note-service/pkg/timex"

// NoteHistory 笔记历史表模型
// Append-only: rows are only ever removed together with the owning note.
// 仅追加：历史记录只会随所属笔记一起删除。
type NoteHistory struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	NoteID    int64      `gorm:"column:note_id;index;not null"`
	Title     string     `gorm:"column:title;size:150;not null"`
	Text      string     `gorm:"column:text;type:text;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
}
