package domain

import "github.com/inkwells/smart-note-service/pkg/timex"

// Note a user owned note with its stored summarization
// Note 用户拥有的笔记及其已存储的摘要
type Note struct {
	ID            int64
	UserID        int64
	Title         string
	Text          string
	Summarization string
	CreatedAt     timex.Time
	UpdatedAt     timex.Time
}

// NoteHistory a pre-update snapshot of note content. CreatedAt is the update
// event time and equals the note's UpdatedAt written in the same transaction.
// NoteHistory 更新前的笔记内容快照。CreatedAt 是更新事件时间，
// 与同一事务中写入的笔记 UpdatedAt 相同。
type NoteHistory struct {
	ID        int64
	NoteID    int64
	Title     string
	Text      string
	CreatedAt timex.Time
}
