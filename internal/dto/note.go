package dto

import "github.com/inkwells/smart-note-service/pkg/timex"

// NoteCreateRequest 创建笔记请求
type NoteCreateRequest struct {
	Title string `json:"title" binding:"required,min=3,max=150"`
	Text  string `json:"text" binding:"required"`
}

// NoteUpdateRequest partial update; a nil field inherits the current value
// NoteUpdateRequest 部分更新；nil 字段继承当前值
type NoteUpdateRequest struct {
	Title *string `json:"title" binding:"omitempty,min=3,max=150"`
	Text  *string `json:"text" binding:"omitempty,min=1"`
}

// Note 笔记响应
type Note struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	Summarization string     `json:"summarization"`
	CreatedAt     timex.Time `json:"created_at"`
	UpdatedAt     timex.Time `json:"updated_at"`
}

// NoteHistoryEntry 单条历史记录响应
type NoteHistoryEntry struct {
	ID        int64      `json:"id"`
	NoteID    int64      `json:"note_id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	CreatedAt timex.Time `json:"created_at"`
}

// NoteWithHistory 笔记及其历史记录响应
type NoteWithHistory struct {
	Note
	History []*NoteHistoryEntry `json:"note_history"`
}
