package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create persists a new user
	// Create 持久化新用户
	Create(ctx context.Context, user *User) (*User, error)
	// GetByUID fetches a user by id, gorm.ErrRecordNotFound when missing
	// GetByUID 按 ID 查询用户，不存在时返回 gorm.ErrRecordNotFound
	GetByUID(ctx context.Context, uid int64) (*User, error)
	// GetByUsername fetches a user by username, gorm.ErrRecordNotFound when missing
	// GetByUsername 按用户名查询用户，不存在时返回 gorm.ErrRecordNotFound
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// NoteRepository 笔记仓储接口
// All single-note lookups are scoped by (id, owner).
// 所有单条笔记查询都以 (id, 所有者) 为范围。
type NoteRepository interface {
	// Create persists a new note
	// Create 持久化新笔记
	Create(ctx context.Context, note *Note) (*Note, error)
	// Get fetches one note owned by uid
	// Get 查询 uid 拥有的单条笔记
	Get(ctx context.Context, id int64, uid int64) (*Note, error)
	// ListByUser returns the user's notes ordered by updated_at desc
	// ListByUser 返回用户的笔记，按 updated_at 倒序
	ListByUser(ctx context.Context, uid int64) ([]*Note, error)
	// ListAll returns every note in the system, updated_at desc
	// ListAll 返回系统内全部笔记，按 updated_at 倒序
	ListAll(ctx context.Context) ([]*Note, error)
	// UpdateWithHistory snapshots the current content into history and applies
	// the new content in one transaction, both stamped with the same time.
	// UpdateWithHistory 在单个事务中将当前内容快照进历史表并应用新内容，
	// 两者写入相同的时间戳。
	UpdateWithHistory(ctx context.Context, id int64, uid int64, title, text, summarization string) (*Note, error)
	// DeleteWithHistory removes the note and its history rows in one
	// transaction, reporting whether the note existed.
	// DeleteWithHistory 在单个事务中删除笔记及其历史记录，
	// 并报告笔记是否存在。
	DeleteWithHistory(ctx context.Context, id int64, uid int64) (bool, error)
}

// NoteHistoryRepository 笔记历史仓储接口
type NoteHistoryRepository interface {
	// ListByNote returns history rows ordered by created_at desc
	// ListByNote 返回历史记录，按 created_at 倒序
	ListByNote(ctx context.Context, noteID int64) ([]*NoteHistory, error)
	// CountByNote counts history rows for a note
	// CountByNote 统计笔记的历史记录数
	CountByNote(ctx context.Context, noteID int64) (int64, error)
}
