package dao

import (
	"context"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/model"
	"github.com/inkwells/smart-note-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// noteRepository domain.NoteRepository 的 gorm 实现
type noteRepository struct {
	dao *Dao
}

var _ domain.NoteRepository = (*noteRepository)(nil)

func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := noteToModel(note)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return noteToDomain(m), nil
}

func (r *noteRepository) Get(ctx context.Context, id int64, uid int64) (*domain.Note, error) {
	var m model.Note
	if err := r.dao.DB().WithContext(ctx).
		Where("id = ? AND user_id = ?", id, uid).
		First(&m).Error; err != nil {
		return nil, err
	}
	return noteToDomain(&m), nil
}

func (r *noteRepository) ListByUser(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	if err := r.dao.DB().WithContext(ctx).
		Where("user_id = ?", uid).
		Order("updated_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return notesToDomain(ms), nil
}

func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	if err := r.dao.DB().WithContext(ctx).
		Order("updated_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return notesToDomain(ms), nil
}

// UpdateWithHistory re-reads the note under a row lock, snapshots the current
// content into note_history and applies the new content. Snapshot and update
// carry the same timestamp. sqlite has no FOR UPDATE; its single writer plus
// the updated_at guard keep the history serial there.
// UpdateWithHistory 在行锁下重新读取笔记，把当前内容快照进 note_history
// 并应用新内容。快照与更新携带相同的时间戳。sqlite 不支持 FOR UPDATE，
// 依赖其单写入者特性与 updated_at 守卫保证历史串行。
func (r *noteRepository) UpdateWithHistory(ctx context.Context, id int64, uid int64, title, text, summarization string) (*domain.Note, error) {
	var result *model.Note
	now := timex.Now()

	err := r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ? AND user_id = ?", id, uid)
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current model.Note
		if err := query.First(&current).Error; err != nil {
			return err
		}

		history := &model.NoteHistory{
			NoteID:    current.ID,
			Title:     current.Title,
			Text:      current.Text,
			CreatedAt: now,
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		update := tx.Model(&model.Note{}).
			Where("id = ? AND user_id = ? AND updated_at = ?", id, uid, current.UpdatedAt).
			Updates(map[string]any{
				"title":         title,
				"text":          text,
				"summarization": summarization,
				"updated_at":    now,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			// concurrent writer got in between the read and the update
			// 读与写之间有并发写入者插队
			return gorm.ErrRecordNotFound
		}

		current.Title = title
		current.Text = text
		current.Summarization = summarization
		current.UpdatedAt = now
		result = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return noteToDomain(result), nil
}

// DeleteWithHistory removes the note together with its history rows
// DeleteWithHistory 删除笔记及其全部历史记录
func (r *noteRepository) DeleteWithHistory(ctx context.Context, id int64, uid int64) (bool, error) {
	found := false

	err := r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, uid).Delete(&model.Note{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		found = true

		return tx.Where("note_id = ?", id).Delete(&model.NoteHistory{}).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func noteToModel(n *domain.Note) *model.Note {
	return &model.Note{
		ID:            n.ID,
		UserID:        n.UserID,
		Title:         n.Title,
		Text:          n.Text,
		Summarization: n.Summarization,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func noteToDomain(m *model.Note) *domain.Note {
	return &domain.Note{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Text:          m.Text,
		Summarization: m.Summarization,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func notesToDomain(ms []*model.Note) []*domain.Note {
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, noteToDomain(m))
	}
	return notes
}
