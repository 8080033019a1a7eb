package dao

import (
	"context"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/model"
)

// noteHistoryRepository domain.NoteHistoryRepository 的 gorm 实现
type noteHistoryRepository struct {
	dao *Dao
}

var _ domain.NoteHistoryRepository = (*noteHistoryRepository)(nil)

func NewNoteHistoryRepository(dao *Dao) domain.NoteHistoryRepository {
	return &noteHistoryRepository{dao: dao}
}

func (r *noteHistoryRepository) ListByNote(ctx context.Context, noteID int64) ([]*domain.NoteHistory, error) {
	var ms []*model.NoteHistory
	if err := r.dao.DB().WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	histories := make([]*domain.NoteHistory, 0, len(ms))
	for _, m := range ms {
		histories = append(histories, &domain.NoteHistory{
			ID:        m.ID,
			NoteID:    m.NoteID,
			Title:     m.Title,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}
	return histories, nil
}

func (r *noteHistoryRepository) CountByNote(ctx context.Context, noteID int64) (int64, error) {
	var count int64
	if err := r.dao.DB().WithContext(ctx).
		Model(&model.NoteHistory{}).
		Where("note_id = ?", noteID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
