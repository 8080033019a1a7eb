package service

import (
	"context"
	"errors"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/dto"
	"github.com/inkwells/smart-note-service/pkg/code"
	"github.com/inkwells/smart-note-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService 笔记业务接口
// Every operation is scoped to the requesting owner.
// 每个操作都以请求者为所有者范围。
type NoteService interface {
	// Create summarizes the content and stores the note
	// Create 生成摘要并存储笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.Note, error)
	// List returns the owner's notes, updated_at desc
	// List 返回所有者的笔记，按 updated_at 倒序
	List(ctx context.Context, uid int64) ([]*dto.Note, error)
	// Get returns a single owned note
	// Get 返回单条所有者的笔记
	Get(ctx context.Context, id int64, uid int64) (*dto.Note, error)
	// Update applies a partial content update with a history snapshot
	// Update 应用部分内容更新并写入历史快照
	Update(ctx context.Context, id int64, uid int64, params *dto.NoteUpdateRequest) (*dto.Note, error)
	// Delete removes the note and its history, reporting whether it existed
	// Delete 删除笔记及其历史，并报告其是否存在
	Delete(ctx context.Context, id int64, uid int64) (bool, error)
	// GetWithHistory returns the note plus its history, created_at desc
	// GetWithHistory 返回笔记及其历史记录，按 created_at 倒序
	GetWithHistory(ctx context.Context, id int64, uid int64) (*dto.NoteWithHistory, error)
}

type noteService struct {
	noteRepo    domain.NoteRepository
	historyRepo domain.NoteHistoryRepository
	summarizer  Summarizer
	logger      *zap.Logger
}

var _ NoteService = (*noteService)(nil)

func NewNoteService(noteRepo domain.NoteRepository, historyRepo domain.NoteHistoryRepository, summarizer Summarizer, lg *zap.Logger) NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		historyRepo: historyRepo,
		summarizer:  summarizer,
		logger:      lg,
	}
}

func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.Note, error) {
	// summarization completes before anything is persisted
	// 摘要先于任何持久化完成
	summarization, err := s.summarizer.Summarize(ctx, params.Title, params.Text)
	if err != nil {
		return nil, code.ErrorSummarization
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{
		UserID:        uid,
		Title:         params.Title,
		Text:          params.Text,
		Summarization: summarization,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, note.ID))

	return noteToDTO(note), nil
}

func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.Note, error) {
	notes, err := s.noteRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return notesToDTO(notes), nil
}

func (s *noteService) Get(ctx context.Context, id int64, uid int64) (*dto.Note, error) {
	note, err := s.noteRepo.Get(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound.WithInput(id)
		}
		return nil, err
	}
	return noteToDTO(note), nil
}

func (s *noteService) Update(ctx context.Context, id int64, uid int64, params *dto.NoteUpdateRequest) (*dto.Note, error) {
	current, err := s.noteRepo.Get(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound.WithInput(id)
		}
		return nil, err
	}

	if params.Title == nil && params.Text == nil {
		return nil, code.ErrorInvalidUpdate
	}

	// a missing field inherits the current value
	// 缺失字段继承当前值
	title, text := current.Title, current.Text
	if params.Title != nil {
		title = *params.Title
	}
	if params.Text != nil {
		text = *params.Text
	}
	if title == current.Title && text == current.Text {
		return nil, code.ErrorInvalidUpdate
	}

	summarization, err := s.summarizer.Summarize(ctx, title, text)
	if err != nil {
		return nil, code.ErrorSummarization
	}

	updated, err := s.noteRepo.UpdateWithHistory(ctx, id, uid, title, text, summarization)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound.WithInput(id)
		}
		return nil, err
	}

	s.logger.Info("note updated",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, id))

	return noteToDTO(updated), nil
}

func (s *noteService) Delete(ctx context.Context, id int64, uid int64) (bool, error) {
	found, err := s.noteRepo.DeleteWithHistory(ctx, id, uid)
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("note deleted",
			zap.Int64(logger.FieldUID, uid),
			zap.Int64(logger.FieldNoteID, id))
	}
	return found, nil
}

func (s *noteService) GetWithHistory(ctx context.Context, id int64, uid int64) (*dto.NoteWithHistory, error) {
	note, err := s.noteRepo.Get(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound.WithInput(id)
		}
		return nil, err
	}

	histories, err := s.historyRepo.ListByNote(ctx, note.ID)
	if err != nil {
		return nil, err
	}

	result := &dto.NoteWithHistory{
		Note:    *noteToDTO(note),
		History: make([]*dto.NoteHistoryEntry, 0, len(histories)),
	}
	for _, h := range histories {
		result.History = append(result.History, &dto.NoteHistoryEntry{
			ID:        h.ID,
			NoteID:    h.NoteID,
			Title:     h.Title,
			Text:      h.Text,
			CreatedAt: h.CreatedAt,
		})
	}
	return result, nil
}

func noteToDTO(n *domain.Note) *dto.Note {
	return &dto.Note{
		ID:            n.ID,
		UserID:        n.UserID,
		Title:         n.Title,
		Text:          n.Text,
		Summarization: n.Summarization,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func notesToDTO(notes []*domain.Note) []*dto.Note {
	result := make([]*dto.Note, 0, len(notes))
	for _, n := range notes {
		result = append(result, noteToDTO(n))
	}
	return result
}
