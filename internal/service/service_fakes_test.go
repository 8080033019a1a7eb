package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/pkg/timex"

	"gorm.io/gorm"
)

// 内存仓储实现，供 Service 层测试使用

type fakeUserRepo struct {
	mu        sync.Mutex
	nextUID   int64
	users     map[int64]*domain.User
	creates   int
	createErr error
}

var _ domain.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextUID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *user
	stored.UID = r.nextUID
	stored.CreatedAt = timex.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextUID++
	r.users[stored.UID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) delete(uid int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, uid)
}

type fakeNoteStore struct {
	mu        sync.Mutex
	nextID    int64
	notes     map[int64]*domain.Note
	histories []*domain.NoteHistory
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{nextID: 1, notes: make(map[int64]*domain.Note)}
}

type fakeNoteRepo struct {
	store *fakeNoteStore
}

var _ domain.NoteRepository = (*fakeNoteRepo)(nil)

func (r *fakeNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *note
	stored.ID = r.store.nextID
	now := timex.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.store.nextID++
	r.store.notes[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeNoteRepo) Get(ctx context.Context, id int64, uid int64) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	note, ok := r.store.notes[id]
	if !ok || note.UserID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) ListByUser(ctx context.Context, uid int64) ([]*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var notes []*domain.Note
	for _, note := range r.store.notes {
		if note.UserID == uid {
			copied := *note
			notes = append(notes, &copied)
		}
	}
	sortNotesByUpdatedDesc(notes)
	return notes, nil
}

func (r *fakeNoteRepo) ListAll(ctx context.Context) ([]*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var notes []*domain.Note
	for _, note := range r.store.notes {
		copied := *note
		notes = append(notes, &copied)
	}
	sortNotesByUpdatedDesc(notes)
	return notes, nil
}

func (r *fakeNoteRepo) UpdateWithHistory(ctx context.Context, id int64, uid int64, title, text, summarization string) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	note, ok := r.store.notes[id]
	if !ok || note.UserID != uid {
		return nil, gorm.ErrRecordNotFound
	}

	now := timex.Now()
	r.store.histories = append(r.store.histories, &domain.NoteHistory{
		ID:        int64(len(r.store.histories) + 1),
		NoteID:    note.ID,
		Title:     note.Title,
		Text:      note.Text,
		CreatedAt: now,
	})

	note.Title = title
	note.Text = text
	note.Summarization = summarization
	note.UpdatedAt = now
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) DeleteWithHistory(ctx context.Context, id int64, uid int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	note, ok := r.store.notes[id]
	if !ok || note.UserID != uid {
		return false, nil
	}
	delete(r.store.notes, id)

	kept := r.store.histories[:0]
	for _, h := range r.store.histories {
		if h.NoteID != id {
			kept = append(kept, h)
		}
	}
	r.store.histories = kept
	return true, nil
}

type fakeNoteHistoryRepo struct {
	store *fakeNoteStore
}

var _ domain.NoteHistoryRepository = (*fakeNoteHistoryRepo)(nil)

func (r *fakeNoteHistoryRepo) ListByNote(ctx context.Context, noteID int64) ([]*domain.NoteHistory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var histories []*domain.NoteHistory
	for _, h := range r.store.histories {
		if h.NoteID == noteID {
			copied := *h
			histories = append(histories, &copied)
		}
	}
	sort.SliceStable(histories, func(i, j int) bool {
		return histories[i].CreatedAt.UnixNano() > histories[j].CreatedAt.UnixNano()
	})
	return histories, nil
}

func (r *fakeNoteHistoryRepo) CountByNote(ctx context.Context, noteID int64) (int64, error) {
	histories, _ := r.ListByNote(ctx, noteID)
	return int64(len(histories)), nil
}

func sortNotesByUpdatedDesc(notes []*domain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.UnixNano() > notes[j].UpdatedAt.UnixNano()
	})
}

// fakeSummarizer 记录调用并返回可控结果
type fakeSummarizer struct {
	mu     sync.Mutex
	calls  int
	result string
	err    error
	delay  time.Duration
}

var _ Summarizer = (*fakeSummarizer)(nil)

func (s *fakeSummarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	s.mu.Lock()
	s.calls++
	result, err, delay := s.result, s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if result == "" {
		return fmt.Sprintf("summary of %s", title), nil
	}
	return result, nil
}

func (s *fakeSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
