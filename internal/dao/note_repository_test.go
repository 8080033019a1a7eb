package dao

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/inkwells/smart-note-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.db"),
		TablePrefix: "sns_",
		AutoMigrate: true,
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return New(db)
}

func TestNoteRepositoryCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{
		UserID:        1,
		Title:         "groceries",
		Text:          "milk eggs bread",
		Summarization: "a short list",
	})
	assert.Nil(t, err)
	assert.NotZero(t, note.ID)
	assert.Equal(t, note.CreatedAt.Unix(), note.UpdatedAt.Unix())

	got, err := repo.Get(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, "groceries", got.Title)
	assert.Equal(t, "a short list", got.Summarization)

	// owner mismatch behaves like a missing row
	// 所有者不匹配等同于记录不存在
	_, err = repo.Get(ctx, note.ID, 2)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestNoteRepositoryUpdateWithHistory(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UserID: 1, Title: "draft", Text: "v1"})
	assert.Nil(t, err)

	updated, err := repo.UpdateWithHistory(ctx, note.ID, 1, "draft", "v2", "about v2")
	assert.Nil(t, err)
	assert.Equal(t, "v2", updated.Text)
	assert.Equal(t, "about v2", updated.Summarization)

	histories, err := historyRepo.ListByNote(ctx, note.ID)
	assert.Nil(t, err)
	if assert.Len(t, histories, 1) {
		// the snapshot holds the content as it was before the update
		// 快照保存更新前的内容
		assert.Equal(t, "v1", histories[0].Text)
		assert.Equal(t, updated.UpdatedAt.Unix(), histories[0].CreatedAt.Unix())
	}

	count, err := historyRepo.CountByNote(ctx, note.ID)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)

	// the wrong owner cannot update and leaves no snapshot behind
	// 错误的所有者无法更新，也不会留下快照
	_, err = repo.UpdateWithHistory(ctx, note.ID, 2, "x", "y", "")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	count, err = historyRepo.CountByNote(ctx, note.ID)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNoteRepositoryConcurrentUpdates(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UserID: 1, Title: "draft", Text: "v0"})
	assert.Nil(t, err)

	const writers = 8
	var wg sync.WaitGroup
	var successes int64
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateWithHistory(ctx, note.ID, 1, "draft", fmt.Sprintf("c%d", i), "")
			if err == nil {
				atomic.AddInt64(&successes, 1)
				return
			}
			// a raced writer may lose to the updated_at guard, nothing else
			// 竞争失败的写入者只会输给 updated_at 守卫，不应有其他错误
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				t.Errorf("unexpected update error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got := atomic.LoadInt64(&successes)
	assert.Greater(t, got, int64(0))

	// exactly one snapshot per successful update, none lost or doubled
	// 每次成功更新恰好留下一个快照，不丢失也不重复
	count, err := historyRepo.CountByNote(ctx, note.ID)
	assert.Nil(t, err)
	assert.Equal(t, got, count)

	histories, err := historyRepo.ListByNote(ctx, note.ID)
	assert.Nil(t, err)
	seen := make(map[string]bool)
	for _, h := range histories {
		assert.False(t, seen[h.Text], "snapshot %q recorded twice", h.Text)
		seen[h.Text] = true
	}
}

func TestNoteRepositoryDeleteWithHistory(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UserID: 1, Title: "draft", Text: "v1"})
	assert.Nil(t, err)
	_, err = repo.UpdateWithHistory(ctx, note.ID, 1, "draft", "v2", "")
	assert.Nil(t, err)

	found, err := repo.DeleteWithHistory(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.True(t, found)

	count, err := historyRepo.CountByNote(ctx, note.ID)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)

	found, err = repo.DeleteWithHistory(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.False(t, found)
}

func TestUserRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	user, err := repo.Create(ctx, &domain.User{Username: "alice", Password: "hashed"})
	assert.Nil(t, err)
	assert.NotZero(t, user.UID)

	byName, err := repo.GetByUsername(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, user.UID, byName.UID)

	byUID, err := repo.GetByUID(ctx, user.UID)
	assert.Nil(t, err)
	assert.Equal(t, "alice", byUID.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// duplicate usernames hit the unique index as a translated error
	// 重复用户名触发唯一索引并转换为标准错误
	_, err = repo.Create(ctx, &domain.User{Username: "alice", Password: "other"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
