package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/inkwells/smart-note-service/internal/dto"
	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestNoteService(summarizer Summarizer) (NoteService, *fakeNoteStore) {
	store := newFakeNoteStore()
	if summarizer == nil {
		summarizer = &fakeSummarizer{}
	}
	svc := NewNoteService(&fakeNoteRepo{store: store}, &fakeNoteHistoryRepo{store: store}, summarizer, zap.NewNop())
	return svc, store
}

func strPtr(s string) *string {
	return &s
}

func TestNoteService_Create(t *testing.T) {
	summarizer := &fakeSummarizer{result: "short summary"}
	svc, store := newTestNoteService(summarizer)

	note, err := svc.Create(context.Background(), 1, &dto.NoteCreateRequest{
		Title: "groceries",
		Text:  "milk eggs bread",
	})
	assert.Nil(t, err)
	assert.Equal(t, "groceries", note.Title)
	assert.Equal(t, "short summary", note.Summarization)
	assert.Equal(t, int64(1), note.UserID)
	assert.Equal(t, note.CreatedAt.Unix(), note.UpdatedAt.Unix())

	// a fresh note has no history
	// 新建的笔记没有历史记录
	assert.Empty(t, store.histories)
	assert.Equal(t, 1, summarizer.callCount())
}

func TestNoteService_CreateSummarizerFailure(t *testing.T) {
	svc, store := newTestNoteService(&fakeSummarizer{err: fmt.Errorf("upstream down")})

	_, err := svc.Create(context.Background(), 1, &dto.NoteCreateRequest{
		Title: "groceries",
		Text:  "milk eggs bread",
	})
	assert.Equal(t, code.ErrorSummarization, err)

	// nothing persisted when summarization fails
	// 摘要失败时不持久化任何数据
	assert.Empty(t, store.notes)
}

func TestNoteService_UpdateSnapshotsHistory(t *testing.T) {
	svc, _ := newTestNoteService(nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "draft", Text: "first version"})
	assert.Nil(t, err)

	updated, err := svc.Update(ctx, note.ID, 1, &dto.NoteUpdateRequest{Text: strPtr("second version")})
	assert.Nil(t, err)
	assert.Equal(t, "second version", updated.Text)
	// a missing field inherits the current value
	// 缺失字段继承当前值
	assert.Equal(t, "draft", updated.Title)

	history, err := svc.GetWithHistory(ctx, note.ID, 1)
	assert.Nil(t, err)
	if assert.Len(t, history.History, 1) {
		snapshot := history.History[0]
		// the snapshot holds the pre-update content
		// 快照保存更新前的内容
		assert.Equal(t, "draft", snapshot.Title)
		assert.Equal(t, "first version", snapshot.Text)
		// snapshot time equals the note's new updated_at
		// 快照时间等于笔记新的 updated_at
		assert.Equal(t, updated.UpdatedAt.UnixNano(), snapshot.CreatedAt.UnixNano())
	}
}

func TestNoteService_UpdateHistoryOrder(t *testing.T) {
	svc, _ := newTestNoteService(nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "draft", Text: "v1"})
	assert.Nil(t, err)

	for i := 2; i <= 4; i++ {
		_, err = svc.Update(ctx, note.ID, 1, &dto.NoteUpdateRequest{Text: strPtr(fmt.Sprintf("v%d", i))})
		assert.Nil(t, err)
	}

	result, err := svc.GetWithHistory(ctx, note.ID, 1)
	assert.Nil(t, err)
	if assert.Len(t, result.History, 3) {
		// newest snapshot first
		// 最新的快照在前
		assert.Equal(t, "v3", result.History[0].Text)
		assert.Equal(t, "v1", result.History[2].Text)
	}
}

func TestNoteService_UpdateRejectsEmptyAndNoop(t *testing.T) {
	svc, store := newTestNoteService(nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "draft", Text: "content"})
	assert.Nil(t, err)

	_, err = svc.Update(ctx, note.ID, 1, &dto.NoteUpdateRequest{})
	assert.Equal(t, code.ErrorInvalidUpdate, err)

	_, err = svc.Update(ctx, note.ID, 1, &dto.NoteUpdateRequest{
		Title: strPtr("draft"),
		Text:  strPtr("content"),
	})
	assert.Equal(t, code.ErrorInvalidUpdate, err)

	// rejected updates leave no history behind
	// 被拒绝的更新不会留下历史记录
	assert.Empty(t, store.histories)
}

func TestNoteService_OwnershipScoping(t *testing.T) {
	svc, _ := newTestNoteService(nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "secret", Text: "mine"})
	assert.Nil(t, err)

	// a different owner sees not found everywhere
	// 其他所有者在所有操作上都得到 not found
	_, err = svc.Get(ctx, note.ID, 2)
	assertNoteNotFound(t, err)

	_, err = svc.Update(ctx, note.ID, 2, &dto.NoteUpdateRequest{Text: strPtr("stolen")})
	assertNoteNotFound(t, err)

	_, err = svc.GetWithHistory(ctx, note.ID, 2)
	assertNoteNotFound(t, err)

	found, err := svc.Delete(ctx, note.ID, 2)
	assert.Nil(t, err)
	assert.False(t, found)

	// the note is untouched for its owner
	// 笔记对其所有者保持原样
	got, err := svc.Get(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, "mine", got.Text)
}

func TestNoteService_DeleteRemovesHistory(t *testing.T) {
	svc, store := newTestNoteService(nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "draft", Text: "v1"})
	assert.Nil(t, err)
	_, err = svc.Update(ctx, note.ID, 1, &dto.NoteUpdateRequest{Text: strPtr("v2")})
	assert.Nil(t, err)
	assert.Len(t, store.histories, 1)

	found, err := svc.Delete(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Empty(t, store.histories)

	found, err = svc.Delete(ctx, note.ID, 1)
	assert.Nil(t, err)
	assert.False(t, found)
}

func TestNoteService_List(t *testing.T) {
	svc, _ := newTestNoteService(nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{
			Title: fmt.Sprintf("note %d", i),
			Text:  "text",
		})
		assert.Nil(t, err)
	}
	_, err := svc.Create(ctx, 2, &dto.NoteCreateRequest{Title: "other", Text: "text"})
	assert.Nil(t, err)

	notes, err := svc.List(ctx, 1)
	assert.Nil(t, err)
	assert.Len(t, notes, 3)
	for _, note := range notes {
		assert.Equal(t, int64(1), note.UserID)
	}
}

func assertNoteNotFound(t *testing.T, err error) {
	t.Helper()
	codeErr, ok := err.(*code.Code)
	if assert.True(t, ok, "expected a code error, got %v", err) {
		assert.Equal(t, code.ErrorNoteNotFound.StatusCode(), codeErr.StatusCode())
		assert.Equal(t, code.ErrorNoteNotFound.Msg(), codeErr.Msg())
	}
}
