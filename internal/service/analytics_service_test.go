package service

import (
	"context"
	"testing"
	"time"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func noteFromSeed(uid int64, title, text string) *domain.Note {
	return &domain.Note{UserID: uid, Title: title, Text: text}
}

func newTestAnalyticsService(store *fakeNoteStore, ttl time.Duration) AnalyticsService {
	return NewAnalyticsService(&fakeNoteRepo{store: store}, AnalyticsServiceConfig{
		CacheTTL: ttl,
	}, zap.NewNop())
}

func TestCleanWords(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "milk eggs bread", []string{"milk", "eggs", "bread"}},
		{"punctuation stripped", "Hello, world! (draft)", []string{"hello", "world", "draft"}},
		{"cyrillic kept", "Привет, мир!", []string{"привет", "мир"}},
		{"digits kept", "top 10 items", []string{"top", "10", "items"}},
		{"empty", "...!!!", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanWords(tc.text)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalyticsService_Get(t *testing.T) {
	store := newFakeNoteStore()
	noteRepo := &fakeNoteRepo{store: store}
	ctx := context.Background()

	seed := []struct {
		title string
		text  string
	}{
		{"Shopping list", "milk milk eggs"},
		{"Ideas!", "milk bread"},
		{"Short", "bread"},
	}
	for _, s := range seed {
		_, err := noteRepo.Create(ctx, noteFromSeed(1, s.title, s.text))
		assert.Nil(t, err)
	}

	svc := newTestAnalyticsService(store, time.Minute)

	analytics, err := svc.Get(ctx)
	assert.Nil(t, err)

	// title words count toward the corpus alongside the body
	// 标题词与正文一起计入语料
	assert.Equal(t, int64(3), analytics.TotalNotes)
	assert.Equal(t, int64(10), analytics.TotalWords)
	assert.InDelta(t, 10.0/3.0, analytics.AvgWordsPerNote, 0.001)

	// milk(3) > bread(2), then count-1 words alphabetically
	// milk(3) > bread(2)，其后为按字母序的单次词
	if assert.GreaterOrEqual(t, len(analytics.CommonWords), 3) {
		assert.Equal(t, &dto.WordStat{Word: "milk", Count: 3}, analytics.CommonWords[0])
		assert.Equal(t, &dto.WordStat{Word: "bread", Count: 2}, analytics.CommonWords[1])
	}
	words := make(map[string]bool)
	for _, stat := range analytics.CommonWords {
		words[stat.Word] = true
	}
	assert.True(t, words["shopping"], "title-only words belong in common_words")

	if assert.Len(t, analytics.TopLongestNotes, 3) {
		assert.Equal(t, "shopping list", analytics.TopLongestNotes[0].Title)
		assert.Equal(t, int64(5), analytics.TopLongestNotes[0].WordCount)
	}
	if assert.Len(t, analytics.TopShortestNotes, 3) {
		assert.Equal(t, "short", analytics.TopShortestNotes[0].Title)
		assert.Equal(t, int64(2), analytics.TopShortestNotes[0].WordCount)
	}
}

func TestAnalyticsService_CachedSnapshot(t *testing.T) {
	store := newFakeNoteStore()
	noteRepo := &fakeNoteRepo{store: store}
	ctx := context.Background()

	_, err := noteRepo.Create(ctx, noteFromSeed(1, "one", "a b c"))
	assert.Nil(t, err)

	svc := newTestAnalyticsService(store, time.Hour)

	first, err := svc.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.TotalNotes)

	// a fresh cache hides later writes until refresh
	// 缓存新鲜时不可见后续写入，刷新后可见
	_, err = noteRepo.Create(ctx, noteFromSeed(1, "two", "d e"))
	assert.Nil(t, err)

	cached, err := svc.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), cached.TotalNotes)

	assert.Nil(t, svc.Refresh(ctx))

	refreshed, err := svc.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), refreshed.TotalNotes)
}

func TestAnalyticsService_Empty(t *testing.T) {
	svc := newTestAnalyticsService(newFakeNoteStore(), time.Minute)

	analytics, err := svc.Get(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), analytics.TotalNotes)
	assert.Equal(t, int64(0), analytics.TotalWords)
	assert.Equal(t, 0.0, analytics.AvgWordsPerNote)
	assert.Empty(t, analytics.CommonWords)
	assert.Empty(t, analytics.TopLongestNotes)
	assert.Empty(t, analytics.TopShortestNotes)
}
