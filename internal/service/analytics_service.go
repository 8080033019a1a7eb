package service

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inkwells/smart-note-service/internal/domain"
	"github.com/inkwells/smart-note-service/internal/dto"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cleanWordRe strips everything except latin, cyrillic, digits and whitespace
// cleanWordRe 去除拉丁字母、西里尔字母、数字和空白以外的全部字符
var cleanWordRe = regexp.MustCompile(`[^a-zA-Zа-яА-ЯёЁ0-9\s]+`)

// AnalyticsService 统计业务接口
// Read-only view over the whole note corpus, no authentication required.
// 面向全量笔记的只读视图，无需认证。
type AnalyticsService interface {
	// Get returns corpus statistics, served from a cached snapshot when fresh
	// Get 返回统计结果，缓存新鲜时直接返回快照
	Get(ctx context.Context) (*dto.Analytics, error)
	// ListNotes returns every note in the system
	// ListNotes 返回系统内全部笔记
	ListNotes(ctx context.Context) ([]*dto.Note, error)
	// Refresh recomputes the cached snapshot
	// Refresh 重新计算缓存快照
	Refresh(ctx context.Context) error
}

type analyticsService struct {
	noteRepo domain.NoteRepository
	config   AnalyticsServiceConfig
	logger   *zap.Logger

	group singleflight.Group

	mu        sync.RWMutex
	snapshot  *dto.Analytics
	fetchedAt time.Time
}

var _ AnalyticsService = (*analyticsService)(nil)

func NewAnalyticsService(noteRepo domain.NoteRepository, config AnalyticsServiceConfig, lg *zap.Logger) AnalyticsService {
	if config.CommonWordsLimit <= 0 {
		config.CommonWordsLimit = 10
	}
	if config.RankedNotesLimit <= 0 {
		config.RankedNotesLimit = 3
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = time.Minute
	}
	return &analyticsService{
		noteRepo: noteRepo,
		config:   config,
		logger:   lg,
	}
}

func (s *analyticsService) Get(ctx context.Context) (*dto.Analytics, error) {
	s.mu.RLock()
	snapshot, fetchedAt := s.snapshot, s.fetchedAt
	s.mu.RUnlock()

	if snapshot != nil && time.Since(fetchedAt) < s.config.CacheTTL {
		return snapshot, nil
	}

	// concurrent cold reads share one aggregation
	// 并发的冷读取共享一次聚合计算
	result, err, _ := s.group.Do("analytics", func() (any, error) {
		analytics, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}
		s.store(analytics)
		return analytics, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.Analytics), nil
}

func (s *analyticsService) ListNotes(ctx context.Context) ([]*dto.Note, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return notesToDTO(notes), nil
}

func (s *analyticsService) Refresh(ctx context.Context) error {
	analytics, err := s.compute(ctx)
	if err != nil {
		return err
	}
	s.store(analytics)
	s.logger.Debug("analytics snapshot refreshed",
		zap.Int64("totalNotes", analytics.TotalNotes))
	return nil
}

func (s *analyticsService) store(analytics *dto.Analytics) {
	s.mu.Lock()
	s.snapshot = analytics
	s.fetchedAt = time.Now()
	s.mu.Unlock()
}

func (s *analyticsService) compute(ctx context.Context) (*dto.Analytics, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &dto.Analytics{
		TotalNotes:       int64(len(notes)),
		CommonWords:      []*dto.WordStat{},
		TopLongestNotes:  []*dto.NoteStat{},
		TopShortestNotes: []*dto.NoteStat{},
	}

	wordCounts := make(map[string]int64)
	noteStats := make([]*dto.NoteStat, 0, len(notes))

	for _, note := range notes {
		// title words count toward the corpus, same as the note body
		// 标题词与正文一样计入语料统计
		words := CleanWords(note.Title + " " + note.Text)
		for _, word := range words {
			wordCounts[word]++
		}
		analytics.TotalWords += int64(len(words))
		noteStats = append(noteStats, &dto.NoteStat{
			Title:     CleanText(note.Title),
			WordCount: int64(len(words)),
		})
	}

	if len(notes) > 0 {
		analytics.AvgWordsPerNote = float64(analytics.TotalWords) / float64(len(notes))
	}

	analytics.CommonWords = topWords(wordCounts, s.config.CommonWordsLimit)

	sort.SliceStable(noteStats, func(i, j int) bool {
		return noteStats[i].WordCount > noteStats[j].WordCount
	})
	analytics.TopLongestNotes = headNotes(noteStats, s.config.RankedNotesLimit)

	shortest := make([]*dto.NoteStat, len(noteStats))
	copy(shortest, noteStats)
	sort.SliceStable(shortest, func(i, j int) bool {
		return shortest[i].WordCount < shortest[j].WordCount
	})
	analytics.TopShortestNotes = headNotes(shortest, s.config.RankedNotesLimit)

	return analytics, nil
}

// CleanText strips punctuation and lowercases, keeping word boundaries
// CleanText 去除标点并转小写，保留词边界
func CleanText(text string) string {
	return strings.ToLower(strings.TrimSpace(cleanWordRe.ReplaceAllString(text, "")))
}

// CleanWords splits cleaned text into words
// CleanWords 将清洗后的文本切分为词
func CleanWords(text string) []string {
	return strings.Fields(CleanText(text))
}

func topWords(wordCounts map[string]int64, limit int) []*dto.WordStat {
	stats := make([]*dto.WordStat, 0, len(wordCounts))
	for word, count := range wordCounts {
		stats = append(stats, &dto.WordStat{Word: word, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Word < stats[j].Word
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func headNotes(stats []*dto.NoteStat, limit int) []*dto.NoteStat {
	if len(stats) > limit {
		stats = stats[:limit]
	}
	result := make([]*dto.NoteStat, len(stats))
	copy(result, stats)
	return result
}
