package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwells/smart-note-service/pkg/logger"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

// DefaultSummarizationPrompt system prompt for the summarization collaborator
// DefaultSummarizationPrompt 摘要协作方的系统提示词
const DefaultSummarizationPrompt = "You are an AI designed to generate concise summaries of notes. " +
	"Given a note's title and text, provide the shortest possible summary while preserving the key meaning. " +
	"Maintain the original language of the note. Avoid unnecessary details and keep the response as brief as possible."

// Summarizer produces a stored summarization for note content
// Summarizer 为笔记内容生成需要存储的摘要
type Summarizer interface {
	// Summarize returns the summary for the given title and text
	// Summarize 返回给定标题与正文的摘要
	Summarize(ctx context.Context, title, text string) (string, error)
}

// SummarizerConfig 摘要服务配置
type SummarizerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Prompt  string
	Timeout time.Duration
}

type openAISummarizer struct {
	client openai.Client
	config SummarizerConfig
	logger *zap.Logger
}

var _ Summarizer = (*openAISummarizer)(nil)

// NewOpenAISummarizer builds the chat completion backed summarizer
// NewOpenAISummarizer 构建基于 chat completion 的摘要服务
func NewOpenAISummarizer(config SummarizerConfig, lg *zap.Logger) Summarizer {
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Prompt == "" {
		config.Prompt = DefaultSummarizationPrompt
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	options := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		options = append(options, option.WithBaseURL(config.BaseURL))
	}

	return &openAISummarizer{
		client: openai.NewClient(options...),
		config: config,
		logger: lg,
	}
}

func (s *openAISummarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(s.config.Prompt),
			openai.UserMessage(fmt.Sprintf("Title: %s\nText: %s", title, text)),
		},
	})
	if err != nil {
		s.logger.Warn("summarization request failed",
			zap.String(logger.FieldModel, s.config.Model),
			zap.Error(err))
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("summarizer returned no choices")
	}

	s.logger.Debug("summarization completed",
		zap.String(logger.FieldModel, s.config.Model),
		zap.Duration(logger.FieldDuration, time.Since(start)))

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// noopSummarizer is used when no API key is configured so the service stays
// usable out of the box. Notes get an empty summarization.
// noopSummarizer 在未配置 API key 时使用，保证服务开箱可用。
// 笔记的摘要为空字符串。
type noopSummarizer struct{}

var _ Summarizer = (*noopSummarizer)(nil)

func NewNoopSummarizer() Summarizer {
	return &noopSummarizer{}
}

func (s *noopSummarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	return "", nil
}
