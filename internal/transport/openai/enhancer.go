package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/shopgrid/prodsearch/internal/domain"
)

// EnhancerClient sends a query-enhancement prompt to an OpenAI-compatible
// chat model and returns the raw completion text. Parsing and validation
// of the completion live in the enhance usecase.
type EnhancerClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

// EnhancerConfig holds the chat model settings.
type EnhancerConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewEnhancerClient creates a chat completion client for query enhancement.
func NewEnhancerClient(cfg *EnhancerConfig) *EnhancerClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &EnhancerClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		logger:      cfg.Logger,
	}
}

// Complete sends the prompt and returns the first choice's text.
// The call carries a bounded timeout so a slow model degrades to the
// caller's fallback path instead of stalling the request.
func (c *EnhancerClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w: %w", domain.ErrEnhancerUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion: %w", domain.ErrEnhancerUnavailable)
	}

	c.logger.Debug("Enhancer completion received",
		zap.String("model", c.model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
