package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
)

const breakerName = "llm"

// chatMessage is one message of a chat completion request. Content is a
// string for text messages and a list of parts for vision messages.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMClient talks to an OpenAI compatible chat completions endpoint
type LLMClient struct {
	client  *resty.Client
	cfg     config.LLMConfig
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zap.Logger
}

// NewLLMClient creates a new LLMClient instance
func NewLLMClient(cfg config.LLMConfig, logger *zap.Logger) *LLMClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &LLMClient{
		client:  client,
		cfg:     cfg,
		breaker: breaker,
		logger:  logger,
	}
}

// Complete sends a system and user prompt and returns the reply text
func (c *LLMClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	return c.chat(ctx, "generate", c.cfg.Model, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
}

// DescribeImage sends prompt together with an image and returns the reply text
func (c *LLMClient) DescribeImage(ctx context.Context, system, prompt, imageBase64 string) (string, error) {
	url := imageBase64
	if !strings.HasPrefix(url, "data:image/") {
		url = "data:image/jpeg;base64," + imageBase64
	}

	return c.chat(ctx, "recognize", c.cfg.VisionModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: url}},
		}},
	})
}

func (c *LLMClient) chat(ctx context.Context, operation, model string, messages []chatMessage) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrAIUnavailable)
	}

	start := time.Now()
	content, err := c.breaker.Execute(func() (string, error) {
		return c.send(ctx, chatRequest{
			Model:       model,
			Messages:    messages,
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: c.cfg.Temperature,
		})
	})
	metrics.RecordAIRequest(operation, time.Since(start), err)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("AI request rejected by circuit breaker", zap.String("operation", operation))
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if err != nil {
		c.logger.Error("AI request failed",
			zap.String("operation", operation),
			zap.String("model", model),
			zap.Error(err),
		)
		return "", err
	}

	c.logger.Debug("AI request completed",
		zap.String("operation", operation),
		zap.String("model", model),
		zap.Int("length", len(content)),
	)
	return content, nil
}

func (c *LLMClient) send(ctx context.Context, req chatRequest) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send chat completion request: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse chat completion response: %w", err)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
