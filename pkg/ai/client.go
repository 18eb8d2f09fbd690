package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-tailor/pkg/ai/formatters"
)

// Backend is the model provider. Gemini is the production implementation.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Client adds retries and output cleanup on top of a Backend.
type Client struct {
	backend  Backend
	attempts int
	backoff  time.Duration
}

func NewClient(backend Backend) *Client {
	return &Client{backend: backend, attempts: 3, backoff: time.Second}
}

// Generate sends prompt and returns the trimmed text answer.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	err := c.withRetry(ctx, func() error {
		text, err := c.backend.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = strings.TrimSpace(text)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if out == "" {
		return "", errors.New("generate: model returned an empty answer")
	}
	return out, nil
}

// Embed returns one vector per text, in order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var out [][]float32
	err := c.withRetry(ctx, func() error {
		vecs, err := c.backend.Embed(ctx, texts)
		if err != nil {
			return err
		}
		if len(vecs) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vecs))
		}
		out = vecs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return out, nil
}

func (c *Client) NewPointsFormatter() *formatters.PointsFormatter {
	return formatters.NewPointsFormatter(c)
}

func (c *Client) NewLatexFormatter() *formatters.LatexFormatter {
	return formatters.NewLatexFormatter(c)
}

// withRetry runs fn with exponential backoff between attempts.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < c.attempts-1 {
			select {
			case <-time.After(c.backoff << i):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
