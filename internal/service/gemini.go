package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"winugly/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrEmptyResponse means the model answered with no text
var ErrEmptyResponse = errors.New("empty response from Gemini")

// Generator produces one free-text reply for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ServiceError is a failure at the model boundary. It is always safe to show the
// user a generic message and let them submit again.
type ServiceError struct {
	Op      string
	Model   string
	Timeout bool
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: model %s timed out: %v", e.Op, e.Model, e.Err)
	}
	return fmt.Sprintf("%s: model %s: %v", e.Op, e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// GeminiGenerator calls the Gemini API through the genai SDK. Each call is a
// single attempt bounded by the configured timeout; retrying would produce a
// different reply, so failures are returned to the caller as they are.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiGenerator creates a Gemini client from the AI config
func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if !cfg.IsEnabled() {
		return nil, config.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultAIConfig().Timeout
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger.Named("gemini"),
	}, nil
}

// Model returns the model name used for generation
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends the prompt and returns the reply text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
		g.logger.Warn("generate failed",
			zap.String("model", g.model),
			zap.Bool("timeout", timedOut),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", &ServiceError{Op: "generate", Model: g.model, Timeout: timedOut, Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Op: "generate", Model: g.model, Err: ErrEmptyResponse}
	}

	g.logger.Debug("generate finished",
		zap.String("model", g.model),
		zap.Int("promptChars", len(prompt)),
		zap.Int("replyChars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
