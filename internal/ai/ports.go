package ai

import (
	"context"
	"errors"
	"time"
)

// Provider is the generative-text backend. It knows nothing about WhatsApp or Fonnte.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Request is a single-prompt completion request.
type Request struct {
	Prompt    string
	MaxTokens int
}

// Recorder receives generation outcomes ("ok" or "fallback") and their latency.
type Recorder interface {
	ObserveGeneration(outcome string, latency time.Duration)
}

var (
	ErrMissingAPIKey = errors.New("ai: api key not set")
	ErrEmptyResponse = errors.New("ai: empty response")
	ErrRateLimited   = errors.New("ai: generation rate limit exceeded")
)
