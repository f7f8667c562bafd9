package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	MaxReplyWords    = 200
	DefaultMaxTokens = 350
	DefaultTimeout   = 20 * time.Second

	ellipsis = "..."
)

// Reply is the outcome of one generation. Text is always safe to send.
type Reply struct {
	Text     string
	Fallback bool
	Err      error
}

type GeneratorConfig struct {
	Timeout       time.Duration
	MaxTokens     int
	RatePerMinute int // 0 disables the limiter
	Logger        *slog.Logger
	Recorder      Recorder
}

// ReplyGenerator turns a user utterance into a WhatsApp-ready reply.
type ReplyGenerator struct {
	provider  Provider
	timeout   time.Duration
	maxTokens int
	limiter   *rate.Limiter
	logger    *slog.Logger
	recorder  Recorder
}

func NewReplyGenerator(p Provider, cfg GeneratorConfig) *ReplyGenerator {
	g := &ReplyGenerator{
		provider:  p,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.recorder == nil {
		g.recorder = nopRecorder{}
	}
	if cfg.RatePerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	return g
}

// Generate never fails: any provider problem yields FallbackReply.
func (g *ReplyGenerator) Generate(ctx context.Context, userMessage string) (reply Reply) {
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			reply = Reply{Text: FallbackReply, Fallback: true, Err: fmt.Errorf("ai: provider panic: %v", rec)}
		}

		outcome := "ok"
		if reply.Fallback {
			outcome = "fallback"
			g.logger.Warn("ai reply fallback",
				"provider", g.providerName(),
				"error", reply.Err,
				"input", short(userMessage),
			)
		} else {
			g.logger.Info("ai reply generated",
				"provider", g.providerName(),
				"words", len(strings.Fields(reply.Text)),
				"preview", short(reply.Text),
			)
		}
		g.recorder.ObserveGeneration(outcome, time.Since(started))
	}()

	text, err := g.complete(ctx, userMessage)
	if err != nil {
		return Reply{Text: FallbackReply, Fallback: true, Err: err}
	}
	return Reply{Text: text}
}

func (g *ReplyGenerator) complete(ctx context.Context, userMessage string) (string, error) {
	if g.provider == nil {
		return "", ErrMissingAPIKey
	}
	if g.limiter != nil && !g.limiter.Allow() {
		return "", ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.provider.Complete(ctx, Request{
		Prompt:    BuildPrompt(userMessage),
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", err
	}

	return finalize(raw)
}

func (g *ReplyGenerator) providerName() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

// finalize applies the word cap and strips markup the WhatsApp renderer shows literally.
func finalize(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyResponse
	}

	if text = Sanitize(text); text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Sanitize makes any outbound text WhatsApp-safe: at most MaxReplyWords words
// (plus an ellipsis when cut) and no "**" or "--".
func Sanitize(text string) string {
	text = truncateWords(strings.TrimSpace(text), MaxReplyWords)
	return strings.TrimSpace(stripMarkup(text))
}

func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + ellipsis
}

// stripMarkup removes "**" and "--" until neither remains; one removal can expose another ("*--*").
func stripMarkup(text string) string {
	for strings.Contains(text, "**") || strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "**", "")
		text = strings.ReplaceAll(text, "--", "")
	}
	return text
}

func short(s string) string {
	r := []rune(s)
	if len(r) > 180 {
		return string(r[:180]) + "..."
	}
	return s
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, time.Duration) {}
