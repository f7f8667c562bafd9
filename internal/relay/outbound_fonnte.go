package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultFonnteSendURL = "https://api.fonnte.com/send"
	DefaultCountryCode   = "62"
	DefaultSendTimeout   = 10 * time.Second

	maxResponseBytes = 64 << 10
)

type FonnteConfig struct {
	Token       string
	SendURL     string
	CountryCode string
	Timeout     time.Duration
	Logger      *slog.Logger
}

// FonnteOutbound sends WhatsApp messages through the Fonnte send API.
type FonnteOutbound struct {
	sendURL     string
	token       string
	countryCode string
	client      *http.Client
	logger      *slog.Logger
}

func NewFonnteOutbound(cfg FonnteConfig) *FonnteOutbound {
	o := &FonnteOutbound{
		sendURL:     strings.TrimSpace(cfg.SendURL),
		token:       strings.TrimSpace(cfg.Token),
		countryCode: strings.TrimSpace(cfg.CountryCode),
		logger:      cfg.Logger,
	}
	if o.sendURL == "" {
		o.sendURL = DefaultFonnteSendURL
	}
	if o.countryCode == "" {
		o.countryCode = DefaultCountryCode
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	o.client = &http.Client{Timeout: timeout}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Send makes exactly one attempt. Failures are reported in the result, never as errors.
func (o *FonnteOutbound) Send(ctx context.Context, recipient string, text string) DispatchResult {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || strings.TrimSpace(text) == "" {
		return o.fail(recipient, "empty recipient or message")
	}
	if o.token == "" {
		return o.fail(recipient, "fonnte token not set")
	}

	form := url.Values{}
	form.Set("target", recipient)
	form.Set("message", text)
	form.Set("countryCode", o.countryCode)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.sendURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return o.fail(recipient, err.Error())
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", o.token)

	resp, err := o.client.Do(req)
	if err != nil {
		return o.fail(recipient, err.Error())
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return o.fail(recipient, fmt.Sprintf("fonnte api error: %s body=%s", resp.Status, short(string(body))))
	}

	res := DispatchResult{Delivered: true}
	switch {
	case readErr != nil:
		o.logger.Warn("fonnte response read failed", "target", recipient, "error", readErr)
	case json.Valid(body):
		res.ProviderResponse = json.RawMessage(body)
	default:
		o.logger.Debug("fonnte response not json", "target", recipient, "body", short(string(body)))
	}

	o.logger.Info("fonnte message sent", "target", recipient, "status", resp.StatusCode)
	return res
}

func (o *FonnteOutbound) fail(recipient, detail string) DispatchResult {
	o.logger.Error("fonnte send failed", "target", recipient, "error", detail)
	return DispatchResult{Delivered: false, ErrorDetail: detail}
}

func short(s string) string {
	r := []rune(s)
	if len(r) > 180 {
		return string(r[:180]) + "..."
	}
	return s
}
