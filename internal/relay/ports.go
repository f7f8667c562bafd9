package relay

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/ai"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrPingDisabled   = errors.New("ping disabled: no test recipient configured")
)

// DispatchResult is the outcome of one gateway send. It never carries a Go error.
type DispatchResult struct {
	Delivered        bool            `json:"delivered"`
	ProviderResponse json.RawMessage `json:"provider_response,omitempty"`
	ErrorDetail      string          `json:"error,omitempty"`
}

// Outbound is the messaging gateway.
type Outbound interface {
	Send(ctx context.Context, recipient string, text string) DispatchResult
}

// Replier produces AI replies; *ai.ReplyGenerator implements it.
type Replier interface {
	Generate(ctx context.Context, userMessage string) ai.Reply
}

type Recorder interface {
	ObserveWebhook(status int)
	ObserveIntent(intent string)
	ObserveDispatch(delivered bool)
}

// Outcome describes what one inbound call did.
type Outcome struct {
	Intent    Intent
	Recipient string
	Reply     string
	Fallback  bool
	Result    DispatchResult

	// Confirmation is set for DirectedSend only: the notice sent back to the requester.
	Confirmation *DispatchResult
}

// Service orchestrates one inbound webhook call.
type Service interface {
	Handle(ctx context.Context, payload []byte) (Outcome, error)
	HandleEvent(ctx context.Context, ev InboundEvent) Outcome
	Ping(ctx context.Context) (Outcome, error)
}
