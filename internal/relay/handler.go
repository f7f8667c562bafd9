package relay

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const maxPayloadBytes = 1 << 20

type Handler struct {
	svc       Service
	logger    *slog.Logger
	recorder  Recorder
	pingOnGet bool
}

type HandlerConfig struct {
	Logger    *slog.Logger
	Recorder  Recorder
	PingOnGet bool
}

func NewHandler(svc Service, cfg HandlerConfig) *Handler {
	h := &Handler{
		svc:       svc,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
		pingOnGet: cfg.PingOnGet,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.recorder == nil {
		h.recorder = nopRecorder{}
	}
	return h
}

type webhookResponse struct {
	OK        bool   `json:"ok"`
	Sent      bool   `json:"sent"`
	Intent    string `json:"intent,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleWebhook handles an inbound message from the gateway.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", uuid.NewString())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("webhook panic", "panic", rec)
			h.write(w, http.StatusInternalServerError, webhookResponse{Error: "internal error"})
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.write(w, http.StatusBadRequest, webhookResponse{Error: "unreadable body"})
		return
	}

	out, err := h.svc.Handle(r.Context(), body)
	switch {
	case errors.Is(err, ErrInvalidPayload):
		h.write(w, http.StatusBadRequest, webhookResponse{Error: err.Error()})
		return
	case err != nil:
		logger.Error("webhook processing failed", "error", err)
		h.write(w, http.StatusInternalServerError, webhookResponse{Error: "internal error"})
		return
	}

	logger.Info("webhook handled",
		"intent", out.Intent.Name(),
		"recipient", out.Recipient,
		"sent", out.Result.Delivered,
		"fallback", out.Fallback,
	)

	// the webhook itself succeeded even when delivery did not
	h.write(w, http.StatusOK, outcomeResponse(out))
}

// HandleStatus answers GET on the webhook path: a liveness ack, or an opt-in diagnostic ping.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !h.pingOnGet || r.URL.Query().Get("ping") == "" {
		h.write(w, http.StatusOK, webhookResponse{OK: true, Message: "Webhook aktif."})
		return
	}

	out, err := h.svc.Ping(r.Context())
	if errors.Is(err, ErrPingDisabled) {
		h.write(w, http.StatusOK, webhookResponse{OK: true, Message: "Webhook aktif.", Detail: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("diagnostic ping failed", "error", err)
		h.write(w, http.StatusInternalServerError, webhookResponse{Error: "internal error"})
		return
	}

	resp := outcomeResponse(out)
	resp.Message = "Webhook aktif."
	h.write(w, http.StatusOK, resp)
}

func outcomeResponse(out Outcome) webhookResponse {
	return webhookResponse{
		OK:        true,
		Sent:      out.Result.Delivered,
		Intent:    out.Intent.Name(),
		Recipient: out.Recipient,
		Fallback:  out.Fallback,
		Detail:    out.Result.ErrorDetail,
	}
}

func (h *Handler) write(w http.ResponseWriter, status int, resp webhookResponse) {
	h.recorder.ObserveWebhook(status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
