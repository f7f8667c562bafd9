package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicProvider_Complete(t *testing.T) {
	t.Parallel()

	var gotReq struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "Zat besi "}, {"type": "text", "text": "penting"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL})

	text, err := p.Complete(context.Background(), Request{Prompt: "hi", MaxTokens: 350})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "Zat besi penting" {
		t.Errorf("text = %q", text)
	}
	if gotReq.Model != DefaultAnthropicModel || gotReq.MaxTokens != 350 {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestAnthropicProvider_NoTextBlocks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: srv.URL})

	if _, err := p.Complete(context.Background(), Request{Prompt: "hi", MaxTokens: 10}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestAnthropicProvider_MissingKey(t *testing.T) {
	t.Parallel()

	p := NewAnthropicProvider(AnthropicConfig{})

	if _, err := p.Complete(context.Background(), Request{Prompt: "hi"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "", wantName: "gemini"},
		{name: "Gemini", wantName: "gemini"},
		{name: "OpenAI", wantName: "openai"},
		{name: "anthropic", wantName: "anthropic"},
		{name: "bard", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (go 1.21 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewProvider(ProviderConfig{Name: tt.name})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
