package logutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: " warning ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func decodeOne(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	return rec
}

func TestNew_JSONWithServiceAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept", "sender", "62811")

	rec := decodeOne(t, &buf)
	if rec["msg"] != "kept" || rec["sender"] != "62811" || rec["service"] != ServiceName {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_MasksNumbers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Format: "json", MaskNumbers: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With("component", "relay").Info("message received",
		"sender", "6281234567890",
		"recipient", "120363@g.us",
		"intent", "greeting",
	)

	rec := decodeOne(t, &buf)
	if rec["sender"] != "*********7890" {
		t.Errorf("sender = %v", rec["sender"])
	}
	if rec["recipient"] != "*******g.us" {
		t.Errorf("recipient = %v", rec["recipient"])
	}
	if rec["intent"] != "greeting" || rec["component"] != "relay" {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestMaskNumber(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"":      "",
		"1234":  "1234",
		"62811": "*2811",
	} {
		if got := MaskNumber(in); got != want {
			t.Errorf("MaskNumber(%q) = %q, want %q", in, got, want)
		}
	}
}
