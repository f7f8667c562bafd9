// Package logutil builds the process logger from the logging.* config keys.
package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ServiceName is attached to every record as "service".
const ServiceName = "aigizi"

// numberKeys are the attributes that carry WhatsApp numbers or group ids.
var numberKeys = map[string]bool{
	"sender":    true,
	"recipient": true,
	"target":    true,
}

// Options mirrors the logging.* keys.
type Options struct {
	Level       string
	Format      string // text | json
	AddSource   bool
	MaskNumbers bool
}

func OptionsFromViper() Options {
	return Options{
		Level:       viper.GetString("logging.level"),
		Format:      viper.GetString("logging.format"),
		AddSource:   viper.GetBool("logging.add_source"),
		MaskNumbers: viper.GetBool("logging.mask_numbers"),
	}
}

// LoggerFromViper writes to stderr.
func LoggerFromViper() (*slog.Logger, error) {
	return New(os.Stderr, OptionsFromViper())
}

func New(w io.Writer, o Options) (*slog.Logger, error) {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: o.AddSource}
	if o.MaskNumbers {
		handlerOpts.ReplaceAttr = maskNumberAttr
	}

	var h slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(o.Format)); format {
	case "", "text":
		h = slog.NewTextHandler(w, handlerOpts)
	case "json":
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("logutil: unknown logging.format %q", o.Format)
	}

	return slog.New(h).With("service", ServiceName), nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logutil: unknown logging.level %q", s)
}

func maskNumberAttr(_ []string, a slog.Attr) slog.Attr {
	if !numberKeys[a.Key] || a.Value.Kind() != slog.KindString {
		return a
	}
	return slog.String(a.Key, MaskNumber(a.Value.String()))
}

// MaskNumber keeps the last four characters: "6281234567890" -> "*********7890".
func MaskNumber(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return s
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
