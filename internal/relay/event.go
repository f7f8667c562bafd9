package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// InboundEvent is one normalised webhook call.
type InboundEvent struct {
	Sender     string
	RawMessage string
	IsGroup    bool
	GroupID    string // empty unless IsGroup
}

var (
	senderKeys  = []string{"sender", "from", "number"}
	messageKeys = []string{"message", "text"}
	groupKeys   = []string{"group_id", "groupid", "group"}
)

// ParseEvent decodes a gateway webhook body. Any error wraps ErrInvalidPayload.
func ParseEvent(payload []byte) (InboundEvent, error) {
	var raw map[string]any

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return InboundEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw == nil {
		return InboundEvent{}, fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}

	ev := InboundEvent{
		Sender:     firstString(raw, senderKeys...),
		RawMessage: firstString(raw, messageKeys...),
		IsGroup:    boolField(raw["isgroup"]),
	}
	if ev.IsGroup {
		ev.GroupID = firstString(raw, groupKeys...)
	}

	if err := ev.Validate(); err != nil {
		return InboundEvent{}, err
	}
	return ev, nil
}

func (ev InboundEvent) Validate() error {
	if strings.TrimSpace(ev.Sender) == "" {
		return fmt.Errorf("%w: missing sender", ErrInvalidPayload)
	}
	if strings.TrimSpace(ev.RawMessage) == "" {
		return fmt.Errorf("%w: missing message", ErrInvalidPayload)
	}
	return nil
}

// Recipient is where replies go: the group for group events, otherwise the sender.
// A group event without a group id falls back to the sender.
func (ev InboundEvent) Recipient() string {
	if ev.IsGroup && ev.GroupID != "" {
		return ev.GroupID
	}
	return ev.Sender
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		var s string
		switch v := raw[k].(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func boolField(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true
		}
	case json.Number:
		return b.String() == "1"
	}
	return false
}
