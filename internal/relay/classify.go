package relay

import (
	"regexp"
	"strings"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/ai"
)

// Intent is one of Greeting, MentionTriggered, DirectedSend or PlainQuery.
type Intent interface {
	Name() string
	intent()
}

type Greeting struct{}

type MentionTriggered struct {
	StrippedMessage string
}

type DirectedSend struct {
	TargetRecipient string
	BodyText        string
}

type PlainQuery struct {
	MessageText string
}

func (Greeting) Name() string         { return "greeting" }
func (MentionTriggered) Name() string { return "mention" }
func (DirectedSend) Name() string     { return "directed_send" }
func (PlainQuery) Name() string       { return "plain_query" }

func (Greeting) intent()         {}
func (MentionTriggered) intent() {}
func (DirectedSend) intent()     {}
func (PlainQuery) intent()       {}

const (
	MentionMarker = "@aigizi"

	// emptyMentionPrompt is used when a group message holds nothing but the marker.
	emptyMentionPrompt = "halo"
)

var GreetingWords = []string{"halo", "hai", "hallo", "hey", "pagi", "siang", "malam"}

var (
	directedSendRe = regexp.MustCompile(`(?is)^(?:send|kirim)(?:\s+(?:pesan|message))?\s+(?:to|ke)\s+(?:number|nomor)\s+(\+?\d[\d\s-]{3,}\d)\s+(?:about|tentang)\s+(.+)$`)
	mentionRe      = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(MentionMarker))
)

// rule matches on the trimmed message and its lower-cased form.
type rule struct {
	name  string
	match func(ev InboundEvent, msg, lower string) (Intent, bool)
}

// rules are evaluated in priority order; the first match wins.
var rules = []rule{
	{name: "directed_send", match: matchDirectedSend},
	{name: "mention", match: matchMention},
	{name: "greeting", match: matchGreeting},
	{name: "plain_query", match: matchPlainQuery},
}

// Classify maps an event to exactly one Intent. It has no side effects.
func Classify(ev InboundEvent) Intent {
	msg := strings.TrimSpace(ev.RawMessage)
	lower := strings.ToLower(msg)

	for _, r := range rules {
		if in, ok := r.match(ev, msg, lower); ok {
			return in
		}
	}
	return PlainQuery{MessageText: msg}
}

func matchDirectedSend(_ InboundEvent, msg, _ string) (Intent, bool) {
	m := directedSendRe.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}

	target := digitsOnly(m[1])
	body := ai.Sanitize(m[2])
	if target == "" || body == "" {
		return nil, false
	}
	return DirectedSend{TargetRecipient: target, BodyText: body}, true
}

func matchMention(ev InboundEvent, msg, lower string) (Intent, bool) {
	if !ev.IsGroup || !strings.Contains(lower, MentionMarker) {
		return nil, false
	}

	stripped := strings.Join(strings.Fields(mentionRe.ReplaceAllString(msg, " ")), " ")
	if stripped == "" {
		stripped = emptyMentionPrompt
	}
	return MentionTriggered{StrippedMessage: stripped}, true
}

func matchGreeting(_ InboundEvent, _, lower string) (Intent, bool) {
	for _, w := range GreetingWords {
		if strings.Contains(lower, w) {
			return Greeting{}, true
		}
	}
	return nil, false
}

func matchPlainQuery(_ InboundEvent, msg, _ string) (Intent, bool) {
	return PlainQuery{MessageText: msg}, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
