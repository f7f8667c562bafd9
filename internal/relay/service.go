package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// GreetingReply is sent for Greeting intents; no AI call is made.
const GreetingReply = "👋 Hai! Aku *Aira Nutria*, asisten edukasi gizi anak.\n" +
	"Silakan tanya apa yang ingin kamu ketahui tentang nutrisi & pola makan sehat untuk anak 😊"

// PingQuestion is answered by the diagnostic ping.
const PingQuestion = "Apa saja makanan bergizi untuk anak usia 1 tahun?"

type ServiceConfig struct {
	Logger        *slog.Logger
	Recorder      Recorder
	TestRecipient string
}

type service struct {
	replier       Replier
	outbound      Outbound
	logger        *slog.Logger
	recorder      Recorder
	testRecipient string
}

func NewService(replier Replier, outbound Outbound, cfg ServiceConfig) Service {
	s := &service{
		replier:       replier,
		outbound:      outbound,
		logger:        cfg.Logger,
		recorder:      cfg.Recorder,
		testRecipient: strings.TrimSpace(cfg.TestRecipient),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	return s
}

func (s *service) Handle(ctx context.Context, payload []byte) (Outcome, error) {
	ev, err := ParseEvent(payload)
	if err != nil {
		s.logger.Warn("webhook rejected", "error", err)
		return Outcome{}, err
	}
	return s.HandleEvent(ctx, ev), nil
}

func (s *service) HandleEvent(ctx context.Context, ev InboundEvent) Outcome {
	in := Classify(ev)
	recipient := ev.Recipient()

	s.recorder.ObserveIntent(in.Name())
	s.logger.Info("message received",
		"sender", ev.Sender,
		"group", ev.IsGroup,
		"intent", in.Name(),
		"recipient", recipient,
		"text", short(ev.RawMessage),
	)

	out := Outcome{Intent: in, Recipient: recipient}

	switch v := in.(type) {
	case DirectedSend:
		primary := s.send(ctx, v.TargetRecipient, v.BodyText)
		out.Result = primary

		out.Reply = confirmationText(v.TargetRecipient, primary.Delivered)
		confirm := s.send(ctx, recipient, out.Reply)
		out.Confirmation = &confirm
		return out

	case Greeting:
		out.Reply = GreetingReply

	case MentionTriggered:
		s.applyReply(ctx, &out, v.StrippedMessage)

	case PlainQuery:
		s.applyReply(ctx, &out, v.MessageText)

	default:
		// unreachable: Intent is closed
		panic(fmt.Sprintf("relay: unknown intent %T", in))
	}

	out.Result = s.send(ctx, recipient, out.Reply)
	return out
}

// Ping runs PingQuestion through generation and sends the answer to the test recipient.
func (s *service) Ping(ctx context.Context) (Outcome, error) {
	if s.testRecipient == "" {
		return Outcome{}, ErrPingDisabled
	}

	out := Outcome{
		Intent:    PlainQuery{MessageText: PingQuestion},
		Recipient: s.testRecipient,
	}
	s.applyReply(ctx, &out, PingQuestion)
	out.Result = s.send(ctx, s.testRecipient, out.Reply)

	s.logger.Info("diagnostic ping", "recipient", s.testRecipient, "delivered", out.Result.Delivered)
	return out, nil
}

func (s *service) applyReply(ctx context.Context, out *Outcome, text string) {
	reply := s.replier.Generate(ctx, text)
	out.Reply = reply.Text
	out.Fallback = reply.Fallback
}

func (s *service) send(ctx context.Context, recipient, text string) DispatchResult {
	res := s.outbound.Send(ctx, recipient, text)
	s.recorder.ObserveDispatch(res.Delivered)
	return res
}

func confirmationText(target string, delivered bool) string {
	if delivered {
		return fmt.Sprintf("✅ Pesan berhasil dikirim ke %s.", target)
	}
	return fmt.Sprintf("⚠️ Pesan ke %s gagal dikirim. Coba lagi nanti ya 🙏", target)
}

type nopRecorder struct{}

func (nopRecorder) ObserveWebhook(int)   {}
func (nopRecorder) ObserveIntent(string) {}
func (nopRecorder) ObserveDispatch(bool) {}
