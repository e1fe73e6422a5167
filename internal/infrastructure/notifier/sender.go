package notifier

import (
	"context"

	"go.uber.org/zap"
)

// Template names for outbound mail, kept stable for the mail provider
// integration.
const (
	TemplateWelcome       = "welcome"
	TemplatePurchase      = "purchase"
	TemplateResetPassword = "reset-password"
)

type Message struct {
	To       string
	Name     string
	Template string
	// Token is the reset credential embedded in the reset-password mail.
	Token string
}

// Sender dispatches a single mail. Implementations are best-effort; the
// worker logs and swallows every failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender records the dispatch instead of talking to a mail provider.
// The default wiring until an SMTP/API sender is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	if log == nil {
		log = zap.L()
	}
	return &LogSender{log: log.With(zap.String("component", "mail_sender"))}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	_ = ctx
	s.log.Info("mail_dispatched",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
	)
	return nil
}
