package notifier

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	domoutbox "github.com/waveshop/waveshop/internal/domain/outbox"
	"github.com/waveshop/waveshop/internal/domain/user"
	"go.uber.org/zap"
)

// Worker turns user lifecycle events into mail dispatches. Sender errors
// are logged and swallowed: notification failure never propagates to the
// operation that triggered it.
type Worker struct {
	sub    domoutbox.Subscriber
	sender Sender
	log    *zap.Logger
	sent   *prometheus.CounterVec // notifier_mail_total{template,outcome}
}

func New(sub domoutbox.Subscriber, sender Sender, log *zap.Logger, sent *prometheus.CounterVec) *Worker {
	if log == nil {
		log = zap.L()
	}
	return &Worker{
		sub:    sub,
		sender: sender,
		log:    log.With(zap.String("component", "notifier_worker")),
		sent:   sent,
	}
}

func (w *Worker) Start() {
	w.sub.Subscribe(user.RegisteredEvent{}.EventName(), w.handleRegistered)
	w.sub.Subscribe(user.PurchasedEvent{}.EventName(), w.handlePurchased)
	w.sub.Subscribe(user.ResetRequestedEvent{}.EventName(), w.handleResetRequested)
}

func (w *Worker) handleRegistered(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(user.RegisteredEvent)
	if !ok {
		return nil
	}
	w.dispatch(ctx, Message{To: evt.Email, Name: evt.Name, Template: TemplateWelcome})
	return nil
}

func (w *Worker) handlePurchased(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(user.PurchasedEvent)
	if !ok {
		return nil
	}
	w.dispatch(ctx, Message{To: evt.Email, Name: evt.Name, Template: TemplatePurchase})
	return nil
}

func (w *Worker) handleResetRequested(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(user.ResetRequestedEvent)
	if !ok {
		return nil
	}
	w.dispatch(ctx, Message{
		To:       evt.Email,
		Name:     evt.Name,
		Template: TemplateResetPassword,
		Token:    evt.ResetToken,
	})
	return nil
}

func (w *Worker) dispatch(ctx context.Context, msg Message) {
	outcome := "success"
	if err := w.sender.Send(ctx, msg); err != nil {
		outcome = "error"
		w.log.Warn("mail_dispatch_failed",
			zap.String("to", msg.To),
			zap.String("template", msg.Template),
			zap.Error(err),
		)
	}
	if w.sent != nil {
		w.sent.WithLabelValues(msg.Template, outcome).Inc()
	}
}
