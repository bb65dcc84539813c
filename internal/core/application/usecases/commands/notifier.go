package commands

import (
	"context"
	"time"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

// Clock supplies the current time to handlers.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// Notifier hands events to the dispatcher after a successful commit. Dispatch
// failures are logged and counted, never returned: the write already happened.
// The zero value drops every event.
type Notifier struct {
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

func NewNotifier(dispatcher ports.NotificationDispatcher, logger zerolog.Logger, m *metrics.Metrics) Notifier {
	return Notifier{dispatcher: dispatcher, logger: logger, metrics: m}
}

func (n Notifier) Notify(ctx context.Context, event ports.OrderEvent) {
	if n.dispatcher == nil {
		return
	}
	if err := n.dispatcher.Dispatch(ctx, event); err != nil {
		n.metrics.IncNotificationFailure(event.Kind)
		n.logger.Warn().
			Err(err).
			Str("kind", event.Kind).
			Str("order_id", event.OrderID).
			Msg("notification dispatch failed")
	}
}

func orderEvent(kind string, o *order.Order, at time.Time) ports.OrderEvent {
	ev := ports.OrderEvent{
		Kind:        kind,
		OrderID:     o.ID().String(),
		ProductLine: o.ProductLine().String(),
		To:          o.Status().String(),
		ClientEmail: o.ClientEmail().String(),
		OccurredAt:  at,
	}
	if id := o.Talent(); id != nil {
		ev.TalentID = id.String()
	}
	return ev
}
