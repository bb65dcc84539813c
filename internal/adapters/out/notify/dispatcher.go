// Package notify provides NotificationDispatcher implementations that do
// not need an external broker.
package notify

import (
	"context"

	"commissions/internal/core/ports"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// LogDispatcher writes every order event to the structured log.
type LogDispatcher struct {
	logger zerolog.Logger
}

func NewLogDispatcher(logger zerolog.Logger) LogDispatcher {
	return LogDispatcher{logger: logger}
}

func (d LogDispatcher) Dispatch(_ context.Context, event ports.OrderEvent) error {
	d.logger.Info().
		Str("kind", event.Kind).
		Str("order_id", event.OrderID).
		Str("product_line", event.ProductLine).
		Str("event", event.Event).
		Str("from", event.From).
		Str("to", event.To).
		Str("talent_id", event.TalentID).
		Time("occurred_at", event.OccurredAt).
		Msg("order event")
	return nil
}

// Fanout hands each event to every dispatcher, even when earlier ones fail.
type Fanout []ports.NotificationDispatcher

func (f Fanout) Dispatch(ctx context.Context, event ports.OrderEvent) error {
	var err error
	for _, d := range f {
		err = multierr.Append(err, d.Dispatch(ctx, event))
	}
	return err
}
