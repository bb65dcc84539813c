package commands

import (
	"context"
	"errors"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/metrics"
)

// CheckAutoCompleteCommandHandler returns the order after completing it when
// its auto-complete deadline has passed. Two readers may race on the same
// order; the loser's conditional write fails and it returns the winner's
// stored state instead of an error.
type CheckAutoCompleteCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      Clock
	notifier   Notifier
	metrics    *metrics.Metrics
}

func NewCheckAutoCompleteCommandHandler(
	uowFactory LifecycleUoWFactory,
	clock Clock,
	notifier Notifier,
	m *metrics.Metrics,
) CheckAutoCompleteCommandHandler {
	return CheckAutoCompleteCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		metrics:    m,
	}
}

func (h CheckAutoCompleteCommandHandler) Handle(ctx context.Context, cmd CheckAutoCompleteCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	o, completed, err := h.check(ctx, cmd.OrderID(), now)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return h.reload(ctx, cmd.OrderID())
	}
	if err != nil {
		return nil, err
	}

	if completed {
		h.metrics.IncAutoCompletion(o.ProductLine().String())
		ev := orderEvent(ports.NotificationOrderAutoCompleted, o, now)
		ev.Event = order.EventAutoComplete.String()
		ev.From = order.Delivered.String()
		h.notifier.Notify(ctx, ev)
	}
	return o, nil
}

func (h CheckAutoCompleteCommandHandler) check(ctx context.Context, id kernel.UUID, now time.Time) (*order.Order, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	completed, err := o.CheckAutoComplete(now)
	if err != nil || !completed {
		return o, false, err
	}

	if err = persistTransition(ctx, uow, o); err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func (h CheckAutoCompleteCommandHandler) reload(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}
