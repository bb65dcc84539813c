package commands

import (
	"context"
	"time"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"
)

// TransitionOrderCommandHandler applies one event through the order's
// product-line table and persists the result with a compare-and-set on the
// status it was read in. When the order completes, the assigned talent's
// slot is released in the same transaction.
type TransitionOrderCommandHandler struct {
	uowFactory        LifecycleUoWFactory
	clock             Clock
	autoCompleteAfter time.Duration
	notifier          Notifier
	metrics           *metrics.Metrics
}

func NewTransitionOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	clock Clock,
	autoCompleteAfter time.Duration,
	notifier Notifier,
	m *metrics.Metrics,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:        uowFactory,
		clock:             clock,
		autoCompleteAfter: autoCompleteAfter,
		notifier:          notifier,
		metrics:           m,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	from := o.Status()
	env := order.Env{Now: now, AutoCompleteAfter: h.autoCompleteAfter}
	if err = o.Apply(cmd.Event(), cmd.Payload(), env); err != nil {
		h.metrics.IncTransition(o.ProductLine().String(), cmd.Event().String(), metrics.ResultRejected)
		return nil, err
	}

	if err = persistTransition(ctx, uow, o); err != nil {
		h.metrics.IncTransition(o.ProductLine().String(), cmd.Event().String(), metrics.ResultError)
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	h.metrics.IncTransition(o.ProductLine().String(), cmd.Event().String(), metrics.ResultOK)

	ev := orderEvent(ports.NotificationOrderTransitioned, o, now)
	ev.Event = cmd.Event().String()
	ev.From = from.String()
	h.notifier.Notify(ctx, ev)
	return o, nil
}

// persistTransition writes the order and, once it is completed, frees the
// slot of the talent producing it.
func persistTransition(ctx context.Context, uow LifecycleUoW, o *order.Order) error {
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if o.Status() != order.Completed || o.Talent() == nil {
		return nil
	}

	talents := uow.TalentRepository()
	t, err := talents.Get(ctx, *o.Talent())
	if err != nil {
		return err
	}
	if err = t.ReleaseOrder(); err != nil {
		return err
	}
	return talents.Update(ctx, t)
}
