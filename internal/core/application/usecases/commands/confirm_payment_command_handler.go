package commands

import (
	"context"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"
)

// ConfirmPaymentCommandHandler re-resolves the order's effective rights from
// its frozen terms before accepting the payment, so an order is never charged
// for rights that differ from what was quoted. The order then moves to paid.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.RightsResolver
	clock      Clock
	notifier   Notifier
	metrics    *metrics.Metrics
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.RightsResolver,
	clock Clock,
	notifier Notifier,
	m *metrics.Metrics,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		clock:      clock,
		notifier:   notifier,
		metrics:    m,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	resolved, err := h.resolver.ResolveFrozen(o.ProductLine(), o.TopTier(), o.RequestedRights())
	if err != nil {
		return nil, err
	}
	if err = o.VerifyEffectiveRights(resolved); err != nil {
		h.metrics.IncTransition(o.ProductLine().String(), order.EventPay.String(), metrics.ResultRejected)
		return nil, err
	}

	now := h.clock.now()
	from := o.Status()
	if err = o.Apply(order.EventPay, order.Payload{PaymentRef: cmd.PaymentRef()}, order.Env{Now: now}); err != nil {
		h.metrics.IncTransition(o.ProductLine().String(), order.EventPay.String(), metrics.ResultRejected)
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	h.metrics.IncTransition(o.ProductLine().String(), order.EventPay.String(), metrics.ResultOK)

	ev := orderEvent(ports.NotificationOrderTransitioned, o, now)
	ev.Event = order.EventPay.String()
	ev.From = from.String()
	h.notifier.Notify(ctx, ev)
	return o, nil
}
