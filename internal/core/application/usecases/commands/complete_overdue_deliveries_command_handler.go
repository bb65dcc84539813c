package commands

import (
	"context"

	"commissions/internal/core/domain/model/order"

	"go.uber.org/multierr"
)

// CompleteOverdueDeliveriesCommandHandler is the sweep behind the optional
// auto-complete job. Each order goes through the same idempotent check an
// order read performs, in its own transaction, so one failing order does not
// hold back the rest. It returns the number of orders it completed together
// with every per-order error.
type CompleteOverdueDeliveriesCommandHandler struct {
	uowFactory LifecycleUoWFactory
	checker    CheckAutoCompleteCommandHandler
	clock      Clock
}

func NewCompleteOverdueDeliveriesCommandHandler(
	uowFactory LifecycleUoWFactory,
	checker CheckAutoCompleteCommandHandler,
	clock Clock,
) CompleteOverdueDeliveriesCommandHandler {
	return CompleteOverdueDeliveriesCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
	}
}

func (h CompleteOverdueDeliveriesCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteOverdueDeliveriesCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	overdue, err := h.listOverdue(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	var (
		completed int
		errList   error
	)
	for _, o := range overdue {
		check, err := NewCheckAutoCompleteCommand(o.ID())
		if err != nil {
			errList = multierr.Append(errList, err)
			continue
		}
		updated, err := h.checker.Handle(ctx, check)
		if err != nil {
			errList = multierr.Append(errList, err)
			continue
		}
		if updated.Status() == order.Completed {
			completed++
		}
	}
	return completed, errList
}

func (h CompleteOverdueDeliveriesCommandHandler) listOverdue(ctx context.Context, limit int) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetDeliveredPastDeadline(ctx, h.clock.now(), limit)
}
