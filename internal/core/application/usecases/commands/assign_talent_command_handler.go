package commands

import (
	"context"
	"errors"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/errs"
)

var (
	ErrNoAvailableTalentFound = errors.New("no available talent found")
	ErrNoOrderFound           = errors.New("no order found")
)

// AssignTalentCommandHandler links one waiting order to a producer. The
// order status is not touched; only its talent and the talent's load change.
//
// Example:
//
//	err := handler.Handle(ctx, NewAssignTalentCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("no paid orders waiting")
//	case errors.Is(err, ErrNoAvailableTalentFound):
//	    log.Println("every talent is at capacity")
//	}
type AssignTalentCommandHandler struct {
	uowFactory LifecycleUoWFactory
	assigner   services.TalentAssigner
	clock      Clock
	notifier   Notifier
}

func NewAssignTalentCommandHandler(
	uowFactory LifecycleUoWFactory,
	assigner services.TalentAssigner,
	clock Clock,
	notifier Notifier,
) AssignTalentCommandHandler {
	return AssignTalentCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h AssignTalentCommandHandler) Handle(ctx context.Context, command AssignTalentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	talentRepo := uow.TalentRepository()
	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.GetFirstPaidUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOrderFound
	}
	if err != nil {
		return nil, err
	}

	talents, err := talentRepo.GetAvailable(ctx, o.ProductLine())
	if err != nil {
		return nil, err
	}
	if len(talents) == 0 {
		return nil, ErrNoAvailableTalentFound
	}

	assigned, err := h.assigner.Assign(o, talents)
	if errors.Is(err, services.ErrTalentNotFound) {
		return nil, ErrNoAvailableTalentFound
	}
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = talentRepo.Update(ctx, assigned); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, orderEvent(ports.NotificationTalentAssigned, o, h.clock.now()))
	return o, nil
}
