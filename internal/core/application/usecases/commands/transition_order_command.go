package commands

import (
	"errors"
	"fmt"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand raises a client or producer event on an order.
// System-only events (pay, autoComplete) are refused here; they have their
// own commands.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	event   order.Event
	payload order.Payload

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, event string, payload order.Payload) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard:   guard.NewConstructorGuard(),
		payload: payload,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEvent(event),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderCommand) Event() order.Event {
	return c.event
}

func (c TransitionOrderCommand) Payload() order.Payload {
	return c.payload
}

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setEvent(value string) error {
	event, err := order.ParseEvent(value)
	if err != nil {
		return err
	}
	if event.IsSystemOnly() {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s is raised by the system only", event))
	}
	c.event = event
	return nil
}
