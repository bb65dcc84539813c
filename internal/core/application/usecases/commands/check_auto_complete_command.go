package commands

import (
	"errors"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/guard"
)

var ErrCheckAutoCompleteCommandIsNotConstructed = errors.New(
	"CheckAutoCompleteCommand must be created via NewCheckAutoCompleteCommand constructor",
)

// CheckAutoCompleteCommand loads an order and completes it if its review
// window has elapsed. Every order read goes through it.
type CheckAutoCompleteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckAutoCompleteCommand(orderID kernel.UUID) (CheckAutoCompleteCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CheckAutoCompleteCommand{}, err
	}
	return CheckAutoCompleteCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CheckAutoCompleteCommand) Validate() error {
	return c.guard.Validate(ErrCheckAutoCompleteCommandIsNotConstructed)
}

func (c CheckAutoCompleteCommand) OrderID() kernel.UUID {
	return c.orderID
}
