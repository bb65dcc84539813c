package commands

import (
	"errors"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrPaymentRefIsRequired = errs.NewValueIsRequiredError("payment ref")
)

// ConfirmPaymentCommand records a successful charge reported by the payment
// gateway.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	paymentRef string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID kernel.UUID, paymentRef string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentRef(paymentRef),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPaymentCommand) PaymentRef() string {
	return c.paymentRef
}

func (c *ConfirmPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ConfirmPaymentCommand) setPaymentRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrPaymentRefIsRequired
	}
	c.paymentRef = ref
	return nil
}
