package commands

import (
	"errors"

	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

// DefaultSweepBatchSize bounds the orders one sweep looks at.
const DefaultSweepBatchSize = 100

var ErrCompleteOverdueDeliveriesCommandIsNotConstructed = errors.New(
	"CompleteOverdueDeliveriesCommand must be created via NewCompleteOverdueDeliveriesCommand constructor",
)

// CompleteOverdueDeliveriesCommand runs the auto-complete check over
// delivered orders whose review window has elapsed.
type CompleteOverdueDeliveriesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewCompleteOverdueDeliveriesCommand(batchSize int) (CompleteOverdueDeliveriesCommand, error) {
	if batchSize == 0 {
		batchSize = DefaultSweepBatchSize
	}
	if batchSize < 0 {
		return CompleteOverdueDeliveriesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return CompleteOverdueDeliveriesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOverdueDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOverdueDeliveriesCommandIsNotConstructed)
}

func (c CompleteOverdueDeliveriesCommand) BatchSize() int {
	return c.batchSize
}
