package commands

import (
	"errors"

	"commissions/internal/pkg/guard"
)

var ErrAssignTalentCommandIsNotConstructed = errors.New(
	"AssignTalentCommand must be created via NewAssignTalentCommand constructor",
)

// AssignTalentCommand matches the oldest paid order without a producer to
// the talent with the most free capacity for its product line.
//
// Example:
//
//	cmd := NewAssignTalentCommand()
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoOrderFound) {
//	    return nil
//	}
type AssignTalentCommand struct {
	guard guard.ConstructorGuard
}

func NewAssignTalentCommand() AssignTalentCommand {
	return AssignTalentCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *AssignTalentCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignTalentCommandIsNotConstructed,
	)
}
