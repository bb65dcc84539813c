package commands

import (
	"errors"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

var (
	ErrCreateTalentCommandIsNotConstructed = errors.New(
		"CreateTalentCommand must be created via NewCreateTalentCommand constructor",
	)
	ErrProductLinesAreRequired = errs.NewValueIsRequiredError("product lines")
)

// CreateTalentCommand registers a producer for one or more product lines.
// A zero capacity takes the default.
type CreateTalentCommand struct { //nolint:recvcheck //using for validation
	talentID     kernel.UUID
	name         string
	email        kernel.Email
	productLines []kernel.ProductLine
	capacity     int

	guard guard.ConstructorGuard
}

func NewCreateTalentCommand(name, email string, productLines []string, capacity int) (CreateTalentCommand, error) {
	cmd := CreateTalentCommand{
		talentID: kernel.NewUUID(),
		name:     strings.TrimSpace(name),
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setProductLines(productLines),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateTalentCommand{}, err
	}

	return cmd, nil
}

func (c CreateTalentCommand) Validate() error {
	return c.guard.Validate(ErrCreateTalentCommandIsNotConstructed)
}

func (c CreateTalentCommand) TalentID() kernel.UUID {
	return c.talentID
}

func (c CreateTalentCommand) Name() string {
	return c.name
}

func (c CreateTalentCommand) Email() kernel.Email {
	return c.email
}

func (c CreateTalentCommand) ProductLines() []kernel.ProductLine {
	return append([]kernel.ProductLine(nil), c.productLines...)
}

func (c CreateTalentCommand) Capacity() int {
	return c.capacity
}

func (c *CreateTalentCommand) setEmail(value string) error {
	email, err := kernel.NewEmail(value)
	if err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *CreateTalentCommand) setProductLines(values []string) error {
	if len(values) == 0 {
		return ErrProductLinesAreRequired
	}
	lines := make([]kernel.ProductLine, 0, len(values))
	for _, v := range values {
		pl, err := kernel.ParseProductLine(v)
		if err != nil {
			return err
		}
		lines = append(lines, pl)
	}
	c.productLines = lines
	return nil
}

func (c *CreateTalentCommand) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 0, "unbounded")
	}
	c.capacity = capacity
	return nil
}
