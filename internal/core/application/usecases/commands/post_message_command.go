package commands

import (
	"errors"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
	"commissions/internal/pkg/guard"
)

var ErrPostMessageCommandIsNotConstructed = errors.New(
	"PostMessageCommand must be created via NewPostMessageCommand constructor",
)

// PostMessageCommand appends a message to an order's log.
type PostMessageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	role        message.AuthorRole
	authorEmail string
	body        string

	guard guard.ConstructorGuard
}

func NewPostMessageCommand(orderID kernel.UUID, role, authorEmail, body string) (PostMessageCommand, error) {
	cmd := PostMessageCommand{
		authorEmail: strings.TrimSpace(authorEmail),
		body:        body,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRole(role),
	); err != nil {
		return PostMessageCommand{}, err
	}

	return cmd, nil
}

func (c PostMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostMessageCommandIsNotConstructed)
}

func (c PostMessageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PostMessageCommand) AuthorRole() message.AuthorRole {
	return c.role
}

func (c PostMessageCommand) AuthorEmail() string {
	return c.authorEmail
}

func (c PostMessageCommand) Body() string {
	return c.body
}

func (c *PostMessageCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PostMessageCommand) setRole(value string) error {
	role := message.AuthorRole(strings.ToLower(strings.TrimSpace(value)))
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
