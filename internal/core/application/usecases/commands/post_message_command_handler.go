package commands

import (
	"context"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
	"commissions/internal/core/ports"
)

// PostMessageCommandHandler stores a message when the order's status allows
// messaging for its product line. Timestamps come from the server clock.
type PostMessageCommandHandler struct {
	uowFactory MessageUoWFactory
	clock      Clock
	notifier   Notifier
}

func NewPostMessageCommandHandler(uowFactory MessageUoWFactory, clock Clock, notifier Notifier) PostMessageCommandHandler {
	return PostMessageCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h PostMessageCommandHandler) Handle(ctx context.Context, cmd PostMessageCommand) (*message.Message, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.EnsureMessagingOpen(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	m, err := message.NewMessage(kernel.NewUUID(), o.ID(), cmd.AuthorRole(), cmd.AuthorEmail(), cmd.Body(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.MessageRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, orderEvent(ports.NotificationMessagePosted, o, now))
	return m, nil
}
