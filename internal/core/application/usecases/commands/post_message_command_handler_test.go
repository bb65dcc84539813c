package commands_test

import (
	"strings"
	"testing"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
	"commissions/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPostMessageCommand(t *testing.T) {
	t.Run("normalizes the role", func(t *testing.T) {
		cmd, err := commands.NewPostMessageCommand(kernel.NewUUID(), " Producer ", "p@studio.example.com", "hi")

		require.NoError(t, err)
		assert.Equal(t, message.AuthorProducer, cmd.AuthorRole())
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := commands.NewPostMessageCommand(kernel.NewUUID(), "admin", "", "hi")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPostMessageCommandHandler_Handle(t *testing.T) {
	t.Run("should store the message with the server timestamp", func(t *testing.T) {
		ctx := t.Context()
		o := paidVoice(t)
		cmd, err := commands.NewPostMessageCommand(o.ID(), "client", "client@example.com", "Please keep it warm.")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		messages := new(MockMessageRepository)
		messages.On("Add", ctx, mock.AnythingOfType("*message.Message")).Return(nil).Once()
		uow := newUoW(orders, messages)
		uow.On("Commit", ctx).Return(nil).Once()
		factory := new(MockMessageUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewPostMessageCommandHandler(factory, fixedClock(t0), commands.Notifier{})
		m, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, o.ID(), m.OrderID())
		assert.Equal(t, t0, m.CreatedAt())
		assert.Equal(t, "Please keep it warm.", m.Body())
		messages.AssertExpectations(t)
	})

	t.Run("should refuse outside the messaging statuses", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.ProductLineVoice, "tier1", kernel.RightsStandard, kernel.RightsStandard)
		cmd, err := commands.NewPostMessageCommand(o.ID(), "client", "", "hello?")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow := newUoW(orders)
		factory := new(MockMessageUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewPostMessageCommandHandler(factory, fixedClock(t0), commands.Notifier{})
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should refuse an oversized body", func(t *testing.T) {
		ctx := t.Context()
		o := paidVoice(t)
		cmd, err := commands.NewPostMessageCommand(o.ID(), "client", "", strings.Repeat("a", message.MaxBodyLength+1))
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		messages := new(MockMessageRepository)
		uow := newUoW(orders, messages)
		factory := new(MockMessageUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewPostMessageCommandHandler(factory, fixedClock(t0), commands.Notifier{})
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		messages.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}
