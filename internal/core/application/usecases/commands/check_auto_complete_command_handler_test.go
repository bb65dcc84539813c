package commands_test

import (
	"testing"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCheckAutoCompleteCommand(t *testing.T) {
	_, err := commands.NewCheckAutoCompleteCommand(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCheckAutoCompleteCommandHandler_Handle(t *testing.T) {
	t.Run("should return the order untouched inside the review window", func(t *testing.T) {
		ctx := t.Context()
		o := deliveredOrchestra(t)
		cmd, err := commands.NewCheckAutoCompleteCommand(o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow := newUoW(repo)
		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCheckAutoCompleteCommandHandler(factory, fixedClock(t0), commands.Notifier{}, nil)
		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should complete once the deadline passed", func(t *testing.T) {
		ctx := t.Context()
		o := deliveredOrchestra(t)
		cmd, err := commands.NewCheckAutoCompleteCommand(o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		repo.On("Update", ctx, o).Return(nil).Once()
		uow := newUoW(repo)
		uow.On("Commit", ctx).Return(nil).Once()
		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(uow).Once()

		dispatcher := new(MockDispatcher)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(ev ports.OrderEvent) bool {
			return ev.Kind == ports.NotificationOrderAutoCompleted && ev.To == "completed"
		})).Return(nil).Once()

		h := commands.NewCheckAutoCompleteCommandHandler(
			factory, fixedClock(t0.Add(reviewWindow)), commands.NewNotifier(dispatcher, zerolog.Nop(), nil), nil,
		)
		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, got.Status())
		assert.Nil(t, got.AutoCompleteAt())
		uow.AssertExpectations(t)
		dispatcher.AssertExpectations(t)
	})

	t.Run("should return the stored order when another reader won", func(t *testing.T) {
		ctx := t.Context()
		stale := deliveredOrchestra(t)
		cmd, err := commands.NewCheckAutoCompleteCommand(stale.ID())
		require.NoError(t, err)

		winner := deliveredOrchestra(t)
		_, err = winner.CheckAutoComplete(t0.Add(reviewWindow))
		require.NoError(t, err)

		first := new(MockOrderRepository)
		first.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
		first.On("Update", ctx, stale).Return(errs.NewPreconditionFailedError("order", stale.ID().String())).Once()
		losing := newUoW(first)

		second := new(MockOrderRepository)
		second.On("Get", ctx, stale.ID()).Return(winner, nil).Once()
		reread := newUoW(second)

		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(losing).Once()
		factory.On("Create").Return(reread).Once()

		dispatcher := new(MockDispatcher)
		h := commands.NewCheckAutoCompleteCommandHandler(
			factory, fixedClock(t0.Add(reviewWindow)), commands.NewNotifier(dispatcher, zerolog.Nop(), nil), nil,
		)
		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Same(t, winner, got)
		assert.Equal(t, order.Completed, got.Status())
		losing.AssertNotCalled(t, "Commit", mock.Anything)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})
}
