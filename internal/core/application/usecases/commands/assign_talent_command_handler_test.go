package commands_test

import (
	"testing"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/core/domain/services"
	"commissions/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignHandler(factory commands.LifecycleUoWFactory) commands.AssignTalentCommandHandler {
	return commands.NewAssignTalentCommandHandler(factory, services.NewTalentAssigner(), fixedClock(t0), commands.Notifier{})
}

func TestAssignTalentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := paidVoice(t)
	busy := newTalent(t, "ana", kernel.ProductLineVoice)
	require.NoError(t, busy.TakeOrder(o))
	free := newTalent(t, "ben", kernel.ProductLineVoice)

	orders := new(MockOrderRepository)
	talents := new(MockTalentRepository)
	uow := newUoW(orders, talents)
	mock.InOrder(
		orders.On("GetFirstPaidUnassigned", ctx).Return(o, nil).Once(),
		talents.On("GetAvailable", ctx, kernel.ProductLineVoice).Return([]*talent.Talent{busy, free}, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		talents.On("Update", ctx, free).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	got, err := newAssignHandler(factory).Handle(ctx, commands.NewAssignTalentCommand())

	require.NoError(t, err)
	require.NotNil(t, got.Talent())
	assert.Equal(t, free.ID(), *got.Talent())
	assert.Equal(t, order.Paid, got.Status())
	assert.Equal(t, 1, free.ActiveOrders())
	orders.AssertExpectations(t)
	talents.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignTalentCommandHandler_Handle_NoOrder(t *testing.T) {
	ctx := t.Context()
	orders := new(MockOrderRepository)
	orders.On("GetFirstPaidUnassigned", ctx).Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	uow := newUoW(orders, new(MockTalentRepository))
	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := newAssignHandler(factory).Handle(ctx, commands.NewAssignTalentCommand())

	require.ErrorIs(t, err, commands.ErrNoOrderFound)
}

func TestAssignTalentCommandHandler_Handle_NoTalent(t *testing.T) {
	ctx := t.Context()
	o := paidVoice(t)
	orders := new(MockOrderRepository)
	orders.On("GetFirstPaidUnassigned", ctx).Return(o, nil).Once()
	talents := new(MockTalentRepository)
	talents.On("GetAvailable", ctx, kernel.ProductLineVoice).Return([]*talent.Talent{}, nil).Once()
	uow := newUoW(orders, talents)
	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := newAssignHandler(factory).Handle(ctx, commands.NewAssignTalentCommand())

	require.ErrorIs(t, err, commands.ErrNoAvailableTalentFound)
	assert.Nil(t, o.Talent())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignTalentCommandHandler_Handle_NotConstructed(t *testing.T) {
	_, err := newAssignHandler(new(MockLifecycleUoWFactory)).Handle(t.Context(), commands.AssignTalentCommand{})

	require.ErrorIs(t, err, commands.ErrAssignTalentCommandIsNotConstructed)
}
