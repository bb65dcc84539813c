package commands_test

import (
	"context"
	"time"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var t0 = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) commands.Clock {
	return func() time.Time { return at }
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstPaidUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDeliveredPastDeadline(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTalentRepository struct{ mock.Mock }

func (m *MockTalentRepository) Add(ctx context.Context, t *talent.Talent) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTalentRepository) Update(ctx context.Context, t *talent.Talent) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTalentRepository) Get(ctx context.Context, id kernel.UUID) (*talent.Talent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*talent.Talent), args.Error(1)
}

func (m *MockTalentRepository) GetAvailable(ctx context.Context, pl kernel.ProductLine) ([]*talent.Talent, error) {
	args := m.Called(ctx, pl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*talent.Talent), args.Error(1)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Add(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*message.Message, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}

type MockCertificateRepository struct{ mock.Mock }

func (m *MockCertificateRepository) Add(ctx context.Context, c *certificate.Certificate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCertificateRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*certificate.Certificate, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificate.Certificate), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TalentRepository() ports.TalentRepository {
	args := m.Called()
	return args.Get(0).(ports.TalentRepository)
}

func (m *MockUoW) MessageRepository() ports.MessageRepository {
	args := m.Called()
	return args.Get(0).(ports.MessageRepository)
}

func (m *MockUoW) CertificateRepository() ports.CertificateRepository {
	args := m.Called()
	return args.Get(0).(ports.CertificateRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTalentUoWFactory struct{ mock.Mock }

func (m *MockTalentUoWFactory) Create() commands.TalentUoW {
	args := m.Called()
	return args.Get(0).(commands.TalentUoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockMessageUoWFactory struct{ mock.Mock }

func (m *MockMessageUoWFactory) Create() commands.MessageUoW {
	args := m.Called()
	return args.Get(0).(commands.MessageUoW)
}

type MockCertificateUoWFactory struct{ mock.Mock }

func (m *MockCertificateUoWFactory) Create() commands.CertificateUoW {
	args := m.Called()
	return args.Get(0).(commands.CertificateUoW)
}

type MockPromoValidator struct{ mock.Mock }

func (m *MockPromoValidator) Validate(ctx context.Context, code string) (ports.PromoResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ports.PromoResult), args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// newUoW returns a unit of work that begins and rolls back successfully and
// hands out the given repositories.
func newUoW(repos ...any) *MockUoW {
	uow := new(MockUoW)
	for _, r := range repos {
		switch repo := r.(type) {
		case *MockOrderRepository:
			uow.On("OrderRepository").Return(repo)
		case *MockTalentRepository:
			uow.On("TalentRepository").Return(repo)
		case *MockMessageRepository:
			uow.On("MessageRepository").Return(repo)
		case *MockCertificateRepository:
			uow.On("CertificateRepository").Return(repo)
		}
	}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}
