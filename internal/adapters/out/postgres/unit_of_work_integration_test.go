package postgres_test

import (
	"context"
	"testing"
	"time"

	"commissions/internal/adapters/out/postgres"
	"commissions/internal/adapters/out/postgres/pgtest"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/core/domain/services"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.pg = pg
	suite.Require().NoError(err)
	suite.factory = postgres.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newPaidVoiceOrder() *order.Order {
	email, err := kernel.NewEmail("client@example.com")
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(decimal.NewFromInt(140), "USD")
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.Terms{
		ID:              kernel.NewUUID(),
		ProductLine:     kernel.ProductLineVoice,
		Tier:            "tier2",
		ClientEmail:     email,
		Units:           decimal.RequireFromString("3.5"),
		RequestedRights: kernel.RightsStandard,
		EffectiveRights: kernel.RightsStandard,
		Price:           price,
		MaxRevisions:    2,
		MaxVersions:     3,
		TurnaroundDays:  5,
		CreatedAt:       t0,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.Apply(order.EventPay, order.Payload{PaymentRef: "pi_1"}, order.Env{Now: t0}))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newTalent() *talent.Talent {
	email, err := kernel.NewEmail("artist@example.com")
	suite.Require().NoError(err)
	tl, err := talent.NewTalent(kernel.NewUUID(), "Ada", email, []kernel.ProductLine{kernel.ProductLineVoice}, 1)
	suite.Require().NoError(err)
	return tl
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotNil(uow1)
	suite.NotSame(uow1, uow2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitMakesWritesVisible() {
	ctx := context.Background()
	o := suite.newPaidVoiceOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()
	tl := suite.newTalent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TalentRepository().Add(ctx, tl))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().TalentRepository().Get(ctx, tl.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentAcrossRepositories() {
	ctx := context.Background()
	o := suite.newPaidVoiceOrder()
	tl := suite.newTalent()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.TalentRepository().Add(ctx, tl))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	worker, err := uow.TalentRepository().Get(ctx, tl.ID())
	suite.Require().NoError(err)
	_, err = services.NewTalentAssigner().Assign(loaded, []*talent.Talent{worker})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.TalentRepository().Update(ctx, worker))
	suite.Require().NoError(uow.Commit(ctx))

	gotOrder, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(gotOrder.Talent())
	suite.True(gotOrder.Talent().IsEqual(tl.ID()))

	gotTalent, err := suite.factory.Create().TalentRepository().Get(ctx, tl.ID())
	suite.Require().NoError(err)
	suite.Equal(1, gotTalent.ActiveOrders())

	available, err := suite.factory.Create().TalentRepository().GetAvailable(ctx, kernel.ProductLineVoice)
	suite.Require().NoError(err)
	suite.Empty(available)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentWriterLoses() {
	ctx := context.Background()
	o := suite.newPaidVoiceOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() {
		_ = second.Rollback(ctx)
	}()

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.Apply(order.EventStartProduction, order.Payload{}, order.Env{Now: t0}))
	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(b.Apply(order.EventStartProduction, order.Payload{}, order.Env{Now: t0}))
	err = second.OrderRepository().Update(ctx, b)

	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
