package talentrepo_test

import (
	"context"
	"testing"

	"commissions/internal/adapters/out/postgres/pgtest"
	"commissions/internal/adapters/out/postgres/talentrepo"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TalentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *talentrepo.GormTalentRepository
	tracker    *MockAggregateTracker
}

func (suite *TalentRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.pg = pg
	suite.Require().NoError(err)
}

func (suite *TalentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = talentrepo.NewGormTalentRepository(suite.pg.DB, suite.tracker)
}

func (suite *TalentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *TalentRepositoryIntegrationTestSuite) newTalent(name string, capacity int, lines ...kernel.ProductLine) *talent.Talent {
	email, err := kernel.NewEmail(name + "@example.com")
	suite.Require().NoError(err)
	tl, err := talent.NewTalent(kernel.NewUUID(), name, email, lines, capacity)
	suite.Require().NoError(err)
	return tl
}

func (suite *TalentRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	tl := suite.newTalent("ada", 0, kernel.ProductLineVoice, kernel.ProductLineMusic)

	suite.Require().NoError(suite.repository.Add(ctx, tl))

	got, err := suite.repository.Get(ctx, tl.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(tl))
	suite.Equal("ada", got.Name())
	suite.Equal([]kernel.ProductLine{kernel.ProductLineVoice, kernel.ProductLineMusic}, got.ProductLines())
	suite.Equal(talent.DefaultCapacity, got.Capacity())
	suite.Equal(0, got.ActiveOrders())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", tl.ID(), tl)
}

func (suite *TalentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TalentRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	err := suite.repository.Update(context.Background(), suite.newTalent("ghost", 1, kernel.ProductLineVoice))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TalentRepositoryIntegrationTestSuite) TestGetAvailable_FiltersByLineAndCapacity() {
	ctx := context.Background()
	voice := suite.newTalent("voice", 1, kernel.ProductLineVoice)
	busy := suite.newTalent("busy", 1, kernel.ProductLineVoice)
	music := suite.newTalent("music", 2, kernel.ProductLineMusic)
	for _, tl := range []*talent.Talent{voice, busy, music} {
		suite.Require().NoError(suite.repository.Add(ctx, tl))
	}

	full, err := talent.RestoreTalent(busy.ID(), busy.Name(), busy.Email(), busy.ProductLines(), 1, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, full))

	got, err := suite.repository.GetAvailable(ctx, kernel.ProductLineVoice)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].ID().IsEqual(voice.ID()))

	none, err := suite.repository.GetAvailable(ctx, kernel.ProductLineOrchestra)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func TestTalentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TalentRepositoryIntegrationTestSuite))
}
