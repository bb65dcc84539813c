package queries_test

import (
	"context"
	"errors"
	"testing"

	"commissions/internal/core/application/usecases/queries"
	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPromoValidator struct{ mock.Mock }

func (m *MockPromoValidator) Validate(ctx context.Context, code string) (ports.PromoResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ports.PromoResult), args.Error(1)
}

func newQuoteHandler(promos ports.PromoValidator) queries.GetQuoteQueryHandler {
	c := catalog.Default()
	return queries.NewGetQuoteQueryHandler(services.NewPricingEngine(c, services.NewRightsResolver(c)), promos, nil)
}

func voiceQuoteParams() queries.GetQuoteParams {
	return queries.GetQuoteParams{
		ProductLine: "voice",
		Tier:        "tier2",
		Units:       decimal.RequireFromString("3.5"),
		RightsLevel: "broadcast",
	}
}

func TestNewGetQuoteQuery(t *testing.T) {
	t.Run("should normalize promo code and resolve legacy rights", func(t *testing.T) {
		legacy := true
		p := voiceQuoteParams()
		p.RightsLevel = ""
		p.LegacyBroadcastRights = &legacy
		p.PromoCode = "  save10 "

		query, err := queries.NewGetQuoteQuery(p)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "SAVE10", query.Request().PromoCode)
		assert.Equal(t, kernel.RightsBroadcast, query.Request().RightsLevel)
		assert.True(t, query.Request().DiscountPercent.IsZero())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		_, err := queries.NewGetQuoteQuery(queries.GetQuoteParams{
			ProductLine: "sculpture",
			Units:       decimal.NewFromInt(-1),
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value query is rejected", func(t *testing.T) {
		_, err := newQuoteHandler(nil).Handle(t.Context(), queries.GetQuoteQuery{})

		require.ErrorIs(t, err, queries.ErrGetQuoteQueryIsNotConstructed)
	})
}

func TestGetQuoteQueryHandler_Handle(t *testing.T) {
	t.Run("should apply validated promo discount", func(t *testing.T) {
		ctx := t.Context()
		p := voiceQuoteParams()
		p.PromoCode = "save10"
		query, err := queries.NewGetQuoteQuery(p)
		require.NoError(t, err)

		promos := new(MockPromoValidator)
		promos.On("Validate", ctx, "SAVE10").
			Return(ports.PromoResult{Code: "SAVE10", Valid: true, DiscountPercent: decimal.NewFromInt(10)}, nil).Once()

		quote, err := newQuoteHandler(promos).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, kernel.RightsBroadcast, quote.EffectiveRights)
		assert.Equal(t, "261", quote.Total.Amount().String())
		assert.Equal(t, "SAVE10", quote.PromoCode)
		promos.AssertExpectations(t)
	})

	t.Run("should quote without promo when none is given", func(t *testing.T) {
		query, err := queries.NewGetQuoteQuery(voiceQuoteParams())
		require.NoError(t, err)

		quote, err := newQuoteHandler(nil).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "290", quote.Total.Amount().String())
	})

	t.Run("should reject inactive promo code", func(t *testing.T) {
		ctx := t.Context()
		p := voiceQuoteParams()
		p.PromoCode = "EXPIRED"
		query, err := queries.NewGetQuoteQuery(p)
		require.NoError(t, err)

		promos := new(MockPromoValidator)
		promos.On("Validate", ctx, "EXPIRED").Return(ports.PromoResult{Code: "EXPIRED"}, nil).Once()

		_, err = newQuoteHandler(promos).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should surface promo store failures", func(t *testing.T) {
		ctx := t.Context()
		p := voiceQuoteParams()
		p.PromoCode = "SAVE10"
		query, err := queries.NewGetQuoteQuery(p)
		require.NoError(t, err)

		storeErr := errors.New("connection refused")
		promos := new(MockPromoValidator)
		promos.On("Validate", ctx, "SAVE10").Return(ports.PromoResult{}, storeErr).Once()

		_, err = newQuoteHandler(promos).Handle(ctx, query)

		require.ErrorIs(t, err, storeErr)
	})

	t.Run("should reject unknown tier", func(t *testing.T) {
		p := voiceQuoteParams()
		p.Tier = "tier9"
		query, err := queries.NewGetQuoteQuery(p)
		require.NoError(t, err)

		_, err = newQuoteHandler(nil).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrUnknownTier)
	})
}
