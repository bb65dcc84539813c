package kernel_test

import (
	"testing"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "USD")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should normalize currency and reject bad codes", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(10), " usd ")
		require.NoError(t, err)
		assert.Equal(t, "USD", m.Currency())

		_, err = kernel.NewMoney(decimal.NewFromInt(10), "dollars")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should round half away from zero to minor units", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"), "USD")
		require.NoError(t, err)

		assert.Equal(t, "10.01", m.Round(2).Amount().StringFixed(2))
		assert.Equal(t, int64(1001), m.MinorUnits(2))
	})

	t.Run("should add same currency only", func(t *testing.T) {
		a, _ := kernel.MoneyFromMinor(1050, 2, "USD")
		b, _ := kernel.MoneyFromMinor(250, 2, "USD")
		c, _ := kernel.MoneyFromMinor(100, 2, "EUR")

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "USD 13.00", sum.String())

		_, err = a.Add(c)
		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money

		require.Error(t, m.Validate())
	})
}

func TestEmail(t *testing.T) {
	t.Run("should normalize", func(t *testing.T) {
		e, err := kernel.NewEmail("  Client@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, "client@example.com", e.String())
	})

	t.Run("should reject empty and malformed", func(t *testing.T) {
		_, err := kernel.NewEmail("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = kernel.NewEmail("not-an-email")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestProductLine(t *testing.T) {
	t.Run("should parse known lines", func(t *testing.T) {
		for _, in := range []string{"voice", "MUSIC", " orchestra "} {
			_, err := kernel.ParseProductLine(in)
			require.NoError(t, err, in)
		}
	})

	t.Run("should reject unknown lines", func(t *testing.T) {
		_, err := kernel.ParseProductLine("podcast")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRightsLevel(t *testing.T) {
	t.Run("should reject unknown levels", func(t *testing.T) {
		_, err := kernel.ParseRightsLevel("platinum")

		require.ErrorIs(t, err, errs.ErrUnknownRightsLevel)
	})

	t.Run("should be totally ordered", func(t *testing.T) {
		assert.True(t, kernel.RightsGlobal.Includes(kernel.RightsBroadcast))
		assert.True(t, kernel.RightsBroadcast.Includes(kernel.RightsStandard))
		assert.True(t, kernel.RightsStandard.Includes(kernel.RightsStandard))
		assert.False(t, kernel.RightsStandard.Includes(kernel.RightsGlobal))
		assert.False(t, kernel.RightsGlobal.Includes(kernel.RightsLevel("")))
	})
}
