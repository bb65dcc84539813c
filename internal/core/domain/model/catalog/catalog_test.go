package catalog_test

import (
	"testing"

	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	t.Run("should expose version and currency", func(t *testing.T) {
		assert.Equal(t, catalog.DefaultVersion, c.Version())
		assert.Equal(t, "USD", c.Currency())
		assert.Equal(t, int32(2), c.MinorUnits())
	})

	t.Run("should define three tiers per line", func(t *testing.T) {
		for _, pl := range kernel.ProductLines() {
			assert.Len(t, c.Tiers(pl), 3, pl.String())
			assert.True(t, c.IsTopTier(pl, "tier3"), pl.String())
			assert.False(t, c.IsTopTier(pl, "tier1"), pl.String())
		}
	})

	t.Run("orchestra tier3 matches the published overage terms", func(t *testing.T) {
		tier, err := c.Tier(kernel.ProductLineOrchestra, "tier3")

		require.NoError(t, err)
		assert.Equal(t, catalog.PricingIncludedOverage, tier.Pricing)
		assert.True(t, tier.BasePrice.Equal(decimal.NewFromInt(1200)))
		assert.Equal(t, 5, tier.IncludedUnits)
		assert.True(t, tier.OverageRate.Equal(decimal.NewFromInt(40)))
	})
}

func TestCatalog_Tier(t *testing.T) {
	c := catalog.Default()

	t.Run("should fail for unknown tier", func(t *testing.T) {
		_, err := c.Tier(kernel.ProductLineVoice, "tier9")

		require.ErrorIs(t, err, errs.ErrUnknownTier)
		var tierErr *errs.UnknownTierError
		require.ErrorAs(t, err, &tierErr)
		assert.Equal(t, "voice", tierErr.ProductLine)
	})

	t.Run("should fail for unknown product line", func(t *testing.T) {
		_, err := c.Tier(kernel.ProductLine("podcast"), "tier1")

		require.ErrorIs(t, err, errs.ErrUnknownTier)
	})

	t.Run("returned tiers cannot alter the catalog", func(t *testing.T) {
		tier, err := c.Tier(kernel.ProductLineVoice, "tier1")
		require.NoError(t, err)

		tier.RightsAddOns[kernel.RightsGlobal] = decimal.NewFromInt(1)
		tier.MaxRevisions = 99

		again, err := c.Tier(kernel.ProductLineVoice, "tier1")
		require.NoError(t, err)
		assert.True(t, again.RightsAddOns[kernel.RightsGlobal].Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 1, again.MaxRevisions)
	})
}

func TestCatalog_RightsAddOnPrice(t *testing.T) {
	c := catalog.Default()

	testCases := []struct {
		name     string
		line     kernel.ProductLine
		tier     string
		level    kernel.RightsLevel
		expected int64
	}{
		{"voice tier1 broadcast", kernel.ProductLineVoice, "tier1", kernel.RightsBroadcast, 100},
		{"voice tier2 global", kernel.ProductLineVoice, "tier2", kernel.RightsGlobal, 400},
		{"voice tier1 standard defaults to zero", kernel.ProductLineVoice, "tier1", kernel.RightsStandard, 0},
		{"voice top tier bundles global", kernel.ProductLineVoice, "tier3", kernel.RightsGlobal, 0},
		{"orchestra bundles global", kernel.ProductLineOrchestra, "tier2", kernel.RightsGlobal, 0},
		{"unknown tier defaults to zero", kernel.ProductLineMusic, "tier7", kernel.RightsGlobal, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price := c.RightsAddOnPrice(tc.line, tc.tier, tc.level)
			assert.True(t, price.Equal(decimal.NewFromInt(tc.expected)), price.String())
		})
	}
}

func TestCatalog_AddOn(t *testing.T) {
	c := catalog.Default()

	a, err := c.AddOn(kernel.ProductLineMusic, "stems")
	require.NoError(t, err)
	assert.True(t, a.Price.Equal(decimal.NewFromInt(150)))

	_, err = c.AddOn(kernel.ProductLineMusic, "sync_to_picture")
	require.ErrorIs(t, err, errs.ErrUnknownAddOn)
}

func TestNewCatalog_Validation(t *testing.T) {
	t.Run("should require a version", func(t *testing.T) {
		_, err := catalog.NewCatalog("", "USD", 2, catalog.DefaultLines()...)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject inconsistent tiers", func(t *testing.T) {
		lines := catalog.DefaultLines()
		lines[0].Tiers[0].UnitRate = decimal.Zero
		lines[0].Tiers[1].MaxVersions = 0

		_, err := catalog.NewCatalog("broken", "USD", 2, lines...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive unit rate")
		assert.Contains(t, err.Error(), "max versions")
	})

	t.Run("should reject tiers without a version slot per revision", func(t *testing.T) {
		lines := catalog.DefaultLines()
		lines[0].Tiers[0].MaxRevisions = 3
		lines[0].Tiers[0].MaxVersions = 3

		_, err := catalog.NewCatalog("short", "USD", 2, lines...)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "max versions")
	})

	t.Run("should reject duplicate lines", func(t *testing.T) {
		lines := catalog.DefaultLines()

		_, err := catalog.NewCatalog("dup", "USD", 2, lines[0], lines[0])

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("derived versions are independent", func(t *testing.T) {
		lines := catalog.DefaultLines()
		lines[0].Tiers = lines[0].Tiers[:2]

		next, err := catalog.NewCatalog("2026.2", "USD", 2, lines...)

		require.NoError(t, err)
		assert.True(t, next.IsTopTier(kernel.ProductLineVoice, "tier2"))
		assert.True(t, catalog.Default().IsTopTier(kernel.ProductLineVoice, "tier3"))
	})
}
