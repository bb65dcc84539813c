package catalog

import (
	"commissions/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultVersion labels the built-in price list.
const DefaultVersion = "2026.1"

func usd(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// DefaultLines returns the built-in line definitions. Callers may modify the
// returned slices to derive a new catalog version.
func DefaultLines() []LineDefinition {
	return []LineDefinition{
		{
			ProductLine: kernel.ProductLineVoice,
			UnitName:    "minute",
			Tiers: []Tier{
				{
					Code: "tier1", Name: "Starter", Pricing: PricingPerUnit,
					UnitRate: usd(25), MaxRevisions: 1, MaxVersions: 2, TurnaroundDays: 3,
					RightsAddOns: map[kernel.RightsLevel]decimal.Decimal{
						kernel.RightsBroadcast: usd(100),
						kernel.RightsGlobal:    usd(300),
					},
				},
				{
					Code: "tier2", Name: "Professional", Pricing: PricingPerUnit,
					UnitRate: usd(40), MaxRevisions: 2, MaxVersions: 3, TurnaroundDays: 5,
					RightsAddOns: map[kernel.RightsLevel]decimal.Decimal{
						kernel.RightsBroadcast: usd(150),
						kernel.RightsGlobal:    usd(400),
					},
				},
				{
					Code: "tier3", Name: "Premium Buyout", Pricing: PricingFlat,
					BasePrice: usd(750), MaxRevisions: 3, MaxVersions: 4, TurnaroundDays: 7,
				},
			},
			AddOns: []AddOn{
				{Code: "rush_delivery", Name: "24h rush delivery", Price: usd(75)},
				{Code: "script_polish", Name: "Script polish", Price: usd(40)},
				{Code: "sync_to_picture", Name: "Sync to picture", Price: usd(120)},
			},
		},
		{
			ProductLine: kernel.ProductLineMusic,
			UnitName:    "track",
			Tiers: []Tier{
				{
					Code: "tier1", Name: "Jingle", Pricing: PricingFlat,
					BasePrice: usd(300), MaxRevisions: 1, MaxVersions: 2, TurnaroundDays: 7,
					RightsAddOns: map[kernel.RightsLevel]decimal.Decimal{
						kernel.RightsBroadcast: usd(150),
						kernel.RightsGlobal:    usd(400),
					},
				},
				{
					Code: "tier2", Name: "Theme", Pricing: PricingFlat,
					BasePrice: usd(650), MaxRevisions: 2, MaxVersions: 3, TurnaroundDays: 14,
					RightsAddOns: map[kernel.RightsLevel]decimal.Decimal{
						kernel.RightsBroadcast: usd(200),
						kernel.RightsGlobal:    usd(500),
					},
				},
				{
					Code: "tier3", Name: "Signature Score", Pricing: PricingFlat,
					BasePrice: usd(1500), MaxRevisions: 3, MaxVersions: 5, TurnaroundDays: 21,
				},
			},
			AddOns: []AddOn{
				{Code: "stems", Name: "Separated stems", Price: usd(150)},
				{Code: "extended_cut", Name: "Extended cut", Price: usd(120)},
				{Code: "rush_delivery", Name: "Rush delivery", Price: usd(200)},
			},
		},
		{
			ProductLine: kernel.ProductLineOrchestra,
			UnitName:    "minute",
			Tiers: []Tier{
				{
					Code: "tier1", Name: "String Quartet", Pricing: PricingIncludedOverage,
					BasePrice: usd(450), IncludedUnits: 2, OverageRate: usd(60),
					MaxRevisions: 1, MaxVersions: 2, TurnaroundDays: 14,
				},
				{
					Code: "tier2", Name: "Chamber Strings", Pricing: PricingIncludedOverage,
					BasePrice: usd(800), IncludedUnits: 3, OverageRate: usd(50),
					MaxRevisions: 2, MaxVersions: 3, TurnaroundDays: 21,
				},
				{
					Code: "tier3", Name: "Full String Section", Pricing: PricingIncludedOverage,
					BasePrice: usd(1200), IncludedUnits: 5, OverageRate: usd(40),
					MaxRevisions: 2, MaxVersions: 3, TurnaroundDays: 28,
				},
			},
			AddOns: []AddOn{
				{Code: "extra_session", Name: "Additional recording session", Price: usd(300)},
				{Code: "conductor_score", Name: "Conductor score", Price: usd(150)},
				{Code: "surround_mix", Name: "5.1 surround mix", Price: usd(250)},
			},
		},
	}
}

// Default returns the built-in catalog. It panics only if the definitions
// above are inconsistent.
func Default() *Catalog {
	c, err := NewCatalog(DefaultVersion, "USD", 2, DefaultLines()...)
	if err != nil {
		panic(err)
	}
	return c
}
