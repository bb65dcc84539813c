package services

import (
	"fmt"

	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceRequest is the configuration a client submits for a quote.
type PriceRequest struct {
	ProductLine kernel.ProductLine
	Tier        string
	Units       decimal.Decimal
	// RightsLevel is the requested level; empty means standard.
	RightsLevel kernel.RightsLevel
	AddOns      []string
	// PromoCode and DiscountPercent must come from the promo validator,
	// never from the client.
	PromoCode       string
	DiscountPercent decimal.Decimal
}

// QuoteLine is one priced component of a quote.
type QuoteLine struct {
	Code   string
	Name   string
	Amount kernel.Money
}

// Quote is a priced configuration. Total is rounded to the catalog's minor
// units and is never negative.
type Quote struct {
	ProductLine     kernel.ProductLine
	Tier            catalog.Tier
	Units           decimal.Decimal
	UnitName        string
	RequestedRights kernel.RightsLevel
	EffectiveRights kernel.RightsLevel
	TopTier         bool
	Lines           []QuoteLine
	Subtotal        kernel.Money
	PromoCode       string
	DiscountPercent decimal.Decimal
	Discount        kernel.Money
	Total           kernel.Money
	CatalogVersion  string
}

// PricingEngine prices orders against an injected catalog. It is pure and
// safe for concurrent use.
type PricingEngine struct {
	catalog  *catalog.Catalog
	resolver RightsResolver
}

func NewPricingEngine(c *catalog.Catalog, resolver RightsResolver) PricingEngine {
	return PricingEngine{catalog: c, resolver: resolver}
}

// CalculatePrice prices the tier and add-ons at standard rights without a promo.
func (e PricingEngine) CalculatePrice(pl kernel.ProductLine, tier string, units decimal.Decimal, addOns []string) (kernel.Money, error) {
	q, err := e.Quote(PriceRequest{ProductLine: pl, Tier: tier, Units: units, AddOns: addOns})
	if err != nil {
		return kernel.Money{}, err
	}
	return q.Total, nil
}

// Quote prices a full request: tier base, rights add-on for the effective
// level, optional add-ons, then a single percentage discount on the subtotal.
func (e PricingEngine) Quote(req PriceRequest) (Quote, error) {
	t, err := e.catalog.Tier(req.ProductLine, req.Tier)
	if err != nil {
		return Quote{}, err
	}
	requested := req.RightsLevel
	if requested == "" {
		requested = kernel.RightsStandard
	}
	effective, err := e.resolver.Resolve(req.ProductLine, req.Tier, requested)
	if err != nil {
		return Quote{}, err
	}
	if err := validateDiscount(req.DiscountPercent); err != nil {
		return Quote{}, err
	}

	base, err := BasePrice(t, req.Units)
	if err != nil {
		return Quote{}, err
	}

	lines := []QuoteLine{e.line(t.Code, t.Name, base)}
	if rights := e.catalog.RightsAddOnPrice(req.ProductLine, t.Code, effective); rights.IsPositive() {
		lines = append(lines, e.line("rights_"+effective.String(), effective.String()+" rights", rights))
	}
	seen := make(map[string]bool, len(req.AddOns))
	for _, code := range req.AddOns {
		if seen[code] {
			continue
		}
		seen[code] = true
		addOn, err := e.catalog.AddOn(req.ProductLine, code)
		if err != nil {
			return Quote{}, err
		}
		lines = append(lines, e.line(addOn.Code, addOn.Name, addOn.Price))
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount.Amount())
	}
	discount := subtotal.Mul(req.DiscountPercent).Div(hundred).Round(e.catalog.MinorUnits())
	total := decimal.Max(subtotal.Sub(discount), decimal.Zero)

	return Quote{
		ProductLine:     req.ProductLine,
		Tier:            t,
		Units:           req.Units,
		UnitName:        e.catalog.UnitName(req.ProductLine),
		RequestedRights: requested,
		EffectiveRights: effective,
		TopTier:         e.catalog.IsTopTier(req.ProductLine, t.Code),
		Lines:           lines,
		Subtotal:        e.money(subtotal),
		PromoCode:       req.PromoCode,
		DiscountPercent: req.DiscountPercent,
		Discount:        e.money(discount),
		Total:           e.money(total),
		CatalogVersion:  e.catalog.Version(),
	}, nil
}

// BasePrice applies the tier's pricing mode to the estimated units.
// Per-unit tiers accept fractional units; overage units are rounded up.
func BasePrice(t catalog.Tier, units decimal.Decimal) (decimal.Decimal, error) {
	if units.IsNegative() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("estimated units", units, 0, "unbounded")
	}

	switch t.Pricing {
	case catalog.PricingFlat:
		return t.BasePrice, nil
	case catalog.PricingPerUnit:
		if !units.IsPositive() {
			return decimal.Zero, errs.NewValueIsOutOfRangeError("estimated units", units, "more than 0", "unbounded")
		}
		return units.Mul(t.UnitRate), nil
	case catalog.PricingIncludedOverage:
		if !units.IsPositive() {
			return decimal.Zero, errs.NewValueIsOutOfRangeError("estimated units", units, "more than 0", "unbounded")
		}
		overage := decimal.Max(units.Sub(decimal.NewFromInt(int64(t.IncludedUnits))), decimal.Zero).Ceil()
		return t.BasePrice.Add(overage.Mul(t.OverageRate)), nil
	default:
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("pricing mode",
			fmt.Errorf("tier %s has pricing mode %s", t.Code, t.Pricing))
	}
}

func validateDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return errs.NewValueIsOutOfRangeError("discount percent", percent, 0, 100)
	}
	return nil
}

func (e PricingEngine) line(code, name string, amount decimal.Decimal) QuoteLine {
	return QuoteLine{Code: code, Name: name, Amount: e.money(amount)}
}

// money rounds to the catalog's minor units. Amounts reaching here are
// non-negative catalog sums, so construction cannot fail.
func (e PricingEngine) money(amount decimal.Decimal) kernel.Money {
	m, err := kernel.NewMoney(amount.Round(e.catalog.MinorUnits()), e.catalog.Currency())
	if err != nil {
		return kernel.ZeroMoney(e.catalog.Currency())
	}
	return m
}

// PromoDiscount turns a promo validator verdict into the discount to apply.
// An empty code means no discount; a code the validator rejected fails.
func PromoDiscount(code string, valid bool, percent decimal.Decimal) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	if !valid {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("promo code", fmt.Errorf("%q is not active", code))
	}
	if err := validateDiscount(percent); err != nil {
		return decimal.Zero, err
	}
	return percent, nil
}
