package catalog

import (
	"errors"
	"fmt"
	"maps"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingMode selects how a tier turns estimated units into a base price.
type PricingMode int

const (
	// PricingUnknown is the zero value and never valid.
	PricingUnknown PricingMode = iota
	// PricingPerUnit charges UnitRate for every estimated unit (continuous pricing).
	PricingPerUnit
	// PricingFlat charges BasePrice and ignores estimated units.
	PricingFlat
	// PricingIncludedOverage charges BasePrice for IncludedUnits and OverageRate
	// for every started unit beyond them.
	PricingIncludedOverage
)

func (m PricingMode) String() string {
	switch m {
	case PricingPerUnit:
		return "per_unit"
	case PricingFlat:
		return "flat"
	case PricingIncludedOverage:
		return "included_overage"
	default:
		return "unknown"
	}
}

// Tier is one plan within a product line. Revision and version limits live
// here so every call site reads the same numbers.
type Tier struct {
	Code           string
	Name           string
	Pricing        PricingMode
	BasePrice      decimal.Decimal
	UnitRate       decimal.Decimal
	IncludedUnits  int
	OverageRate    decimal.Decimal
	MaxRevisions   int
	MaxVersions    int
	TurnaroundDays int
	RightsAddOns   map[kernel.RightsLevel]decimal.Decimal
}

// AddOn is an optional priced extra.
type AddOn struct {
	Code  string
	Name  string
	Price decimal.Decimal
}

// LineDefinition describes one product line. Tiers are listed in ascending
// order; the last one is the line's top tier.
type LineDefinition struct {
	ProductLine kernel.ProductLine
	UnitName    string
	Tiers       []Tier
	AddOns      []AddOn
}

type line struct {
	def       LineDefinition
	tierIndex map[string]int
	addOns    map[string]AddOn
}

// Catalog is an immutable, versioned price list. Accessors return copies.
type Catalog struct {
	version    string
	currency   string
	minorUnits int32
	lines      map[kernel.ProductLine]line
}

// NewCatalog validates and freezes the definitions.
func NewCatalog(version, currency string, minorUnits int32, defs ...LineDefinition) (*Catalog, error) {
	if version == "" {
		return nil, errs.NewValueIsRequiredError("catalog version")
	}
	if len(currency) != 3 {
		return nil, errs.NewValueIsInvalidErrorWithCause("catalog currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	if minorUnits < 0 || minorUnits > 4 {
		return nil, errs.NewValueIsOutOfRangeError("minor units", minorUnits, 0, 4)
	}

	c := &Catalog{
		version:    version,
		currency:   currency,
		minorUnits: minorUnits,
		lines:      make(map[kernel.ProductLine]line, len(defs)),
	}
	for _, def := range defs {
		l, err := freezeLine(def)
		if err != nil {
			return nil, err
		}
		if _, dup := c.lines[def.ProductLine]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("catalog",
				fmt.Errorf("product line %s defined twice", def.ProductLine))
		}
		c.lines[def.ProductLine] = l
	}
	return c, nil
}

func freezeLine(def LineDefinition) (line, error) {
	if err := def.ProductLine.Validate(); err != nil {
		return line{}, err
	}
	if len(def.Tiers) == 0 {
		return line{}, errs.NewValueIsRequiredError(fmt.Sprintf("%s tiers", def.ProductLine))
	}

	l := line{
		def: LineDefinition{
			ProductLine: def.ProductLine,
			UnitName:    def.UnitName,
			Tiers:       make([]Tier, 0, len(def.Tiers)),
			AddOns:      make([]AddOn, 0, len(def.AddOns)),
		},
		tierIndex: make(map[string]int, len(def.Tiers)),
		addOns:    make(map[string]AddOn, len(def.AddOns)),
	}

	var validationErrs []error
	for _, t := range def.Tiers {
		if _, dup := l.tierIndex[t.Code]; dup {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause("tier code",
				fmt.Errorf("%s/%s defined twice", def.ProductLine, t.Code)))
			continue
		}
		if err := validateTier(def.ProductLine, t); err != nil {
			validationErrs = append(validationErrs, err)
			continue
		}
		t.RightsAddOns = maps.Clone(t.RightsAddOns)
		l.tierIndex[t.Code] = len(l.def.Tiers)
		l.def.Tiers = append(l.def.Tiers, t)
	}
	for _, a := range def.AddOns {
		if a.Code == "" || a.Price.IsNegative() {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause("add-on",
				fmt.Errorf("%s/%q has no code or a negative price", def.ProductLine, a.Code)))
			continue
		}
		l.addOns[a.Code] = a
		l.def.AddOns = append(l.def.AddOns, a)
	}
	if err := errors.Join(validationErrs...); err != nil {
		return line{}, err
	}
	return l, nil
}

func validateTier(pl kernel.ProductLine, t Tier) error {
	name := fmt.Sprintf("%s/%s", pl, t.Code)
	var validationErrs []error
	if t.Code == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError(name+" code"))
	}
	if t.BasePrice.IsNegative() || t.UnitRate.IsNegative() || t.OverageRate.IsNegative() {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
			errors.New("prices must not be negative")))
	}
	switch t.Pricing {
	case PricingPerUnit:
		if !t.UnitRate.IsPositive() {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
				errors.New("per-unit tiers need a positive unit rate")))
		}
	case PricingIncludedOverage:
		if t.IncludedUnits <= 0 {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
				errors.New("overage tiers need included units")))
		}
	case PricingFlat:
	default:
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("pricing mode %s", t.Pricing)))
	}
	if t.MaxRevisions < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError(name+" max revisions", t.MaxRevisions, 0, "unbounded"))
	}
	if t.MaxVersions < 1 {
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError(name+" max versions", t.MaxVersions, 1, "unbounded"))
	} else if t.MaxRevisions >= 0 && t.MaxVersions < t.MaxRevisions+1 {
		// every granted revision needs a version slot for its redelivery
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError(name+" max versions", t.MaxVersions, t.MaxRevisions+1, "unbounded"))
	}
	for level, price := range t.RightsAddOns {
		if err := level.Validate(); err != nil {
			validationErrs = append(validationErrs, err)
		}
		if price.IsNegative() {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("negative %s rights add-on", level)))
		}
	}
	return errors.Join(validationErrs...)
}

// Version labels the price list; it is frozen onto issued certificates.
func (c *Catalog) Version() string { return c.version }

// Currency is the ISO 4217 code every price is expressed in.
func (c *Catalog) Currency() string { return c.currency }

// MinorUnits is the number of decimal places final prices are rounded to.
func (c *Catalog) MinorUnits() int32 { return c.minorUnits }

// UnitName is the unit estimated quantities are counted in ("minute").
func (c *Catalog) UnitName(pl kernel.ProductLine) string {
	return c.lines[pl].def.UnitName
}

// Tier returns a copy of the tier or UnknownTierError.
func (c *Catalog) Tier(pl kernel.ProductLine, code string) (Tier, error) {
	l, ok := c.lines[pl]
	if !ok {
		return Tier{}, errs.NewUnknownTierError(string(pl), code)
	}
	idx, ok := l.tierIndex[code]
	if !ok {
		return Tier{}, errs.NewUnknownTierError(string(pl), code)
	}
	return copyTier(l.def.Tiers[idx]), nil
}

// Tiers returns the line's tiers in ascending order.
func (c *Catalog) Tiers(pl kernel.ProductLine) []Tier {
	l := c.lines[pl]
	out := make([]Tier, 0, len(l.def.Tiers))
	for _, t := range l.def.Tiers {
		out = append(out, copyTier(t))
	}
	return out
}

// IsTopTier reports whether code is the highest tier of the line.
func (c *Catalog) IsTopTier(pl kernel.ProductLine, code string) bool {
	l, ok := c.lines[pl]
	if !ok || len(l.def.Tiers) == 0 {
		return false
	}
	return l.def.Tiers[len(l.def.Tiers)-1].Code == code
}

// AddOn returns the add-on or UnknownAddOnError.
func (c *Catalog) AddOn(pl kernel.ProductLine, code string) (AddOn, error) {
	a, ok := c.lines[pl].addOns[code]
	if !ok {
		return AddOn{}, errs.NewUnknownAddOnError(string(pl), code)
	}
	return a, nil
}

// AddOns lists the line's add-ons in definition order.
func (c *Catalog) AddOns(pl kernel.ProductLine) []AddOn {
	return append([]AddOn(nil), c.lines[pl].def.AddOns...)
}

// RightsAddOnPrice looks up the surcharge for (line, tier, level). Unknown
// combinations cost nothing: some tiers bundle higher rights.
func (c *Catalog) RightsAddOnPrice(pl kernel.ProductLine, tierCode string, level kernel.RightsLevel) decimal.Decimal {
	t, err := c.Tier(pl, tierCode)
	if err != nil {
		return decimal.Zero
	}
	price, ok := t.RightsAddOns[level]
	if !ok {
		return decimal.Zero
	}
	return price
}

func copyTier(t Tier) Tier {
	t.RightsAddOns = maps.Clone(t.RightsAddOns)
	return t
}
