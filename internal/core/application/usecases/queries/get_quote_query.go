// Package queries contains read operations. Quotes are computed on the fly;
// everything else reads straight from the database with raw SQL.
package queries

import (
	"errors"
	"slices"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/services"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetQuoteQueryIsNotConstructed = errors.New(
		"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
	)
)

// GetQuoteParams is the configuration a client asks a price for.
type GetQuoteParams struct {
	ProductLine           string
	Tier                  string
	Units                 decimal.Decimal
	RightsLevel           string
	LegacyBroadcastRights *bool
	AddOns                []string
	PromoCode             string
}

// GetQuoteQuery prices a configuration without creating an order.
//
// Example:
//
//	query, err := NewGetQuoteQuery(GetQuoteParams{
//	    ProductLine: "voice",
//	    Tier:        "tier2",
//	    Units:       decimal.NewFromFloat(3.5),
//	    RightsLevel: "broadcast",
//	    PromoCode:   "save10",
//	})
type GetQuoteQuery struct {
	request services.PriceRequest

	guard guard.ConstructorGuard
}

func NewGetQuoteQuery(p GetQuoteParams) (GetQuoteQuery, error) {
	pl, plErr := kernel.ParseProductLine(p.ProductLine)
	rights, rightsErr := services.RequestedRights(p.RightsLevel, p.LegacyBroadcastRights)

	var tierErr error
	if strings.TrimSpace(p.Tier) == "" {
		tierErr = errs.NewValueIsRequiredError("tier")
	}

	var unitsErr error
	if p.Units.IsNegative() {
		unitsErr = errs.NewValueIsOutOfRangeError("estimated units", p.Units, 0, "unbounded")
	}

	if err := errors.Join(plErr, tierErr, unitsErr, rightsErr); err != nil {
		return GetQuoteQuery{}, err
	}

	return GetQuoteQuery{
		request: services.PriceRequest{
			ProductLine: pl,
			Tier:        p.Tier,
			Units:       p.Units,
			RightsLevel: rights,
			AddOns:      slices.Clone(p.AddOns),
			PromoCode:   strings.ToUpper(strings.TrimSpace(p.PromoCode)),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

// Request returns the normalized pricing request. The discount is always
// zero here; the handler fills it from the promo store.
func (q GetQuoteQuery) Request() services.PriceRequest {
	r := q.request
	r.AddOns = slices.Clone(r.AddOns)
	return r
}
