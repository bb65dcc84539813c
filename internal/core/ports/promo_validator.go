package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PromoResult is the validator's verdict on a code.
type PromoResult struct {
	Code            string
	Valid           bool
	DiscountPercent decimal.Decimal
}

// PromoValidator checks a promo code server-side at pricing time. Unknown
// or inactive codes are a valid result with Valid=false, not an error.
type PromoValidator interface {
	Validate(ctx context.Context, code string) (PromoResult, error)
}
