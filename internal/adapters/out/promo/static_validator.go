// Package promo provides an in-memory promo code validator configured at
// start-up.
package promo

import (
	"context"
	"fmt"
	"strings"

	"commissions/internal/core/ports"

	"github.com/shopspring/decimal"
)

// StaticValidator answers from a fixed code to discount table. Codes not
// in the table are invalid.
type StaticValidator struct {
	codes map[string]decimal.Decimal
}

func NewStaticValidator(codes map[string]decimal.Decimal) StaticValidator {
	normalized := make(map[string]decimal.Decimal, len(codes))
	for code, percent := range codes {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = percent
	}
	return StaticValidator{codes: normalized}
}

// ParseStaticCodes reads "CODE:percent" pairs separated by commas, as used
// in the PROMO_CODES setting.
func ParseStaticCodes(value string) (map[string]decimal.Decimal, error) {
	codes := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, raw, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("promo entry %q: expected CODE:percent", pair)
		}
		percent, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("promo entry %q: %w", pair, err)
		}
		codes[strings.ToUpper(strings.TrimSpace(code))] = percent
	}
	return codes, nil
}

func (v StaticValidator) Validate(_ context.Context, code string) (ports.PromoResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	percent, ok := v.codes[code]
	return ports.PromoResult{Code: code, Valid: ok, DiscountPercent: percent}, nil
}
