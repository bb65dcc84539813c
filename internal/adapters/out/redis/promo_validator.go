package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"commissions/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// PromoValidator reads promo codes from hashes at PromoKey(code) with the
// fields discount_percent and active. A missing hash is an unknown code.
type PromoValidator struct {
	store hashReader
}

func NewPromoValidator(store hashReader) *PromoValidator {
	return &PromoValidator{store: store}
}

func (v *PromoValidator) Validate(ctx context.Context, code string) (ports.PromoResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	result := ports.PromoResult{Code: code}
	if code == "" {
		return result, nil
	}

	fields, err := v.store.HGetAll(ctx, PromoKey(code)).Result()
	if err != nil {
		return ports.PromoResult{}, fmt.Errorf("read promo %s: %w", code, err)
	}
	if len(fields) == 0 {
		return result, nil
	}

	active := true
	if raw, ok := fields["active"]; ok {
		if active, err = strconv.ParseBool(raw); err != nil {
			return ports.PromoResult{}, fmt.Errorf("promo %s active flag %q: %w", code, raw, err)
		}
	}

	percent, err := decimal.NewFromString(fields["discount_percent"])
	if err != nil {
		return ports.PromoResult{}, fmt.Errorf("promo %s discount %q: %w", code, fields["discount_percent"], err)
	}

	result.Valid = active
	result.DiscountPercent = percent
	return result, nil
}
