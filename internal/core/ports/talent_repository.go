package ports

import (
	"context"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/talent"
)

// TalentRepository defines the persistence contract for talent aggregates.
type TalentRepository interface {
	Add(ctx context.Context, t *talent.Talent) error
	Update(ctx context.Context, t *talent.Talent) error
	Get(ctx context.Context, id kernel.UUID) (*talent.Talent, error)

	// GetAvailable lists talents serving the product line with at least one
	// free slot, in creation order.
	GetAvailable(ctx context.Context, pl kernel.ProductLine) ([]*talent.Talent, error)
}
