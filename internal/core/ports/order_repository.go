package ports

import (
	"context"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their versions and file references.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if the stored row still carries the
	// status and lock version the aggregate was read with. A mismatch
	// returns errs.PreconditionFailedError and writes nothing; on success
	// the aggregate's concurrency token advances.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstPaidUnassigned returns the oldest paid, non-terminal order
	// without a talent, or errs.ObjectNotFoundError.
	GetFirstPaidUnassigned(ctx context.Context) (*order.Order, error)

	// GetDeliveredPastDeadline lists up to limit delivered orders whose
	// auto-complete deadline is at or before now, oldest deadline first.
	GetDeliveredPastDeadline(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}
