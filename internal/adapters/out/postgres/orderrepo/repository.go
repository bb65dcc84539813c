package orderrepo

import (
	"context"
	"errors"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its versions and files.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only when the stored row still has the status and
// lock version the aggregate was loaded with. Versions are upserted since the
// latest one changes status when decided; files are insert-only.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.LockVersion = aggregate.LockVersion() + 1
	versions, files := dto.Versions, dto.Files
	dto.Versions, dto.Files = nil, nil

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND lock_version = ?",
			dto.ID, aggregate.PersistedStatus().String(), aggregate.LockVersion()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if len(versions) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "feedback", "decided_at"}),
		}).Create(&versions).Error
		if err != nil {
			return err
		}
	}

	if len(files) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&files).Error
		if err != nil {
			return err
		}
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewPreconditionFailedError("order", id.String())
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstPaidUnassigned returns the oldest paid, unfinished order without a talent.
func (r *GormOrderRepository) GetFirstPaidUnassigned(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.withChildren(ctx).
		Where("payment_status = ? AND talent_id IS NULL AND status <> ?",
			string(order.PaymentPaid), order.Completed.String()).
		Order("paid_at, created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first paid unassigned")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDeliveredPastDeadline lists delivered orders whose review window has
// elapsed at now, oldest deadline first.
func (r *GormOrderRepository) GetDeliveredPastDeadline(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withChildren(ctx).
		Where("status = ? AND auto_complete_at <= ?", order.Delivered.String(), now).
		Order("auto_complete_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Versions", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at, id") })
}
