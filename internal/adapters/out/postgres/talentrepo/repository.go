package talentrepo

import (
	"context"
	"errors"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTalentRepository implements ports.TalentRepository using GORM.
type GormTalentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTalentRepository creates a new GORM talent repository.
func NewGormTalentRepository(db *gorm.DB, tracker aggregateTracker) *GormTalentRepository {
	return &GormTalentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new talent to the database.
func (r *GormTalentRepository) Add(ctx context.Context, aggregate *talent.Talent) error {
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

// Update saves an existing talent. Registration time is left untouched.
func (r *GormTalentRepository) Update(ctx context.Context, aggregate *talent.Talent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TalentDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "email", "product_lines", "capacity", "active_orders").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("talent", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a talent by ID.
func (r *GormTalentRepository) Get(ctx context.Context, id kernel.UUID) (*talent.Talent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TalentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("talent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailable lists talents serving pl that still have a free slot, in
// registration order.
func (r *GormTalentRepository) GetAvailable(ctx context.Context, pl kernel.ProductLine) ([]*talent.Talent, error) {
	if err := pl.Validate(); err != nil {
		return nil, err
	}

	var dtos []TalentDTO
	if err := r.db.WithContext(ctx).
		Where("active_orders < capacity").
		Where("product_lines LIKE ?", `%"`+pl.String()+`"%`).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	talents := make([]*talent.Talent, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		talents = append(talents, t)
	}

	return talents, nil
}
