// Package talentrepo persists talent aggregates.
package talentrepo

import (
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/talent"

	"github.com/google/uuid"
)

// TalentDTO is the talents row. Product lines are a JSON array so the same
// schema runs on postgres and sqlite.
type TalentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	ProductLines []string  `gorm:"type:text;serializer:json;not null"`
	Capacity     int       `gorm:"not null"`
	ActiveOrders int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (TalentDTO) TableName() string {
	return "talents"
}

func fromDomain(t *talent.Talent) TalentDTO {
	lines := make([]string, 0, len(t.ProductLines()))
	for _, pl := range t.ProductLines() {
		lines = append(lines, pl.String())
	}

	return TalentDTO{
		ID:           t.ID().Bytes(),
		Name:         t.Name(),
		Email:        t.Email().String(),
		ProductLines: lines,
		Capacity:     t.Capacity(),
		ActiveOrders: t.ActiveOrders(),
	}
}

func toDomain(dto TalentDTO) (*talent.Talent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	lines := make([]kernel.ProductLine, 0, len(dto.ProductLines))
	for _, v := range dto.ProductLines {
		pl, plErr := kernel.ParseProductLine(v)
		if plErr != nil {
			return nil, plErr
		}
		lines = append(lines, pl)
	}

	return talent.RestoreTalent(id, dto.Name, email, lines, dto.Capacity, dto.ActiveOrders)
}
