// Package messagerepo stores the append-only message log of orders.
package messagerepo

import (
	"context"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageDTO is one order_messages row.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index:idx_order_messages_order_created,priority:1"`
	AuthorRole  string    `gorm:"type:varchar(16);not null"`
	AuthorEmail string    `gorm:"type:varchar(255)"`
	Body        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_order_messages_order_created,priority:2"`
}

func (MessageDTO) TableName() string {
	return "order_messages"
}

// GormMessageRepository implements ports.MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Add(ctx context.Context, m *message.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := MessageDTO{
		ID:          m.ID().Bytes(),
		OrderID:     m.OrderID().Bytes(),
		AuthorRole:  string(m.AuthorRole()),
		AuthorEmail: m.AuthorEmail(),
		Body:        m.Body(),
		CreatedAt:   m.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the order's messages by server timestamp.
func (r *GormMessageRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*message.Message, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*message.Message, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		m, err := message.NewMessage(id, orderID, message.AuthorRole(dto.AuthorRole), dto.AuthorEmail, dto.Body, dto.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}
