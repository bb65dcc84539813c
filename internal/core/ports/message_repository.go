package ports

import (
	"context"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
)

// MessageRepository appends to and reads an order's message log. There is
// no update or delete.
type MessageRepository interface {
	Add(ctx context.Context, m *message.Message) error

	// ListByOrder returns messages ordered by server timestamp.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*message.Message, error)
}
