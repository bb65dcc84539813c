package queries

import (
	"errors"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/guard"
)

var (
	ErrListMessagesQueryIsNotConstructed = errors.New(
		"ListMessagesQuery must be created via NewListMessagesQuery constructor",
	)
)

// ListMessagesQuery reads an order's message thread in server-timestamp order.
type ListMessagesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListMessagesQuery(orderID kernel.UUID) (ListMessagesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListMessagesQuery{}, err
	}
	return ListMessagesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

func (q ListMessagesQuery) OrderID() kernel.UUID {
	return q.orderID
}

type ListMessagesQueryResponse struct {
	ID          kernel.UUID
	AuthorRole  string
	AuthorEmail string
	Body        string
	CreatedAt   time.Time
}
