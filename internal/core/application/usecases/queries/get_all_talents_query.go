package queries

import (
	"errors"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/guard"
)

var (
	ErrGetAllTalentsQueryIsNotConstructed = errors.New(
		"GetAllTalentsQuery must be created via NewGetAllTalentsQuery constructor",
	)
)

// GetAllTalentsQuery lists every registered talent with its current load.
type GetAllTalentsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllTalentsQuery() GetAllTalentsQuery {
	return GetAllTalentsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllTalentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllTalentsQueryIsNotConstructed)
}

// GetAllTalentsQueryResponse is one talent in the read model.
type GetAllTalentsQueryResponse struct {
	ID           kernel.UUID
	Name         string
	Email        string
	ProductLines []kernel.ProductLine
	Capacity     int
	ActiveOrders int
}
