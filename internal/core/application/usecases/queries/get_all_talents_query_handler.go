package queries

import (
	"context"
	"encoding/json"

	"commissions/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllTalentsQueryHandler reads talents with direct SQL, sorted by name.
//
// Example:
//
//	handler := NewGetAllTalentsQueryHandler(db)
//	talents, err := handler.Handle(ctx, NewGetAllTalentsQuery())
type GetAllTalentsQueryHandler struct {
	db *gorm.DB
}

func NewGetAllTalentsQueryHandler(db *gorm.DB) GetAllTalentsQueryHandler {
	return GetAllTalentsQueryHandler{db: db}
}

func (h GetAllTalentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllTalentsQuery,
) ([]GetAllTalentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	talents := make([]GetAllTalentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			product_lines,
			capacity,
			active_orders
		FROM talents
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t GetAllTalentsQueryResponse
		var id uuid.UUID
		var lines string

		err = rows.Scan(
			&id,
			&t.Name,
			&t.Email,
			&lines,
			&t.Capacity,
			&t.ActiveOrders,
		)
		if err != nil {
			return nil, err
		}

		talentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		t.ID = talentID

		if t.ProductLines, err = decodeProductLines(lines); err != nil {
			return nil, err
		}
		talents = append(talents, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return talents, nil
}

func decodeProductLines(raw string) ([]kernel.ProductLine, error) {
	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		return nil, err
	}

	lines := make([]kernel.ProductLine, 0, len(codes))
	for _, code := range codes {
		pl, err := kernel.ParseProductLine(code)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pl)
	}
	return lines, nil
}
