package queries

import (
	"context"
	"database/sql"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListMessagesQueryHandler returns the thread of an existing order. An
// unknown order is an error rather than an empty thread.
type ListMessagesQueryHandler struct {
	db *gorm.DB
}

func NewListMessagesQueryHandler(db *gorm.DB) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{db: db}
}

func (h ListMessagesQueryHandler) Handle(
	ctx context.Context,
	query ListMessagesQuery,
) ([]ListMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	var found int64
	if err := db.Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, orderID).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := db.Raw(`
		SELECT
			id,
			author_role,
			author_email,
			body,
			created_at
		FROM order_messages
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]ListMessagesQueryResponse, 0)
	for rows.Next() {
		var m ListMessagesQueryResponse
		var id uuid.UUID
		var email sql.NullString

		if err = rows.Scan(&id, &m.AuthorRole, &email, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}

		messageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		m.ID = messageID
		m.AuthorEmail = email.String
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
