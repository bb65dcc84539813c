package ports

import (
	"context"
	"time"
)

// Notification kinds published after successful writes.
const (
	NotificationOrderCreated       = "order.created"
	NotificationOrderTransitioned  = "order.transitioned"
	NotificationOrderAutoCompleted = "order.auto_completed"
	NotificationTalentAssigned     = "order.talent_assigned"
	NotificationMessagePosted      = "order.message_posted"
	NotificationCertificateIssued  = "order.certificate_issued"
)

// OrderEvent is the plain-data notification handed to the dispatcher.
type OrderEvent struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"orderId"`
	ProductLine string    `json:"productLine"`
	Event       string    `json:"event,omitempty"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	ClientEmail string    `json:"clientEmail,omitempty"`
	TalentID    string    `json:"talentId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NotificationDispatcher delivers order events to the outbound channel.
// Callers invoke it only after commit; a failure never undoes the write.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event OrderEvent) error
}
