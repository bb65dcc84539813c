package message

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

// MaxBodyLength is the longest message body, in characters.
const MaxBodyLength = 5000

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// AuthorRole identifies which side of the order wrote a message.
type AuthorRole string

const (
	AuthorClient   AuthorRole = "client"
	AuthorProducer AuthorRole = "producer"
	AuthorSystem   AuthorRole = "system"
)

func (r AuthorRole) Validate() error {
	switch r {
	case AuthorClient, AuthorProducer, AuthorSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("author role", fmt.Errorf("%q is not a valid author role", string(r)))
	}
}

// Message is an immutable entry of an order's communication log.
type Message struct {
	id          kernel.UUID
	orderID     kernel.UUID
	authorRole  AuthorRole
	authorEmail string
	body        string
	createdAt   time.Time
	guard       guard.ConstructorGuard
}

// NewMessage validates and builds a message. createdAt is the server clock;
// it defines ordering within an order.
func NewMessage(id, orderID kernel.UUID, role AuthorRole, authorEmail, body string, createdAt time.Time) (*Message, error) {
	m := &Message{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		role.Validate(),
		validateBody(body),
		validateCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	m.id = id
	m.orderID = orderID
	m.authorRole = role
	m.authorEmail = authorEmail
	m.body = body
	m.createdAt = createdAt
	return m, nil
}

func validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return errs.NewValueIsRequiredError("body")
	}
	if n := utf8.RuneCountInString(body); n > MaxBodyLength {
		return errs.NewValueIsOutOfRangeError("body length", n, 1, MaxBodyLength)
	}
	return nil
}

func validateCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	return nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID { return m.id }
func (m *Message) OrderID() kernel.UUID { return m.orderID }
func (m *Message) AuthorRole() AuthorRole { return m.authorRole }
func (m *Message) AuthorEmail() string { return m.authorEmail }
func (m *Message) Body() string { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
