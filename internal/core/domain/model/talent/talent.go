package talent

import (
	"errors"
	"fmt"
	"slices"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

const (
	// DefaultCapacity is the number of concurrent orders a new talent can hold.
	DefaultCapacity = 3
	maxNameLength   = 200
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrProductLinesRequired   = errs.NewValueIsRequiredError("product lines")
	ErrTalentIsNotConstructed = errors.New("Talent must be created via NewTalent constructor")
	ErrNoActiveOrders         = errors.New("talent has no active orders")
)

// Talent is a producer (voice actor, composer, orchestra contractor) who can
// be assigned paid orders of the product lines they serve.
//
// Business rules:
//   - a talent serves at least one product line
//   - activeOrders never exceeds capacity
//   - an order of a line the talent does not serve cannot be taken
type Talent struct {
	id           kernel.UUID
	name         string
	email        kernel.Email
	productLines []kernel.ProductLine
	capacity     int
	activeOrders int
	guard        guard.ConstructorGuard
}

// NewTalent creates an idle talent with DefaultCapacity when capacity is 0.
func NewTalent(id kernel.UUID, name string, email kernel.Email, lines []kernel.ProductLine, capacity int) (*Talent, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return RestoreTalent(id, name, email, lines, capacity, 0)
}

// RestoreTalent reconstructs a Talent from storage.
func RestoreTalent(
	id kernel.UUID,
	name string,
	email kernel.Email,
	lines []kernel.ProductLine,
	capacity int,
	activeOrders int,
) (*Talent, error) {
	t := &Talent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setEmail(email),
		t.setProductLines(lines),
		t.setLoad(capacity, activeOrders),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Talent) IsEqual(other *Talent) bool {
	if other == nil {
		return false
	}
	return t.id.IsEqual(other.id)
}

func (t *Talent) Validate() error {
	if t == nil {
		return ErrTalentIsNotConstructed
	}
	return t.guard.Validate(ErrTalentIsNotConstructed)
}

func (t *Talent) ID() kernel.UUID {
	return t.id
}

func (t *Talent) Name() string {
	return t.name
}

func (t *Talent) Email() kernel.Email {
	return t.email
}

func (t *Talent) ProductLines() []kernel.ProductLine {
	return slices.Clone(t.productLines)
}

func (t *Talent) Capacity() int {
	return t.capacity
}

func (t *Talent) ActiveOrders() int {
	return t.activeOrders
}

// Serves reports whether the talent works on the product line.
func (t *Talent) Serves(pl kernel.ProductLine) bool {
	return slices.Contains(t.productLines, pl)
}

// Load is the occupied share of capacity in [0, 1].
func (t *Talent) Load() float64 {
	return float64(t.activeOrders) / float64(t.capacity)
}

// CanTakeOrder reports whether the talent serves the order's line and has a free slot.
func (t *Talent) CanTakeOrder(o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	return t.Serves(o.ProductLine()) && t.activeOrders < t.capacity, nil
}

// TakeOrder occupies one slot for the order.
func (t *Talent) TakeOrder(o *order.Order) error {
	ok, err := t.CanTakeOrder(o)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("talent",
			fmt.Errorf("%s cannot take %s order %s", t.name, o.ProductLine(), o.ID()))
	}
	t.activeOrders++
	return nil
}

// ReleaseOrder frees a slot once an assigned order completes.
func (t *Talent) ReleaseOrder() error {
	if t.activeOrders == 0 {
		return ErrNoActiveOrders
	}
	t.activeOrders--
	return nil
}

func (t *Talent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Talent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	t.name = name
	return nil
}

func (t *Talent) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	t.email = email
	return nil
}

func (t *Talent) setProductLines(lines []kernel.ProductLine) error {
	if len(lines) == 0 {
		return ErrProductLinesRequired
	}
	var out []kernel.ProductLine
	for _, pl := range lines {
		if err := pl.Validate(); err != nil {
			return err
		}
		if !slices.Contains(out, pl) {
			out = append(out, pl)
		}
	}
	t.productLines = out
	return nil
}

func (t *Talent) setLoad(capacity, activeOrders int) error {
	if capacity < 1 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	if activeOrders < 0 || activeOrders > capacity {
		return errs.NewValueIsOutOfRangeError("active orders", activeOrders, 0, capacity)
	}
	t.capacity = capacity
	t.activeOrders = activeOrders
	return nil
}
