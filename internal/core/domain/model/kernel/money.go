package kernel

import (
	"errors"
	"fmt"
	"strings"

	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromMinor")

// Money is a non-negative amount in a single currency. Amounts are kept as
// decimals and rounded to the currency's minor unit only when a price is
// finalized.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney builds a Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromMinor builds a Money from an integer count of minor units (cents).
func MoneyFromMinor(minor int64, minorUnits int32, currency string) (Money, error) {
	return NewMoney(decimal.New(minor, -minorUnits), currency)
}

// ZeroMoney returns a zero amount in currency.
func ZeroMoney(currency string) Money {
	m, err := NewMoney(decimal.Zero, currency)
	if err != nil {
		return Money{}
	}
	return m
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Round rounds half away from zero to the given number of minor-unit places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency, guard: m.guard}
}

// MinorUnits returns the amount as an integer count of minor units.
func (m Money) MinorUnits(places int32) int64 {
	return m.amount.Shift(places).Round(0).IntPart()
}

func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	m.currency = currency
	return nil
}
