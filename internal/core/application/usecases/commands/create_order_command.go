package commands

import (
	"errors"
	"slices"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/services"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTierIsRequired = errs.NewValueIsRequiredError("tier")
)

// CreateOrderParams is the raw client input of an order submission.
type CreateOrderParams struct {
	OrderID     kernel.UUID
	ClientEmail string
	ProductLine string
	Tier        string
	Units       decimal.Decimal
	// RightsLevel is the explicit requested level; LegacyBroadcastRights is
	// the boolean older clients send instead.
	RightsLevel           string
	LegacyBroadcastRights *bool
	AddOns                []string
	PromoCode             string
}

// CreateOrderCommand submits a configured order. The price is computed
// server-side; nothing price-related is accepted from the client.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    OrderID:     kernel.NewUUID(),
//	    ClientEmail: "client@example.com",
//	    ProductLine: "voice",
//	    Tier:        "tier2",
//	    Units:       decimal.NewFromFloat(3.5),
//	    RightsLevel: "broadcast",
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	clientEmail kernel.Email
	productLine kernel.ProductLine
	tier        string
	units       decimal.Decimal
	rights      kernel.RightsLevel
	addOns      []string
	promoCode   string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(p.OrderID),
		cmd.setClientEmail(p.ClientEmail),
		cmd.setProductLine(p.ProductLine),
		cmd.setTier(p.Tier),
		cmd.setUnits(p.Units),
		cmd.setRights(p.RightsLevel, p.LegacyBroadcastRights),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.addOns = slices.Clone(p.AddOns)
	cmd.promoCode = strings.ToUpper(strings.TrimSpace(p.PromoCode))
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ClientEmail() kernel.Email {
	return c.clientEmail
}

func (c CreateOrderCommand) ProductLine() kernel.ProductLine {
	return c.productLine
}

func (c CreateOrderCommand) Tier() string {
	return c.tier
}

func (c CreateOrderCommand) Units() decimal.Decimal {
	return c.units
}

// RequestedRights is the level after applying explicit-over-legacy precedence.
func (c CreateOrderCommand) RequestedRights() kernel.RightsLevel {
	return c.rights
}

func (c CreateOrderCommand) AddOns() []string {
	return slices.Clone(c.addOns)
}

// PromoCode is normalized to upper case.
func (c CreateOrderCommand) PromoCode() string {
	return c.promoCode
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setClientEmail(value string) error {
	email, err := kernel.NewEmail(value)
	if err != nil {
		return err
	}
	c.clientEmail = email
	return nil
}

func (c *CreateOrderCommand) setProductLine(value string) error {
	pl, err := kernel.ParseProductLine(value)
	if err != nil {
		return err
	}
	c.productLine = pl
	return nil
}

func (c *CreateOrderCommand) setTier(tier string) error {
	if tier == "" {
		return ErrTierIsRequired
	}
	c.tier = tier
	return nil
}

func (c *CreateOrderCommand) setUnits(units decimal.Decimal) error {
	if units.IsNegative() {
		return errs.NewValueIsOutOfRangeError("estimated units", units, 0, "unbounded")
	}
	c.units = units
	return nil
}

func (c *CreateOrderCommand) setRights(explicit string, legacy *bool) error {
	level, err := services.RequestedRights(explicit, legacy)
	if err != nil {
		return err
	}
	c.rights = level
	return nil
}
