package errs

import "fmt"

// UnknownTierError is returned when a tier is not listed for a product line.
type UnknownTierError struct {
	ProductLine string
	Tier        string
}

func NewUnknownTierError(productLine, tier string) *UnknownTierError {
	return &UnknownTierError{ProductLine: productLine, Tier: tier}
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("%s: %s/%s", ErrUnknownTier, sanitize(e.ProductLine), sanitize(e.Tier))
}

func (e *UnknownTierError) Unwrap() error {
	return ErrUnknownTier
}

// UnknownRightsLevelError is returned for rights levels outside standard/broadcast/global.
type UnknownRightsLevelError struct {
	Value string
}

func NewUnknownRightsLevelError(value string) *UnknownRightsLevelError {
	return &UnknownRightsLevelError{Value: value}
}

func (e *UnknownRightsLevelError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownRightsLevel, sanitize(e.Value))
}

func (e *UnknownRightsLevelError) Unwrap() error {
	return ErrUnknownRightsLevel
}

// UnknownAddOnError is returned when an add-on code is not offered for a product line.
type UnknownAddOnError struct {
	ProductLine string
	Code        string
}

func NewUnknownAddOnError(productLine, code string) *UnknownAddOnError {
	return &UnknownAddOnError{ProductLine: productLine, Code: code}
}

func (e *UnknownAddOnError) Error() string {
	return fmt.Sprintf("%s: %s/%s", ErrUnknownAddOn, sanitize(e.ProductLine), sanitize(e.Code))
}

func (e *UnknownAddOnError) Unwrap() error {
	return ErrUnknownAddOn
}
