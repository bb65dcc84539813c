package errs

import "fmt"

// InvalidTransitionError is returned when the transition table has no edge
// for the event in the current status. Nothing is mutated.
type InvalidTransitionError struct {
	ProductLine string
	From        string
	Event       string
	Cause       error
}

func NewInvalidTransitionError(productLine, from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{ProductLine: productLine, From: from, Event: event}
}

func NewInvalidTransitionErrorWithCause(productLine, from, event string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{ProductLine: productLine, From: from, Event: event, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s order cannot handle %s in %s", ErrInvalidTransition, e.ProductLine, e.Event, e.From)
	return withCause(msg, e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// RevisionLimitExceededError is returned when a revision is requested after
// all included revisions were used.
type RevisionLimitExceededError struct {
	Count int
	Max   int
}

func NewRevisionLimitExceededError(count, maxRevisions int) *RevisionLimitExceededError {
	return &RevisionLimitExceededError{Count: count, Max: maxRevisions}
}

func (e *RevisionLimitExceededError) Error() string {
	return fmt.Sprintf("%s: %d of %d revisions used", ErrRevisionLimit, e.Count, e.Max)
}

func (e *RevisionLimitExceededError) Unwrap() error {
	return ErrRevisionLimit
}

// VersionLimitExceededError is returned when a producer delivers more versions
// than the tier includes.
type VersionLimitExceededError struct {
	Count int
	Max   int
}

func NewVersionLimitExceededError(count, maxVersions int) *VersionLimitExceededError {
	return &VersionLimitExceededError{Count: count, Max: maxVersions}
}

func (e *VersionLimitExceededError) Error() string {
	return fmt.Sprintf("%s: %d of %d versions delivered", ErrVersionLimit, e.Count, e.Max)
}

func (e *VersionLimitExceededError) Unwrap() error {
	return ErrVersionLimit
}

// AlreadyIssuedError is returned on a second certificate issuance for the same order.
type AlreadyIssuedError struct {
	OrderID string
	Cause   error
}

func NewAlreadyIssuedError(orderID string) *AlreadyIssuedError {
	return &AlreadyIssuedError{OrderID: orderID}
}

func NewAlreadyIssuedErrorWithCause(orderID string, cause error) *AlreadyIssuedError {
	return &AlreadyIssuedError{OrderID: orderID, Cause: cause}
}

func (e *AlreadyIssuedError) Error() string {
	return withCause(fmt.Sprintf("%s: order %s", ErrAlreadyIssued, e.OrderID), e.Cause)
}

func (e *AlreadyIssuedError) Unwrap() error {
	return ErrAlreadyIssued
}

// PreconditionFailedError is returned when a guarded write found the row in a
// different state than the one it was read in.
type PreconditionFailedError struct {
	Entity string
	ID     string
	Cause  error
}

func NewPreconditionFailedError(entity, id string) *PreconditionFailedError {
	return &PreconditionFailedError{Entity: entity, ID: id}
}

func NewPreconditionFailedErrorWithCause(entity, id string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Entity: entity, ID: id, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified concurrently", ErrPreconditionFailed, e.Entity, e.ID)
	return withCause(msg, e.Cause)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
