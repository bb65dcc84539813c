package order

import (
	"fmt"

	"commissions/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The set is shared by all
// product lines; each line's Lifecycle decides which statuses it uses and
// which edges connect them.
//
//	voice:     PendingPayment -> Paid -> InProduction <-> Delivered -> AwaitingFinal -> Completed
//	music:     PendingPayment -> Paid -> InProduction -> DemoReady -> ClientReviewing -> AwaitingFinal -> Completed
//	                                       ^                               |
//	                                       +------- revision --------------+
//	orchestra: PendingPayment -> Paid -> AwaitingFiles -> UnderReview -> InProduction -> Delivered -> Completed
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	PendingPayment
	Paid
	AwaitingFiles
	UnderReview
	InProduction
	DemoReady
	ClientReviewing
	Delivered
	AwaitingFinal
	// Completed is terminal for every product line.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		PendingPayment:  "pending_payment",
		Paid:            "paid",
		AwaitingFiles:   "awaiting_files",
		UnderReview:     "under_review",
		InProduction:    "in_production",
		DemoReady:       "demo_ready",
		ClientReviewing: "client_reviewing",
		Delivered:       "delivered",
		AwaitingFinal:   "awaiting_final",
		Completed:       "completed",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. when read from storage.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name ("in_production"); invalid values print as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// ParseStatus converts a wire name into a Status.
func ParseStatus(value string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// PaymentStatus tracks the external payment collaborator's outcome.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", string(p)))
	}
	return nil
}
