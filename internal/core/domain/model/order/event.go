package order

import (
	"fmt"
	"time"

	"commissions/internal/pkg/errs"
)

// Event is an actor's (or the system's) request to move an order.
type Event int

const (
	EventUnknown Event = iota
	// EventPay is raised once the payment collaborator confirms capture.
	EventPay
	// EventStartProduction is raised by the producer; orchestra orders carry
	// the estimated delivery date.
	EventStartProduction
	// EventDeliverVersion registers a new Version for client review.
	EventDeliverVersion
	// EventOpenReview moves a music demo into client review.
	EventOpenReview
	// EventRequestRevision sends the latest version back to production.
	EventRequestRevision
	// EventApproveVersion approves the latest version.
	EventApproveVersion
	// EventUploadReferenceFile registers a client reference file.
	EventUploadReferenceFile
	// EventSubmitFiles hands the reference files to the producer for review.
	EventSubmitFiles
	// EventUploadDeliveryFile registers a final delivery artifact.
	EventUploadDeliveryFile
	// EventAcceptDelivery is the client's explicit acceptance.
	EventAcceptDelivery
	// EventAutoComplete is raised by the system once the review window elapsed.
	EventAutoComplete
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:             "unknown",
		EventPay:                 "pay",
		EventStartProduction:     "startProduction",
		EventDeliverVersion:      "deliverVersion",
		EventOpenReview:          "openReview",
		EventRequestRevision:     "requestRevision",
		EventApproveVersion:      "approveVersion",
		EventUploadReferenceFile: "uploadReferenceFile",
		EventSubmitFiles:         "submitFiles",
		EventUploadDeliveryFile:  "uploadDeliveryFile",
		EventAcceptDelivery:      "acceptDelivery",
		EventAutoComplete:        "autoComplete",
	}
}

func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

// IsSystemOnly reports events that callers of the public transition API may not raise.
func (e Event) IsSystemOnly() bool {
	return e == EventAutoComplete || e == EventPay
}

// ParseEvent converts a wire name ("requestRevision") into an Event.
func ParseEvent(value string) (Event, error) {
	for event, name := range getEventStrings() {
		if event != EventUnknown && name == value {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a valid event", value))
}

// Payload carries event-specific data. Only the fields relevant to the
// event are read.
type Payload struct {
	// PaymentRef identifies the captured payment (pay).
	PaymentRef string
	// Feedback explains a revision request (requestRevision).
	Feedback string
	// Ref is an artifact reference from the file-registration collaborator
	// (deliverVersion, uploadReferenceFile, uploadDeliveryFile).
	Ref string
	// Notes accompany a delivered version (deliverVersion).
	Notes string
	// EstimatedDeliveryDate overrides the tier turnaround (startProduction).
	EstimatedDeliveryDate *time.Time
}

// DefaultAutoCompleteAfter is the client review window after an orchestra delivery.
const DefaultAutoCompleteAfter = 14 * 24 * time.Hour

// Env is the ambient input of a transition. Supplying the clock keeps
// Apply a pure function of its arguments.
type Env struct {
	Now               time.Time
	AutoCompleteAfter time.Duration
}

func (e Env) autoCompleteAfter() time.Duration {
	if e.AutoCompleteAfter <= 0 {
		return DefaultAutoCompleteAfter
	}
	return e.AutoCompleteAfter
}
