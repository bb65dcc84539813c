package order

import (
	"slices"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
)

type edge struct {
	from  Status
	event Event
}

// Lifecycle is the transition table of one product line together with the
// statuses in which messaging and certificate issuance are open.
type Lifecycle struct {
	productLine  kernel.ProductLine
	transitions  map[edge]Status
	messaging    []Status
	certificates []Status
}

var lifecycles = map[kernel.ProductLine]*Lifecycle{
	kernel.ProductLineVoice: {
		productLine: kernel.ProductLineVoice,
		transitions: map[edge]Status{
			{PendingPayment, EventPay}:               Paid,
			{Paid, EventStartProduction}:             InProduction,
			{InProduction, EventDeliverVersion}:      Delivered,
			{Delivered, EventRequestRevision}:        InProduction,
			{Delivered, EventApproveVersion}:         AwaitingFinal,
			{AwaitingFinal, EventUploadDeliveryFile}: Completed,
		},
		messaging:    []Status{Paid, InProduction, Delivered, AwaitingFinal},
		certificates: []Status{AwaitingFinal, Completed},
	},
	kernel.ProductLineMusic: {
		productLine: kernel.ProductLineMusic,
		transitions: map[edge]Status{
			{PendingPayment, EventPay}:               Paid,
			{Paid, EventStartProduction}:             InProduction,
			{InProduction, EventDeliverVersion}:      DemoReady,
			{DemoReady, EventOpenReview}:             ClientReviewing,
			{ClientReviewing, EventRequestRevision}:  InProduction,
			{ClientReviewing, EventApproveVersion}:   AwaitingFinal,
			{AwaitingFinal, EventUploadDeliveryFile}: Completed,
		},
		messaging:    []Status{Paid, InProduction, DemoReady, ClientReviewing, AwaitingFinal},
		certificates: []Status{AwaitingFinal, Completed},
	},
	kernel.ProductLineOrchestra: {
		productLine: kernel.ProductLineOrchestra,
		transitions: map[edge]Status{
			{PendingPayment, EventPay}:                Paid,
			{Paid, EventUploadReferenceFile}:          AwaitingFiles,
			{AwaitingFiles, EventUploadReferenceFile}: AwaitingFiles,
			{AwaitingFiles, EventSubmitFiles}:         UnderReview,
			{UnderReview, EventStartProduction}:       InProduction,
			{InProduction, EventUploadDeliveryFile}:   Delivered,
			{Delivered, EventAcceptDelivery}:          Completed,
			{Delivered, EventAutoComplete}:            Completed,
		},
		messaging:    []Status{AwaitingFiles, UnderReview, InProduction, Delivered},
		certificates: []Status{Delivered, Completed},
	},
}

// LifecycleFor returns the transition table of a product line.
func LifecycleFor(pl kernel.ProductLine) (*Lifecycle, error) {
	lc, ok := lifecycles[pl]
	if !ok {
		return nil, pl.Validate()
	}
	return lc, nil
}

// Next returns the status reached from `from` on `event`, if any.
func (l *Lifecycle) Next(from Status, event Event) (Status, bool) {
	to, ok := l.transitions[edge{from: from, event: event}]
	return to, ok
}

// Events lists the events accepted in a status, in declaration order.
func (l *Lifecycle) Events(from Status) []Event {
	var events []Event
	for e := EventPay; e <= EventAutoComplete; e++ {
		if _, ok := l.transitions[edge{from: from, event: e}]; ok {
			events = append(events, e)
		}
	}
	return events
}

// AllowsMessaging reports whether messages may be posted while in s.
func (l *Lifecycle) AllowsMessaging(s Status) bool {
	return slices.Contains(l.messaging, s)
}

// AllowsCertificate reports whether a rights certificate may be issued while in s.
func (l *Lifecycle) AllowsCertificate(s Status) bool {
	return slices.Contains(l.certificates, s)
}

func (l *Lifecycle) reject(from Status, event Event, cause error) error {
	if cause == nil {
		return errs.NewInvalidTransitionError(l.productLine.String(), from.String(), event.String())
	}
	return errs.NewInvalidTransitionErrorWithCause(l.productLine.String(), from.String(), event.String(), cause)
}
