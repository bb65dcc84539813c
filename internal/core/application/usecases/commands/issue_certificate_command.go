package commands

import (
	"errors"
	"strings"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/guard"
)

var ErrIssueCertificateCommandIsNotConstructed = errors.New(
	"IssueCertificateCommand must be created via NewIssueCertificateCommand constructor",
)

// IssueCertificateCommand freezes an order's rights into its certificate.
// VoiceAffidavitRef is optional and only read for voice orders.
type IssueCertificateCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	voiceAffidavitRef string

	guard guard.ConstructorGuard
}

func NewIssueCertificateCommand(orderID kernel.UUID, voiceAffidavitRef string) (IssueCertificateCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueCertificateCommand{}, err
	}
	return IssueCertificateCommand{
		orderID:           orderID,
		voiceAffidavitRef: strings.TrimSpace(voiceAffidavitRef),
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c IssueCertificateCommand) Validate() error {
	return c.guard.Validate(ErrIssueCertificateCommandIsNotConstructed)
}

func (c IssueCertificateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c IssueCertificateCommand) VoiceAffidavitRef() string {
	return c.voiceAffidavitRef
}
