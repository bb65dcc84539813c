package commands

import (
	"context"

	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"
)

// IssueCertificateCommandHandler issues the single certificate of an order.
// The effective rights are resolved again from the order's frozen terms and
// must match the level it was priced at; the live catalog is not consulted.
// The storage unique constraint turns a concurrent second issuance into
// errs.AlreadyIssuedError.
type IssueCertificateCommandHandler struct {
	uowFactory     CertificateUoWFactory
	resolver       services.RightsResolver
	mapper         services.CertificateRightsMapper
	catalogVersion string
	clock          Clock
	notifier       Notifier
	metrics        *metrics.Metrics
}

func NewIssueCertificateCommandHandler(
	uowFactory CertificateUoWFactory,
	resolver services.RightsResolver,
	mapper services.CertificateRightsMapper,
	catalogVersion string,
	clock Clock,
	notifier Notifier,
	m *metrics.Metrics,
) IssueCertificateCommandHandler {
	return IssueCertificateCommandHandler{
		uowFactory:     uowFactory,
		resolver:       resolver,
		mapper:         mapper,
		catalogVersion: catalogVersion,
		clock:          clock,
		notifier:       notifier,
		metrics:        m,
	}
}

func (h IssueCertificateCommandHandler) Handle(
	ctx context.Context,
	cmd IssueCertificateCommand,
) (*certificate.Certificate, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.EnsureCertificateIssuable(); err != nil {
		return nil, err
	}

	level, err := h.resolver.ResolveFrozen(o.ProductLine(), o.TopTier(), o.RequestedRights())
	if err != nil {
		return nil, err
	}
	if err = o.VerifyEffectiveRights(level); err != nil {
		return nil, err
	}

	affidavit := ""
	if o.ProductLine() == kernel.ProductLineVoice {
		affidavit = cmd.VoiceAffidavitRef()
	}
	inputs, err := h.mapper.FrozenInputs(o.ProductLine(), o.Tier(), o.TopTier(), level, affidavit)
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	cert, err := certificate.NewCertificate(
		kernel.NewUUID(),
		o.ID(),
		inputs,
		h.catalogVersion,
		services.RightsMappingVersion,
		services.MapRightsForCertificate(inputs),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.CertificateRepository().Add(ctx, cert); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	h.metrics.IncCertificateIssued(o.ProductLine().String(), level.String())

	h.notifier.Notify(ctx, orderEvent(ports.NotificationCertificateIssued, o, now))
	return cert, nil
}
