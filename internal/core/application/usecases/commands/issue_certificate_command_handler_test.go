package commands_test

import (
	"strings"
	"testing"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/services"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIssueHandler(factory commands.CertificateUoWFactory) commands.IssueCertificateCommandHandler {
	return newIssueHandlerWith(factory, catalog.Default())
}

func newIssueHandlerWith(factory commands.CertificateUoWFactory, c *catalog.Catalog) commands.IssueCertificateCommandHandler {
	return commands.NewIssueCertificateCommandHandler(
		factory,
		services.NewRightsResolver(c),
		services.NewCertificateRightsMapper(c),
		c.Version(),
		fixedClock(t0),
		commands.Notifier{},
		nil,
	)
}

func awaitingFinalVoice(t *testing.T) *order.Order {
	t.Helper()
	o := paidVoice(t)
	apply(t, o, order.EventStartProduction, order.Payload{})
	apply(t, o, order.EventDeliverVersion, order.Payload{Ref: "takes/v1.wav"})
	apply(t, o, order.EventApproveVersion, order.Payload{})
	return o
}

// withVoiceTier4 derives a catalog version where voice tier3 is no longer
// the top tier.
func withVoiceTier4(t *testing.T) *catalog.Catalog {
	t.Helper()
	lines := catalog.DefaultLines()
	for i := range lines {
		if lines[i].ProductLine == kernel.ProductLineVoice {
			lines[i].Tiers = append(lines[i].Tiers, catalog.Tier{
				Code: "tier4", Name: "Studio Buyout", Pricing: catalog.PricingFlat,
				BasePrice: decimal.NewFromInt(1200), MaxRevisions: 3, MaxVersions: 4, TurnaroundDays: 10,
			})
		}
	}
	c, err := catalog.NewCatalog("2026.2", "USD", 2, lines...)
	require.NoError(t, err)
	return c
}

func awaitingFinalTopTierVoice(t *testing.T, effective kernel.RightsLevel) *order.Order {
	t.Helper()
	o := newOrder(t, kernel.ProductLineVoice, "tier3", kernel.RightsStandard, effective)
	apply(t, o, order.EventPay, order.Payload{PaymentRef: "pi_1"})
	apply(t, o, order.EventStartProduction, order.Payload{})
	apply(t, o, order.EventDeliverVersion, order.Payload{Ref: "takes/v1.wav"})
	apply(t, o, order.EventApproveVersion, order.Payload{})
	return o
}

func TestIssueCertificateCommandHandler_Handle(t *testing.T) {
	t.Run("should issue a voice certificate with the affidavit", func(t *testing.T) {
		ctx := t.Context()
		o := awaitingFinalVoice(t)
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "affidavits/123.pdf")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		certs := new(MockCertificateRepository)
		certs.On("Add", ctx, mock.AnythingOfType("*certificate.Certificate")).Return(nil).Once()
		uow := newUoW(orders, certs)
		uow.On("Commit", ctx).Return(nil).Once()
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		cert, err := newIssueHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(cert.LicenseID(), "LIC-VOICE-"))
		assert.Equal(t, o.ID(), cert.OrderID())
		assert.Equal(t, kernel.RightsBroadcast, cert.Rights().Level)
		assert.Equal(t, "affidavits/123.pdf", cert.Inputs().VoiceAffidavitRef)
		assert.Equal(t, catalog.DefaultVersion, cert.CatalogVersion())
		assert.Equal(t, services.RightsMappingVersion, cert.MappingVersion())
		assert.True(t, strings.HasPrefix(cert.Digest(), "sha256:"))
		assert.Equal(t, t0, cert.IssuedAt())
		certs.AssertExpectations(t)
	})

	t.Run("should ignore the affidavit for other lines", func(t *testing.T) {
		ctx := t.Context()
		o := deliveredOrchestra(t)
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "affidavits/123.pdf")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		certs := new(MockCertificateRepository)
		certs.On("Add", ctx, mock.AnythingOfType("*certificate.Certificate")).Return(nil).Once()
		uow := newUoW(orders, certs)
		uow.On("Commit", ctx).Return(nil).Once()
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		cert, err := newIssueHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, kernel.RightsGlobal, cert.Rights().Level)
		assert.Empty(t, cert.Inputs().VoiceAffidavitRef)
		assert.Empty(t, cert.Rights().VoiceAffidavit)
	})

	t.Run("should refuse before the issuance status", func(t *testing.T) {
		ctx := t.Context()
		o := paidVoice(t)
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow := newUoW(orders)
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = newIssueHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should report a second issuance", func(t *testing.T) {
		ctx := t.Context()
		o := awaitingFinalVoice(t)
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		certs := new(MockCertificateRepository)
		certs.On("Add", ctx, mock.Anything).Return(errs.NewAlreadyIssuedError(o.ID().String())).Once()
		uow := newUoW(orders, certs)
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = newIssueHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAlreadyIssued)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should keep the rights the order was priced at after the catalog grows", func(t *testing.T) {
		ctx := t.Context()
		o := awaitingFinalTopTierVoice(t, kernel.RightsGlobal)
		require.True(t, o.TopTier())
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		certs := new(MockCertificateRepository)
		certs.On("Add", ctx, mock.AnythingOfType("*certificate.Certificate")).Return(nil).Once()
		uow := newUoW(orders, certs)
		uow.On("Commit", ctx).Return(nil).Once()
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		cert, err := newIssueHandlerWith(factory, withVoiceTier4(t)).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, kernel.RightsGlobal, cert.Rights().Level)
		assert.True(t, cert.Inputs().TopTier)
		assert.True(t, cert.Rights().FullBuyout)
		assert.Equal(t, services.MapRightsForCertificate(cert.Inputs()), cert.Rights())
	})

	t.Run("should refuse when the resolved rights differ from the priced level", func(t *testing.T) {
		ctx := t.Context()
		// Top-tier voice resolves to global; this order claims standard.
		o := awaitingFinalTopTierVoice(t, kernel.RightsStandard)
		cmd, err := commands.NewIssueCertificateCommand(o.ID(), "")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		certs := new(MockCertificateRepository)
		uow := newUoW(orders, certs)
		factory := new(MockCertificateUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = newIssueHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		certs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
