package commands

import (
	"context"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler quotes the submitted configuration, validating
// any promo code against the promo store, and persists the order awaiting
// payment with the tier's limits frozen onto it.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingEngine
	promos     ports.PromoValidator
	clock      Clock
	notifier   Notifier
	metrics    *metrics.Metrics
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingEngine,
	promos ports.PromoValidator,
	clock Clock,
	notifier Notifier,
	m *metrics.Metrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		promos:     promos,
		clock:      clock,
		notifier:   notifier,
		metrics:    m,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	quote, err := PriceOrder(ctx, h.pricing, h.promos, services.PriceRequest{
		ProductLine: cmd.ProductLine(),
		Tier:        cmd.Tier(),
		Units:       cmd.Units(),
		RightsLevel: cmd.RequestedRights(),
		AddOns:      cmd.AddOns(),
		PromoCode:   cmd.PromoCode(),
	})
	if err != nil {
		h.metrics.IncQuote(cmd.ProductLine().String(), metrics.ResultRejected)
		return nil, err
	}
	h.metrics.IncQuote(cmd.ProductLine().String(), metrics.ResultOK)

	now := h.clock.now()
	o, err := order.NewOrder(order.Terms{
		ID:              cmd.OrderID(),
		ProductLine:     cmd.ProductLine(),
		Tier:            quote.Tier.Code,
		ClientEmail:     cmd.ClientEmail(),
		Units:           cmd.Units(),
		AddOns:          cmd.AddOns(),
		PromoCode:       quote.PromoCode,
		DiscountPercent: quote.DiscountPercent,
		RequestedRights: quote.RequestedRights,
		EffectiveRights: quote.EffectiveRights,
		TopTier:         quote.TopTier,
		Price:           quote.Total,
		MaxRevisions:    quote.Tier.MaxRevisions,
		MaxVersions:     quote.Tier.MaxVersions,
		TurnaroundDays:  quote.Tier.TurnaroundDays,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, orderEvent(ports.NotificationOrderCreated, o, now))
	return o, nil
}

// PriceOrder re-validates the request's promo code server-side and quotes
// it. Any discount carried in the request is replaced by the validator's.
func PriceOrder(
	ctx context.Context,
	pricing services.PricingEngine,
	promos ports.PromoValidator,
	req services.PriceRequest,
) (services.Quote, error) {
	req.DiscountPercent = decimal.Zero
	if req.PromoCode != "" {
		var result ports.PromoResult
		if promos != nil {
			var err error
			if result, err = promos.Validate(ctx, req.PromoCode); err != nil {
				return services.Quote{}, err
			}
		}
		discount, err := services.PromoDiscount(req.PromoCode, result.Valid, result.DiscountPercent)
		if err != nil {
			return services.Quote{}, err
		}
		req.DiscountPercent = discount
	}
	return pricing.Quote(req)
}
