package queries

import (
	"context"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/metrics"
)

// GetQuoteQueryHandler prices a configuration the same way order creation
// does, including server-side promo validation.
type GetQuoteQueryHandler struct {
	pricing services.PricingEngine
	promos  ports.PromoValidator
	metrics *metrics.Metrics
}

func NewGetQuoteQueryHandler(
	pricing services.PricingEngine,
	promos ports.PromoValidator,
	m *metrics.Metrics,
) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{pricing: pricing, promos: promos, metrics: m}
}

func (h GetQuoteQueryHandler) Handle(ctx context.Context, query GetQuoteQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}

	req := query.Request()
	quote, err := commands.PriceOrder(ctx, h.pricing, h.promos, req)
	if err != nil {
		h.metrics.IncQuote(req.ProductLine.String(), metrics.ResultRejected)
		return services.Quote{}, err
	}

	h.metrics.IncQuote(req.ProductLine.String(), metrics.ResultOK)
	return quote, nil
}
