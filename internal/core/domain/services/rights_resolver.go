package services

import (
	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
)

// RightsResolver derives the effective rights level of an order. Quoting
// calls Resolve against the catalog; payment confirmation and certificate
// issuance call ResolveFrozen with the top-tier flag the order was created
// with, so a later catalog change cannot move an existing order's rights.
//
// Rules, first match wins:
//  1. orchestra orders are always global
//  2. voice orders on the top tier are always global
//  3. otherwise the requested level, defaulting to standard
type RightsResolver struct {
	catalog *catalog.Catalog
}

func NewRightsResolver(c *catalog.Catalog) RightsResolver {
	return RightsResolver{catalog: c}
}

// Resolve returns the effective level. The tier must exist for the product
// line; an empty requested level means standard.
func (r RightsResolver) Resolve(pl kernel.ProductLine, tier string, requested kernel.RightsLevel) (kernel.RightsLevel, error) {
	if _, err := r.catalog.Tier(pl, tier); err != nil {
		return "", err
	}
	return r.ResolveFrozen(pl, r.catalog.IsTopTier(pl, tier), requested)
}

// ResolveFrozen applies the same rules without consulting the catalog.
func (r RightsResolver) ResolveFrozen(pl kernel.ProductLine, topTier bool, requested kernel.RightsLevel) (kernel.RightsLevel, error) {
	if err := pl.Validate(); err != nil {
		return "", err
	}
	if requested == "" {
		requested = kernel.RightsStandard
	}
	if err := requested.Validate(); err != nil {
		return "", err
	}

	switch {
	case pl == kernel.ProductLineOrchestra:
		return kernel.RightsGlobal, nil
	case pl == kernel.ProductLineVoice && topTier:
		return kernel.RightsGlobal, nil
	default:
		return requested, nil
	}
}

// RequestedRights picks the requested level from an explicit value and the
// legacy boolean flag older clients still send. An explicit level wins; the
// flag maps true to broadcast and false to standard; with neither the
// request is standard.
func RequestedRights(explicit string, legacyBroadcast *bool) (kernel.RightsLevel, error) {
	if explicit != "" {
		return kernel.ParseRightsLevel(explicit)
	}
	if legacyBroadcast != nil && *legacyBroadcast {
		return kernel.RightsBroadcast, nil
	}
	return kernel.RightsStandard, nil
}
