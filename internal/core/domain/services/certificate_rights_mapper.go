package services

import (
	"errors"
	"slices"

	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
)

// RightsMappingVersion identifies the clause wording below. Bump it whenever
// any clause text or channel list changes.
const RightsMappingVersion = "rights-map/2026-01"

var (
	standardChannels  = []string{"web", "social_media", "podcast", "corporate_internal"}
	broadcastChannels = []string{"television", "radio", "streaming_platforms"}
	globalChannels    = []string{"cinema", "out_of_home", "video_games", "all_media"}
)

const (
	territoryStandard  = "Country of first publication"
	territoryBroadcast = "North America, European Union and United Kingdom"
	territoryGlobal    = "Worldwide"

	validityStandard  = "24 months"
	validityBroadcast = "60 months"
	validityPerpetual = "Perpetual"

	ownershipBuyout   = "Full buyout: all right, title and interest in the work is assigned to the client"
	ownershipLicensed = "Licensed: the producer retains ownership; the client holds a non-exclusive license"

	distributionBuyout   = "Unrestricted distribution in any medium"
	distributionLicensed = "Distribution limited to the listed media channels and territory"

	transferBuyout   = "Freely transferable and assignable by the client"
	transferLicensed = "Non-transferable without the producer's written consent"

	sublicenseBuyout = "Unlimited sublicensing permitted"
	sublicenseGlobal = "Sublicensing permitted within the listed media channels"
	sublicenseNone   = "No sublicensing"

	indemnityStandard  = "Producer indemnifies third-party claims up to the order price"
	indemnityBroadcast = "Producer indemnifies third-party claims up to twice the order price"
	indemnityGlobal    = "Producer fully indemnifies third-party intellectual property claims"

	voiceAffidavitClause = "Voice talent identity and recording consent verified by affidavit on file"
)

// CertificateRightsMapper turns an order's issuance inputs into the clause
// set frozen onto its certificate.
type CertificateRightsMapper struct {
	catalog *catalog.Catalog
}

func NewCertificateRightsMapper(c *catalog.Catalog) CertificateRightsMapper {
	return CertificateRightsMapper{catalog: c}
}

// Inputs captures everything the mapping depends on, including whether the
// tier is the line's top tier, so a stored certificate can be replayed
// without consulting the live catalog.
func (m CertificateRightsMapper) Inputs(
	pl kernel.ProductLine,
	tier string,
	level kernel.RightsLevel,
	voiceAffidavitRef string,
) (certificate.Inputs, error) {
	if _, err := m.catalog.Tier(pl, tier); err != nil {
		return certificate.Inputs{}, err
	}
	return m.FrozenInputs(pl, tier, m.catalog.IsTopTier(pl, tier), level, voiceAffidavitRef)
}

// FrozenInputs builds the inputs from a top-tier flag captured when the
// order was created. Issuance uses it so the certificate reflects the terms
// the client paid for.
func (m CertificateRightsMapper) FrozenInputs(
	pl kernel.ProductLine,
	tier string,
	topTier bool,
	level kernel.RightsLevel,
	voiceAffidavitRef string,
) (certificate.Inputs, error) {
	if err := errors.Join(pl.Validate(), level.Validate()); err != nil {
		return certificate.Inputs{}, err
	}
	if tier == "" {
		return certificate.Inputs{}, errs.NewValueIsRequiredError("tier")
	}
	return certificate.Inputs{
		ProductLine:       pl,
		Tier:              tier,
		RightsLevel:       level,
		TopTier:           topTier,
		VoiceAffidavitRef: voiceAffidavitRef,
	}, nil
}

// MapRightsForCertificate is deterministic: equal inputs always produce
// Rights with an identical JSON encoding.
func MapRightsForCertificate(in certificate.Inputs) certificate.Rights {
	buyout := IsFullBuyout(in.ProductLine, in.TopTier, in.RightsLevel)

	r := certificate.Rights{
		Level:         in.RightsLevel,
		FullBuyout:    buyout,
		MediaChannels: MediaChannels(in.RightsLevel),
	}

	switch in.RightsLevel {
	case kernel.RightsGlobal:
		r.GeographicTerritory = territoryGlobal
		r.ValidityPeriod = validityPerpetual
		r.SublicensingRights = sublicenseGlobal
		r.Indemnification = indemnityGlobal
	case kernel.RightsBroadcast:
		r.GeographicTerritory = territoryBroadcast
		r.ValidityPeriod = validityBroadcast
		r.SublicensingRights = sublicenseNone
		r.Indemnification = indemnityBroadcast
	default:
		r.GeographicTerritory = territoryStandard
		r.ValidityPeriod = validityStandard
		r.SublicensingRights = sublicenseNone
		r.Indemnification = indemnityStandard
	}

	if buyout {
		r.OwnershipStatus = ownershipBuyout
		r.DistributionRights = distributionBuyout
		r.Transferability = transferBuyout
		r.SublicensingRights = sublicenseBuyout
		r.ValidityPeriod = validityPerpetual
	} else {
		r.OwnershipStatus = ownershipLicensed
		r.DistributionRights = distributionLicensed
		r.Transferability = transferLicensed
	}

	if in.HasVoiceAffidavit() {
		r.VoiceAffidavit = voiceAffidavitClause
	}
	return r
}

// IsFullBuyout is true for voice top tier at global rights, any music top
// tier and every orchestra order.
func IsFullBuyout(pl kernel.ProductLine, topTier bool, level kernel.RightsLevel) bool {
	switch pl {
	case kernel.ProductLineOrchestra:
		return true
	case kernel.ProductLineMusic:
		return topTier
	case kernel.ProductLineVoice:
		return topTier && level == kernel.RightsGlobal
	default:
		return false
	}
}

// MediaChannels returns the channel set of a level. Sets are nested:
// standard within broadcast within global.
func MediaChannels(level kernel.RightsLevel) []string {
	channels := slices.Clone(standardChannels)
	if level == kernel.RightsBroadcast || level == kernel.RightsGlobal {
		channels = append(channels, broadcastChannels...)
	}
	if level == kernel.RightsGlobal {
		channels = append(channels, globalChannels...)
	}
	return channels
}
