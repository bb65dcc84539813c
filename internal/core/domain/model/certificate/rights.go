package certificate

import (
	"slices"

	"commissions/internal/core/domain/model/kernel"
)

// Rights is the legal clause set frozen onto a certificate. It is pure
// derived data; the JSON encoding is the stored form and is stable for equal values.
type Rights struct {
	Level               kernel.RightsLevel `json:"level"`
	FullBuyout          bool               `json:"fullBuyout"`
	ValidityPeriod      string             `json:"validityPeriod"`
	GeographicTerritory string             `json:"geographicTerritory"`
	MediaChannels       []string           `json:"mediaChannels"`
	SublicensingRights  string             `json:"sublicensingRights"`
	DistributionRights  string             `json:"distributionRights"`
	Transferability     string             `json:"transferability"`
	OwnershipStatus     string             `json:"ownershipStatus"`
	VoiceAffidavit      string             `json:"voiceAffidavit,omitempty"`
	Indemnification     string             `json:"indemnification"`
}

// Clone returns a deep copy.
func (r Rights) Clone() Rights {
	r.MediaChannels = slices.Clone(r.MediaChannels)
	return r
}

// Equal compares every clause.
func (r Rights) Equal(other Rights) bool {
	return r.Level == other.Level &&
		r.FullBuyout == other.FullBuyout &&
		r.ValidityPeriod == other.ValidityPeriod &&
		r.GeographicTerritory == other.GeographicTerritory &&
		slices.Equal(r.MediaChannels, other.MediaChannels) &&
		r.SublicensingRights == other.SublicensingRights &&
		r.DistributionRights == other.DistributionRights &&
		r.Transferability == other.Transferability &&
		r.OwnershipStatus == other.OwnershipStatus &&
		r.VoiceAffidavit == other.VoiceAffidavit &&
		r.Indemnification == other.Indemnification
}

// Inputs are the issuance-time arguments of the rights mapping. They are
// stored with the certificate so the mapping can be replayed later.
type Inputs struct {
	ProductLine       kernel.ProductLine `json:"productLine"`
	Tier              string             `json:"tier"`
	RightsLevel       kernel.RightsLevel `json:"rightsLevel"`
	TopTier           bool               `json:"topTier"`
	VoiceAffidavitRef string             `json:"voiceAffidavitRef,omitempty"`
}

// HasVoiceAffidavit reports whether an identity verification reference was supplied.
func (i Inputs) HasVoiceAffidavit() bool {
	return i.VoiceAffidavitRef != ""
}
