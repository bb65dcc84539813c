package certificate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/canonhash"
	"commissions/internal/pkg/errs"
	"commissions/internal/pkg/guard"
)

var ErrCertificateIsNotConstructed = errors.New("Certificate must be created via NewCertificate constructor")

// Certificate is the issued, immutable record of an order's rights grant.
// At most one exists per order; storage enforces it.
type Certificate struct {
	id             kernel.UUID
	orderID        kernel.UUID
	licenseID      string
	inputs         Inputs
	catalogVersion string
	mappingVersion string
	rights         Rights
	digest         string
	issuedAt       time.Time
	guard          guard.ConstructorGuard
}

// NewLicenseID returns a globally unique license id such as
// "LIC-VOICE-8f0c...".
func NewLicenseID(pl kernel.ProductLine) string {
	return fmt.Sprintf("LIC-%s-%s", strings.ToUpper(pl.String()), kernel.NewUUID())
}

// NewCertificate freezes rights for an order and computes their digest.
func NewCertificate(
	id, orderID kernel.UUID,
	inputs Inputs,
	catalogVersion, mappingVersion string,
	rights Rights,
	issuedAt time.Time,
) (*Certificate, error) {
	digest, _, err := canonhash.SumObject(rights)
	if err != nil {
		return nil, err
	}
	return build(id, orderID, NewLicenseID(inputs.ProductLine), inputs, catalogVersion, mappingVersion, rights, digest, issuedAt)
}

// RestoreCertificate rebuilds a stored certificate and checks that the
// stored rights still match their digest.
func RestoreCertificate(
	id, orderID kernel.UUID,
	licenseID string,
	inputs Inputs,
	catalogVersion, mappingVersion string,
	rights Rights,
	digest string,
	issuedAt time.Time,
) (*Certificate, error) {
	actual, _, err := canonhash.SumObject(rights)
	if err != nil {
		return nil, err
	}
	if actual != digest {
		return nil, errs.NewValueIsInvalidErrorWithCause("certificate digest",
			fmt.Errorf("stored %s, computed %s", digest, actual))
	}
	return build(id, orderID, licenseID, inputs, catalogVersion, mappingVersion, rights, digest, issuedAt)
}

func build(
	id, orderID kernel.UUID,
	licenseID string,
	inputs Inputs,
	catalogVersion, mappingVersion string,
	rights Rights,
	digest string,
	issuedAt time.Time,
) (*Certificate, error) {
	var errList []error
	errList = append(errList, id.Validate(), orderID.Validate(), inputs.ProductLine.Validate(), inputs.RightsLevel.Validate())
	if licenseID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("license id"))
	}
	if catalogVersion == "" || mappingVersion == "" {
		errList = append(errList, errs.NewValueIsRequiredError("catalog and mapping version"))
	}
	if rights.Level != inputs.RightsLevel {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("rights",
			fmt.Errorf("rights mapped for %s, inputs carry %s", rights.Level, inputs.RightsLevel)))
	}
	if issuedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("issued at"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Certificate{
		id:             id,
		orderID:        orderID,
		licenseID:      licenseID,
		inputs:         inputs,
		catalogVersion: catalogVersion,
		mappingVersion: mappingVersion,
		rights:         rights.Clone(),
		digest:         digest,
		issuedAt:       issuedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c *Certificate) Validate() error {
	if c == nil {
		return ErrCertificateIsNotConstructed
	}
	return c.guard.Validate(ErrCertificateIsNotConstructed)
}

func (c *Certificate) ID() kernel.UUID {
	return c.id
}

func (c *Certificate) OrderID() kernel.UUID {
	return c.orderID
}

func (c *Certificate) LicenseID() string {
	return c.licenseID
}

func (c *Certificate) Inputs() Inputs {
	return c.inputs
}

func (c *Certificate) CatalogVersion() string {
	return c.catalogVersion
}

func (c *Certificate) MappingVersion() string {
	return c.mappingVersion
}

func (c *Certificate) Rights() Rights {
	return c.rights.Clone()
}

func (c *Certificate) Digest() string {
	return c.digest
}

func (c *Certificate) IssuedAt() time.Time {
	return c.issuedAt
}
