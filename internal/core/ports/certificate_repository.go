package ports

import (
	"context"

	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
)

// CertificateRepository stores issued certificates.
type CertificateRepository interface {
	// Add returns errs.AlreadyIssuedError when the order already has a
	// certificate. Storage enforces this with a unique constraint.
	Add(ctx context.Context, c *certificate.Certificate) error

	// GetByOrder returns errs.ObjectNotFoundError when none was issued.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*certificate.Certificate, error)
}
