package queries

import (
	"errors"
	"time"

	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/guard"
)

var (
	ErrGetCertificateQueryIsNotConstructed = errors.New(
		"GetCertificateQuery must be created via NewGetCertificateQuery constructor",
	)
)

// GetCertificateQuery reads the rights certificate issued for an order.
// Stored rights are returned as frozen at issuance, never re-derived from
// the current catalog.
type GetCertificateQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCertificateQuery(orderID kernel.UUID) (GetCertificateQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCertificateQuery{}, err
	}
	return GetCertificateQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCertificateQuery) Validate() error {
	return q.guard.Validate(ErrGetCertificateQueryIsNotConstructed)
}

func (q GetCertificateQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetCertificateQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	LicenseID      string
	Inputs         certificate.Inputs
	CatalogVersion string
	MappingVersion string
	Rights         certificate.Rights
	Digest         string
	IssuedAt       time.Time
}
