package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCertificateQueryHandler struct {
	db *gorm.DB
}

func NewGetCertificateQueryHandler(db *gorm.DB) GetCertificateQueryHandler {
	return GetCertificateQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no certificate was issued.
func (h GetCertificateQueryHandler) Handle(
	ctx context.Context,
	query GetCertificateQuery,
) (GetCertificateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCertificateQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			license_id,
			product_line,
			tier,
			rights_level,
			top_tier,
			voice_affidavit_ref,
			catalog_version,
			mapping_version,
			rights,
			digest,
			issued_at
		FROM certificates
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		res         GetCertificateQueryResponse
		id          uuid.UUID
		productLine string
		level       string
		affidavit   sql.NullString
		rights      string
	)
	err := row.Scan(
		&id,
		&res.LicenseID,
		&productLine,
		&res.Inputs.Tier,
		&level,
		&res.Inputs.TopTier,
		&affidavit,
		&res.CatalogVersion,
		&res.MappingVersion,
		&rights,
		&res.Digest,
		&res.IssuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCertificateQueryResponse{}, errs.NewObjectNotFoundError("certificate", query.OrderID().String())
	}
	if err != nil {
		return GetCertificateQueryResponse{}, err
	}

	if res.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCertificateQueryResponse{}, err
	}
	res.OrderID = query.OrderID()

	if res.Inputs.ProductLine, err = kernel.ParseProductLine(productLine); err != nil {
		return GetCertificateQueryResponse{}, err
	}
	if res.Inputs.RightsLevel, err = kernel.ParseRightsLevel(level); err != nil {
		return GetCertificateQueryResponse{}, err
	}
	res.Inputs.VoiceAffidavitRef = affidavit.String

	if err = json.Unmarshal([]byte(rights), &res.Rights); err != nil {
		return GetCertificateQueryResponse{}, err
	}

	return res, nil
}
