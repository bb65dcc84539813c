// Package certificaterepo stores issued certificates. A unique index on
// order_id enforces one certificate per order.
package certificaterepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateDTO is one certificates row. Rights are stored as the exact
// JSON they were hashed from.
type CertificateDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LicenseID         string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ProductLine       string    `gorm:"type:varchar(16);not null"`
	Tier              string    `gorm:"type:varchar(32);not null"`
	RightsLevel       string    `gorm:"type:varchar(16);not null"`
	TopTier           bool      `gorm:"not null"`
	VoiceAffidavitRef string    `gorm:"type:varchar(1024)"`
	CatalogVersion    string    `gorm:"type:varchar(32);not null"`
	MappingVersion    string    `gorm:"type:varchar(32);not null"`
	Rights            string    `gorm:"type:text;not null"`
	Digest            string    `gorm:"type:varchar(80);not null"`
	IssuedAt          time.Time `gorm:"not null"`
}

func (CertificateDTO) TableName() string {
	return "certificates"
}

// GormCertificateRepository implements ports.CertificateRepository using GORM.
type GormCertificateRepository struct {
	db *gorm.DB
}

func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// Add inserts the certificate. A second certificate for the same order
// violates the unique index and is reported as errs.AlreadyIssuedError.
func (r *GormCertificateRepository) Add(ctx context.Context, c *certificate.Certificate) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(c)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyIssuedErrorWithCause(c.OrderID().String(), err)
	}
	return err
}

func (r *GormCertificateRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*certificate.Certificate, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto CertificateDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("certificate", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func fromDomain(c *certificate.Certificate) (CertificateDTO, error) {
	rights, err := json.Marshal(c.Rights())
	if err != nil {
		return CertificateDTO{}, err
	}

	in := c.Inputs()
	return CertificateDTO{
		ID:                c.ID().Bytes(),
		OrderID:           c.OrderID().Bytes(),
		LicenseID:         c.LicenseID(),
		ProductLine:       in.ProductLine.String(),
		Tier:              in.Tier,
		RightsLevel:       in.RightsLevel.String(),
		TopTier:           in.TopTier,
		VoiceAffidavitRef: in.VoiceAffidavitRef,
		CatalogVersion:    c.CatalogVersion(),
		MappingVersion:    c.MappingVersion(),
		Rights:            string(rights),
		Digest:            c.Digest(),
		IssuedAt:          c.IssuedAt(),
	}, nil
}

func toDomain(dto CertificateDTO) (*certificate.Certificate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	pl, err := kernel.ParseProductLine(dto.ProductLine)
	if err != nil {
		return nil, err
	}
	level, err := kernel.ParseRightsLevel(dto.RightsLevel)
	if err != nil {
		return nil, err
	}

	var rights certificate.Rights
	if err = json.Unmarshal([]byte(dto.Rights), &rights); err != nil {
		return nil, err
	}

	return certificate.RestoreCertificate(
		id,
		orderID,
		dto.LicenseID,
		certificate.Inputs{
			ProductLine:       pl,
			Tier:              dto.Tier,
			RightsLevel:       level,
			TopTier:           dto.TopTier,
			VoiceAffidavitRef: dto.VoiceAffidavitRef,
		},
		dto.CatalogVersion,
		dto.MappingVersion,
		rights,
		dto.Digest,
		dto.IssuedAt,
	)
}
