// Package orderrepo persists order aggregates together with their versions
// and file references.
package orderrepo

import (
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is stored by name so rows stay
// readable and reordering the enum never rewrites data.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductLine     string          `gorm:"type:varchar(16);not null"`
	Tier            string          `gorm:"type:varchar(32);not null"`
	ClientEmail     string          `gorm:"type:varchar(255);not null"`
	TalentID        *uuid.UUID      `gorm:"type:uuid;index"`
	Units           decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	AddOns          []string        `gorm:"type:text;serializer:json"`
	PromoCode       string          `gorm:"type:varchar(64)"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	RequestedRights string          `gorm:"type:varchar(16);not null"`
	EffectiveRights string          `gorm:"type:varchar(16);not null"`
	TopTier         bool            `gorm:"not null;default:false"`
	PriceAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PriceCurrency   string          `gorm:"type:varchar(3);not null"`

	Status        string `gorm:"type:varchar(32);not null;index"`
	PaymentStatus string `gorm:"type:varchar(16);not null"`
	PaymentRef    string `gorm:"type:varchar(255)"`

	RevisionCount  int `gorm:"not null"`
	MaxRevisions   int `gorm:"not null"`
	VersionCount   int `gorm:"not null"`
	MaxVersions    int `gorm:"not null"`
	TurnaroundDays int `gorm:"not null"`

	CreatedAt             time.Time `gorm:"not null;index"`
	PaidAt                *time.Time
	EstimatedDeliveryDate *time.Time
	DeliveredAt           *time.Time
	AutoCompleteAt        *time.Time `gorm:"index"`
	CompletedAt           *time.Time

	LockVersion int `gorm:"not null;default:0"`

	Versions []VersionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Files    []FileDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// VersionDTO is one delivered version of an order.
type VersionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Number    int       `gorm:"not null"`
	Ref       string    `gorm:"type:varchar(1024);not null"`
	Notes     string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(32);not null"`
	Feedback  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	DecidedAt *time.Time
}

func (VersionDTO) TableName() string {
	return "order_versions"
}

// FileDTO is an artifact reference registered against an order.
type FileDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind       string    `gorm:"type:varchar(16);not null"`
	Ref        string    `gorm:"type:varchar(1024);not null"`
	UploadedAt time.Time `gorm:"not null"`
}

func (FileDTO) TableName() string {
	return "order_files"
}

func fromDomain(o *order.Order) OrderDTO {
	var talentID *uuid.UUID
	if id := o.Talent(); id != nil {
		raw := id.Bytes()
		talentID = &raw
	}

	orderID := o.ID().Bytes()
	dto := OrderDTO{
		ID:                    orderID,
		ProductLine:           o.ProductLine().String(),
		Tier:                  o.Tier(),
		ClientEmail:           o.ClientEmail().String(),
		TalentID:              talentID,
		Units:                 o.Units(),
		AddOns:                o.AddOns(),
		PromoCode:             o.PromoCode(),
		DiscountPercent:       o.DiscountPercent(),
		RequestedRights:       o.RequestedRights().String(),
		EffectiveRights:       o.EffectiveRights().String(),
		TopTier:               o.TopTier(),
		PriceAmount:           o.Price().Amount(),
		PriceCurrency:         o.Price().Currency(),
		Status:                o.Status().String(),
		PaymentStatus:         string(o.PaymentStatus()),
		PaymentRef:            o.PaymentRef(),
		RevisionCount:         o.RevisionCount(),
		MaxRevisions:          o.MaxRevisions(),
		VersionCount:          o.VersionCount(),
		MaxVersions:           o.MaxVersions(),
		TurnaroundDays:        o.TurnaroundDays(),
		CreatedAt:             o.CreatedAt(),
		PaidAt:                o.PaidAt(),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		DeliveredAt:           o.DeliveredAt(),
		AutoCompleteAt:        o.AutoCompleteAt(),
		CompletedAt:           o.CompletedAt(),
		LockVersion:           o.LockVersion(),
	}

	for _, v := range o.Versions() {
		dto.Versions = append(dto.Versions, VersionDTO{
			ID:        v.ID().Bytes(),
			OrderID:   orderID,
			Number:    v.Number(),
			Ref:       v.Ref(),
			Notes:     v.Notes(),
			Status:    string(v.Status()),
			Feedback:  v.Feedback(),
			CreatedAt: v.CreatedAt(),
			DecidedAt: v.DecidedAt(),
		})
	}
	for _, f := range o.Files() {
		dto.Files = append(dto.Files, FileDTO{
			ID:         f.ID().Bytes(),
			OrderID:    orderID,
			Kind:       string(f.Kind()),
			Ref:        f.Ref(),
			UploadedAt: f.UploadedAt(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var talentID *kernel.UUID
	if dto.TalentID != nil {
		tID, talentErr := kernel.UUIDFromBytes((*dto.TalentID)[:])
		if talentErr != nil {
			return nil, talentErr
		}
		talentID = &tID
	}

	pl, err := kernel.ParseProductLine(dto.ProductLine)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.ClientEmail)
	if err != nil {
		return nil, err
	}
	requested, err := kernel.ParseRightsLevel(dto.RequestedRights)
	if err != nil {
		return nil, err
	}
	effective, err := kernel.ParseRightsLevel(dto.EffectiveRights)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	versions := make([]order.Version, 0, len(dto.Versions))
	for _, v := range dto.Versions {
		vID, idErr := kernel.UUIDFromBytes(v.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		version, vErr := order.RestoreVersion(vID, v.Number, v.Ref, v.Notes,
			order.VersionStatus(v.Status), v.Feedback, v.CreatedAt, v.DecidedAt)
		if vErr != nil {
			return nil, vErr
		}
		versions = append(versions, version)
	}

	files := make([]order.File, 0, len(dto.Files))
	for _, f := range dto.Files {
		fID, idErr := kernel.UUIDFromBytes(f.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		file, fErr := order.RestoreFile(fID, order.FileKind(f.Kind), f.Ref, f.UploadedAt)
		if fErr != nil {
			return nil, fErr
		}
		files = append(files, file)
	}

	return order.RestoreOrder(order.Snapshot{
		Terms: order.Terms{
			ID:              id,
			ProductLine:     pl,
			Tier:            dto.Tier,
			ClientEmail:     email,
			Units:           dto.Units,
			AddOns:          dto.AddOns,
			PromoCode:       dto.PromoCode,
			DiscountPercent: dto.DiscountPercent,
			RequestedRights: requested,
			EffectiveRights: effective,
			TopTier:         dto.TopTier,
			Price:           price,
			MaxRevisions:    dto.MaxRevisions,
			MaxVersions:     dto.MaxVersions,
			TurnaroundDays:  dto.TurnaroundDays,
			CreatedAt:       dto.CreatedAt,
		},
		TalentID:              talentID,
		Status:                status,
		PaymentStatus:         order.PaymentStatus(dto.PaymentStatus),
		PaymentRef:            dto.PaymentRef,
		RevisionCount:         dto.RevisionCount,
		VersionCount:          dto.VersionCount,
		PaidAt:                dto.PaidAt,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		DeliveredAt:           dto.DeliveredAt,
		AutoCompleteAt:        dto.AutoCompleteAt,
		CompletedAt:           dto.CompletedAt,
		Versions:              versions,
		Files:                 files,
		LockVersion:           dto.LockVersion,
	})
}
