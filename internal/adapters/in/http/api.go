package http

import (
	"reflect"
	"strings"
	"time"

	"commissions/internal/core/application/usecases/queries"
	"commissions/internal/core/domain/model/certificate"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/message"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"
	"commissions/internal/core/domain/services"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// QuoteRequest is the configuration a client wants priced. Enumerated
// fields are checked by the domain so unknown values get their typed error.
type QuoteRequest struct {
	ProductLine     string          `json:"productLine" validate:"required"`
	Tier            string          `json:"tier" validate:"required,max=32"`
	EstimatedUnits  decimal.Decimal `json:"estimatedUnits"`
	RightsLevel     string          `json:"rightsLevel"`
	BroadcastRights *bool           `json:"broadcastRights"`
	AddOns          []string        `json:"addOns" validate:"max=20,dive,required"`
	PromoCode       string          `json:"promoCode" validate:"max=64"`
}

type CreateOrderRequest struct {
	QuoteRequest
	ClientEmail string `json:"clientEmail" validate:"required,email"`
}

type ConfirmPaymentRequest struct {
	PaymentRef string `json:"paymentRef" validate:"required,max=255"`
}

type TransitionRequest struct {
	Event                 string     `json:"event" validate:"required"`
	Feedback              string     `json:"feedback" validate:"max=5000"`
	Ref                   string     `json:"ref" validate:"max=1024"`
	Notes                 string     `json:"notes" validate:"max=5000"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate"`
}

type PostMessageRequest struct {
	AuthorRole  string `json:"authorRole" validate:"required"`
	AuthorEmail string `json:"authorEmail" validate:"omitempty,email"`
	Body        string `json:"body"`
}

type IssueCertificateRequest struct {
	VoiceAffidavitRef string `json:"voiceAffidavitRef" validate:"max=1024"`
}

type CreateTalentRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Email        string   `json:"email" validate:"required,email"`
	ProductLines []string `json:"productLines" validate:"required,min=1,dive,required"`
	Capacity     int      `json:"capacity" validate:"gte=0"`
}

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type QuoteLine struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

type Quote struct {
	ProductLine     string      `json:"productLine"`
	Tier            string      `json:"tier"`
	EstimatedUnits  string      `json:"estimatedUnits"`
	UnitName        string      `json:"unitName"`
	RequestedRights string      `json:"requestedRights"`
	EffectiveRights string      `json:"effectiveRights"`
	Lines           []QuoteLine `json:"lines"`
	Subtotal        Money       `json:"subtotal"`
	PromoCode       string      `json:"promoCode,omitempty"`
	DiscountPercent string      `json:"discountPercent"`
	Discount        Money       `json:"discount"`
	Total           Money       `json:"total"`
	CatalogVersion  string      `json:"catalogVersion"`
}

type Version struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Ref       string     `json:"ref"`
	Notes     string     `json:"notes,omitempty"`
	Status    string     `json:"status"`
	Feedback  string     `json:"feedback,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
}

type File struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Ref        string    `json:"ref"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Order struct {
	ID                    string     `json:"id"`
	ProductLine           string     `json:"productLine"`
	Tier                  string     `json:"tier"`
	Status                string     `json:"status"`
	PaymentStatus         string     `json:"paymentStatus"`
	ClientEmail           string     `json:"clientEmail"`
	TalentID              string     `json:"talentId,omitempty"`
	EstimatedUnits        string     `json:"estimatedUnits"`
	AddOns                []string   `json:"addOns"`
	PromoCode             string     `json:"promoCode,omitempty"`
	DiscountPercent       string     `json:"discountPercent"`
	RequestedRights       string     `json:"requestedRights"`
	EffectiveRights       string     `json:"effectiveRights"`
	Price                 Money      `json:"price"`
	RevisionCount         int        `json:"revisionCount"`
	MaxRevisions          int        `json:"maxRevisions"`
	VersionCount          int        `json:"versionCount"`
	MaxVersions           int        `json:"maxVersions"`
	AvailableEvents       []string   `json:"availableEvents"`
	CreatedAt             time.Time  `json:"createdAt"`
	PaidAt                *time.Time `json:"paidAt,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate,omitempty"`
	DeliveredAt           *time.Time `json:"deliveredAt,omitempty"`
	AutoCompleteAt        *time.Time `json:"autoCompleteAt,omitempty"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	Versions              []Version  `json:"versions"`
	Files                 []File     `json:"files"`
}

type Message struct {
	ID          string    `json:"id"`
	AuthorRole  string    `json:"authorRole"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Certificate struct {
	ID             string             `json:"id"`
	OrderID        string             `json:"orderId"`
	LicenseID      string             `json:"licenseId"`
	ProductLine    string             `json:"productLine"`
	Tier           string             `json:"tier"`
	RightsLevel    string             `json:"rightsLevel"`
	CatalogVersion string             `json:"catalogVersion"`
	MappingVersion string             `json:"mappingVersion"`
	Rights         certificate.Rights `json:"rights"`
	Digest         string             `json:"digest"`
	IssuedAt       time.Time          `json:"issuedAt"`
}

type Talent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	ProductLines []string `json:"productLines"`
	Capacity     int      `json:"capacity"`
	ActiveOrders int      `json:"activeOrders"`
}

// requestValidator plugs go-playground/validator into echo, reporting
// fields by their JSON names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email")
		case "max":
			parts = append(parts, fe.Field()+" must be at most "+fe.Param())
		case "min", "gte":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

func toMoney(m kernel.Money) Money {
	return Money{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

func toQuote(q services.Quote) Quote {
	lines := make([]QuoteLine, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLine{Code: l.Code, Name: l.Name, Amount: toMoney(l.Amount)})
	}
	return Quote{
		ProductLine:     q.ProductLine.String(),
		Tier:            q.Tier.Code,
		EstimatedUnits:  q.Units.String(),
		UnitName:        q.UnitName,
		RequestedRights: q.RequestedRights.String(),
		EffectiveRights: q.EffectiveRights.String(),
		Lines:           lines,
		Subtotal:        toMoney(q.Subtotal),
		PromoCode:       q.PromoCode,
		DiscountPercent: q.DiscountPercent.String(),
		Discount:        toMoney(q.Discount),
		Total:           toMoney(q.Total),
		CatalogVersion:  q.CatalogVersion,
	}
}

func toOrder(o *order.Order) Order {
	events := o.AvailableEvents()
	available := make([]string, 0, len(events))
	for _, e := range events {
		if !e.IsSystemOnly() {
			available = append(available, e.String())
		}
	}

	versions := make([]Version, 0, len(o.Versions()))
	for _, v := range o.Versions() {
		versions = append(versions, Version{
			ID:        v.ID().String(),
			Number:    v.Number(),
			Ref:       v.Ref(),
			Notes:     v.Notes(),
			Status:    string(v.Status()),
			Feedback:  v.Feedback(),
			CreatedAt: v.CreatedAt(),
			DecidedAt: v.DecidedAt(),
		})
	}

	files := make([]File, 0, len(o.Files()))
	for _, f := range o.Files() {
		files = append(files, File{
			ID:         f.ID().String(),
			Kind:       string(f.Kind()),
			Ref:        f.Ref(),
			UploadedAt: f.UploadedAt(),
		})
	}

	res := Order{
		ID:                    o.ID().String(),
		ProductLine:           o.ProductLine().String(),
		Tier:                  o.Tier(),
		Status:                o.Status().String(),
		PaymentStatus:         string(o.PaymentStatus()),
		ClientEmail:           o.ClientEmail().String(),
		EstimatedUnits:        o.Units().String(),
		AddOns:                o.AddOns(),
		PromoCode:             o.PromoCode(),
		DiscountPercent:       o.DiscountPercent().String(),
		RequestedRights:       o.RequestedRights().String(),
		EffectiveRights:       o.EffectiveRights().String(),
		Price:                 toMoney(o.Price()),
		RevisionCount:         o.RevisionCount(),
		MaxRevisions:          o.MaxRevisions(),
		VersionCount:          o.VersionCount(),
		MaxVersions:           o.MaxVersions(),
		AvailableEvents:       available,
		CreatedAt:             o.CreatedAt(),
		PaidAt:                o.PaidAt(),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		DeliveredAt:           o.DeliveredAt(),
		AutoCompleteAt:        o.AutoCompleteAt(),
		CompletedAt:           o.CompletedAt(),
		Versions:              versions,
		Files:                 files,
	}
	if res.AddOns == nil {
		res.AddOns = []string{}
	}
	if id := o.Talent(); id != nil {
		res.TalentID = id.String()
	}
	return res
}

func toMessage(m *message.Message) Message {
	return Message{
		ID:          m.ID().String(),
		AuthorRole:  string(m.AuthorRole()),
		AuthorEmail: m.AuthorEmail(),
		Body:        m.Body(),
		CreatedAt:   m.CreatedAt(),
	}
}

func toCertificate(c *certificate.Certificate) Certificate {
	in := c.Inputs()
	return Certificate{
		ID:             c.ID().String(),
		OrderID:        c.OrderID().String(),
		LicenseID:      c.LicenseID(),
		ProductLine:    in.ProductLine.String(),
		Tier:           in.Tier,
		RightsLevel:    in.RightsLevel.String(),
		CatalogVersion: c.CatalogVersion(),
		MappingVersion: c.MappingVersion(),
		Rights:         c.Rights(),
		Digest:         c.Digest(),
		IssuedAt:       c.IssuedAt(),
	}
}

func fromCertificateQuery(r queries.GetCertificateQueryResponse) Certificate {
	return Certificate{
		ID:             r.ID.String(),
		OrderID:        r.OrderID.String(),
		LicenseID:      r.LicenseID,
		ProductLine:    r.Inputs.ProductLine.String(),
		Tier:           r.Inputs.Tier,
		RightsLevel:    r.Inputs.RightsLevel.String(),
		CatalogVersion: r.CatalogVersion,
		MappingVersion: r.MappingVersion,
		Rights:         r.Rights,
		Digest:         r.Digest,
		IssuedAt:       r.IssuedAt,
	}
}

func toTalent(t *talent.Talent) Talent {
	lines := make([]string, 0, len(t.ProductLines()))
	for _, pl := range t.ProductLines() {
		lines = append(lines, pl.String())
	}
	return Talent{
		ID:           t.ID().String(),
		Name:         t.Name(),
		Email:        t.Email().String(),
		ProductLines: lines,
		Capacity:     t.Capacity(),
		ActiveOrders: t.ActiveOrders(),
	}
}
