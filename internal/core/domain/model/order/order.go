package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")
)

// Terms are the commercial inputs an order is created with. They are frozen
// at creation: the price and limits never change afterwards.
type Terms struct {
	ID              kernel.UUID
	ProductLine     kernel.ProductLine
	Tier            string
	ClientEmail     kernel.Email
	Units           decimal.Decimal
	AddOns          []string
	PromoCode       string
	DiscountPercent decimal.Decimal
	RequestedRights kernel.RightsLevel
	EffectiveRights kernel.RightsLevel
	// TopTier records whether Tier was the line's top tier when the order
	// was priced; rights are resolved from it, not from the live catalog.
	TopTier         bool
	Price           kernel.Money
	MaxRevisions    int
	MaxVersions     int
	TurnaroundDays  int
	CreatedAt       time.Time
}

// Order is the aggregate root of a commissioned work. It owns the lifecycle
// of one product line, the versions delivered for review and the artifact
// references registered against it.
//
// Invariants:
//   - status only changes through an edge of the product line's Lifecycle
//   - revisionCount <= maxRevisions and versionCount <= maxVersions
//   - maxVersions > maxRevisions, so every revision has a slot for its redelivery
//   - counters never decrease
//   - autoCompleteAt is set only while status is Delivered
//   - a failed operation leaves the order untouched
type Order struct {
	id              kernel.UUID
	productLine     kernel.ProductLine
	tier            string
	clientEmail     kernel.Email
	talentID        *kernel.UUID
	units           decimal.Decimal
	addOns          []string
	promoCode       string
	discountPercent decimal.Decimal
	requestedRights kernel.RightsLevel
	effectiveRights kernel.RightsLevel
	topTier         bool
	price           kernel.Money

	status        Status
	paymentStatus PaymentStatus
	paymentRef    string

	revisionCount  int
	maxRevisions   int
	versionCount   int
	maxVersions    int
	turnaroundDays int

	createdAt             time.Time
	paidAt                *time.Time
	estimatedDeliveryDate *time.Time
	deliveredAt           *time.Time
	autoCompleteAt        *time.Time
	completedAt           *time.Time

	versions []Version
	files    []File

	// lockVersion and persistedStatus guard conditional writes.
	lockVersion     int
	persistedStatus Status

	isConstructed bool
}

// NewOrder creates an order awaiting payment.
func NewOrder(t Terms) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(t.ID),
		o.setProductLine(t.ProductLine),
		o.setTier(t.Tier),
		o.setClientEmail(t.ClientEmail),
		o.setUnits(t.Units),
		o.setDiscount(t.PromoCode, t.DiscountPercent),
		o.setRights(t.RequestedRights, t.EffectiveRights),
		o.setPrice(t.Price),
		o.setLimits(t.MaxRevisions, t.MaxVersions, t.TurnaroundDays),
		o.setCreatedAt(t.CreatedAt),
	); err != nil {
		return nil, err
	}

	o.addOns = slices.Clone(t.AddOns)
	o.topTier = t.TopTier
	o.persistedStatus = o.status
	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	Terms

	TalentID              *kernel.UUID
	Status                Status
	PaymentStatus         PaymentStatus
	PaymentRef            string
	RevisionCount         int
	VersionCount          int
	PaidAt                *time.Time
	EstimatedDeliveryDate *time.Time
	DeliveredAt           *time.Time
	AutoCompleteAt        *time.Time
	CompletedAt           *time.Time
	Versions              []Version
	Files                 []File
	LockVersion           int
}

// RestoreOrder rehydrates an order from storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	o, err := NewOrder(s.Terms)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		validateCounter("revision count", s.RevisionCount, o.maxRevisions),
		validateCounter("version count", s.VersionCount, o.maxVersions),
	); err != nil {
		return nil, err
	}
	if s.TalentID != nil {
		if err := s.TalentID.Validate(); err != nil {
			return nil, err
		}
		id := *s.TalentID
		o.talentID = &id
	}

	o.status = s.Status
	o.persistedStatus = s.Status
	o.paymentStatus = s.PaymentStatus
	o.paymentRef = s.PaymentRef
	o.revisionCount = s.RevisionCount
	o.versionCount = s.VersionCount
	o.paidAt = s.PaidAt
	o.estimatedDeliveryDate = s.EstimatedDeliveryDate
	o.deliveredAt = s.DeliveredAt
	o.autoCompleteAt = s.AutoCompleteAt
	o.completedAt = s.CompletedAt
	o.versions = slices.Clone(s.Versions)
	o.files = slices.Clone(s.Files)
	o.lockVersion = s.LockVersion
	return o, nil
}

func validateCounter(name string, value, maxValue int) error {
	if value < 0 || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, 0, maxValue)
	}
	return nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) ProductLine() kernel.ProductLine { return o.productLine }
func (o *Order) Tier() string { return o.tier }
func (o *Order) ClientEmail() kernel.Email { return o.clientEmail }
func (o *Order) Talent() *kernel.UUID { return o.talentID }
func (o *Order) Units() decimal.Decimal { return o.units }
func (o *Order) AddOns() []string { return slices.Clone(o.addOns) }
func (o *Order) PromoCode() string { return o.promoCode }
func (o *Order) DiscountPercent() decimal.Decimal { return o.discountPercent }
func (o *Order) RequestedRights() kernel.RightsLevel { return o.requestedRights }
func (o *Order) EffectiveRights() kernel.RightsLevel { return o.effectiveRights }
func (o *Order) TopTier() bool { return o.topTier }
func (o *Order) Price() kernel.Money { return o.price }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PaymentRef() string { return o.paymentRef }
func (o *Order) RevisionCount() int { return o.revisionCount }
func (o *Order) MaxRevisions() int { return o.maxRevisions }
func (o *Order) VersionCount() int { return o.versionCount }
func (o *Order) MaxVersions() int { return o.maxVersions }
func (o *Order) TurnaroundDays() int { return o.turnaroundDays }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) PaidAt() *time.Time { return o.paidAt }
func (o *Order) EstimatedDeliveryDate() *time.Time { return o.estimatedDeliveryDate }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) AutoCompleteAt() *time.Time { return o.autoCompleteAt }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) Versions() []Version { return slices.Clone(o.versions) }
func (o *Order) Files() []File { return slices.Clone(o.files) }

// LatestVersion returns the most recently delivered version.
func (o *Order) LatestVersion() (Version, bool) {
	if len(o.versions) == 0 {
		return Version{}, false
	}
	return o.versions[len(o.versions)-1], true
}

// FilesOf returns the registered files of one kind in upload order.
func (o *Order) FilesOf(kind FileKind) []File {
	var out []File
	for _, f := range o.files {
		if f.kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// RemainingRevisions is how many more revisions the client may request.
func (o *Order) RemainingRevisions() int {
	return o.maxRevisions - o.revisionCount
}

// AvailableEvents lists the events the current status accepts.
func (o *Order) AvailableEvents() []Event {
	lc, err := LifecycleFor(o.productLine)
	if err != nil {
		return nil
	}
	return lc.Events(o.status)
}

// LockVersion is the optimistic concurrency token read from storage.
func (o *Order) LockVersion() int { return o.lockVersion }

// PersistedStatus is the status the order had when it was read from storage.
func (o *Order) PersistedStatus() Status { return o.persistedStatus }

// MarkPersisted records a successful conditional write.
func (o *Order) MarkPersisted() {
	o.persistedStatus = o.status
	o.lockVersion++
}

// Apply runs event through the product line's transition table. On any
// error the order is left exactly as it was.
func (o *Order) Apply(event Event, payload Payload, env Env) error {
	if err := o.Validate(); err != nil {
		return err
	}
	lc, err := LifecycleFor(o.productLine)
	if err != nil {
		return err
	}

	next, ok := lc.Next(o.status, event)
	if !ok {
		return lc.reject(o.status, event, nil)
	}

	draft := o.clone()
	if err := draft.handle(lc, event, next, payload, env); err != nil {
		return err
	}
	draft.status = next
	*o = draft
	return nil
}

func (o *Order) handle(lc *Lifecycle, event Event, next Status, p Payload, env Env) error {
	now := env.Now
	switch event {
	case EventPay:
		if p.PaymentRef == "" {
			return errs.NewValueIsRequiredError("payment ref")
		}
		o.paymentStatus = PaymentPaid
		o.paymentRef = p.PaymentRef
		o.paidAt = &now

	case EventStartProduction:
		eta := now.AddDate(0, 0, o.turnaroundDays)
		if p.EstimatedDeliveryDate != nil {
			if p.EstimatedDeliveryDate.Before(now) {
				return errs.NewValueIsInvalidErrorWithCause("estimated delivery date",
					fmt.Errorf("%s is in the past", p.EstimatedDeliveryDate.Format(time.RFC3339)))
			}
			eta = *p.EstimatedDeliveryDate
		}
		o.estimatedDeliveryDate = &eta

	case EventDeliverVersion:
		if err := requireRef(p.Ref); err != nil {
			return err
		}
		if o.versionCount >= o.maxVersions {
			return errs.NewVersionLimitExceededError(o.versionCount, o.maxVersions)
		}
		o.versionCount++
		o.versions = append(o.versions, newVersion(o.versionCount, p.Ref, p.Notes, now))
		if next == Delivered {
			o.deliveredAt = &now
		}

	case EventOpenReview:

	case EventRequestRevision:
		if o.revisionCount >= o.maxRevisions {
			return errs.NewRevisionLimitExceededError(o.revisionCount, o.maxRevisions)
		}
		// A revision is only useful if a version slot remains for the redelivery.
		if o.versionCount >= o.maxVersions {
			return errs.NewVersionLimitExceededError(o.versionCount, o.maxVersions)
		}
		if p.Feedback == "" {
			return errs.NewValueIsRequiredError("feedback")
		}
		if err := o.decideLatest(lc, event, VersionRevisionRequested, p.Feedback, now); err != nil {
			return err
		}
		o.revisionCount++

	case EventApproveVersion:
		if err := o.decideLatest(lc, event, VersionApproved, "", now); err != nil {
			return err
		}

	case EventUploadReferenceFile:
		if err := requireRef(p.Ref); err != nil {
			return err
		}
		o.files = append(o.files, newFile(FileReference, p.Ref, now))

	case EventSubmitFiles:
		if len(o.FilesOf(FileReference)) == 0 {
			return lc.reject(o.status, event, errors.New("no reference files registered"))
		}

	case EventUploadDeliveryFile:
		if err := requireRef(p.Ref); err != nil {
			return err
		}
		o.files = append(o.files, newFile(FileDelivery, p.Ref, now))
		switch next {
		case Delivered:
			deadline := now.Add(env.autoCompleteAfter())
			o.deliveredAt = &now
			o.autoCompleteAt = &deadline
		case Completed:
			o.complete(now)
		}

	case EventAcceptDelivery:
		o.complete(now)

	case EventAutoComplete:
		if o.autoCompleteAt == nil || now.Before(*o.autoCompleteAt) {
			return lc.reject(o.status, event, o.reviewWindowOpen())
		}
		o.complete(now)

	default:
		return lc.reject(o.status, event, nil)
	}
	return nil
}

func (o *Order) reviewWindowOpen() error {
	if o.autoCompleteAt == nil {
		return errors.New("no review deadline set")
	}
	return fmt.Errorf("review window open until %s", o.autoCompleteAt.Format(time.RFC3339))
}

func (o *Order) decideLatest(lc *Lifecycle, event Event, status VersionStatus, feedback string, now time.Time) error {
	i := len(o.versions) - 1
	if i < 0 || o.versions[i].status != VersionDraft {
		return lc.reject(o.status, event, errors.New("latest version is not awaiting a decision"))
	}
	o.versions[i].status = status
	o.versions[i].feedback = feedback
	o.versions[i].decidedAt = &now
	return nil
}

func (o *Order) complete(now time.Time) {
	o.completedAt = &now
	o.autoCompleteAt = nil
}

func (o *Order) clone() Order {
	c := *o
	c.addOns = slices.Clone(o.addOns)
	c.versions = slices.Clone(o.versions)
	c.files = slices.Clone(o.files)
	return c
}

// CheckAutoComplete completes a delivered order whose review window elapsed.
// It reports whether the order changed; calling it again is a no-op.
func (o *Order) CheckAutoComplete(now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.status != Delivered || o.autoCompleteAt == nil || now.Before(*o.autoCompleteAt) {
		return false, nil
	}
	if err := o.Apply(EventAutoComplete, Payload{}, Env{Now: now}); err != nil {
		return false, err
	}
	return true, nil
}

// VerifyEffectiveRights rejects a payment or an issuance whose resolved
// rights disagree with the level the order was priced at.
func (o *Order) VerifyEffectiveRights(resolved kernel.RightsLevel) error {
	if resolved != o.effectiveRights {
		return errs.NewValueIsInvalidErrorWithCause("effective rights",
			fmt.Errorf("resolved %s but order was priced at %s", resolved, o.effectiveRights))
	}
	return nil
}

// EnsureMessagingOpen fails unless the product line allows messages in the current status.
func (o *Order) EnsureMessagingOpen() error {
	lc, err := LifecycleFor(o.productLine)
	if err != nil {
		return err
	}
	if !lc.AllowsMessaging(o.status) {
		return errs.NewInvalidTransitionError(o.productLine.String(), o.status.String(), "postMessage")
	}
	return nil
}

// EnsureCertificateIssuable fails unless the order reached a status that
// permits issuing its rights certificate.
func (o *Order) EnsureCertificateIssuable() error {
	lc, err := LifecycleFor(o.productLine)
	if err != nil {
		return err
	}
	if !lc.AllowsCertificate(o.status) {
		return errs.NewInvalidTransitionError(o.productLine.String(), o.status.String(), "issueCertificate")
	}
	return nil
}

// AssignTalent links a paid, unfinished order to the talent producing it.
func (o *Order) AssignTalent(talentID kernel.UUID) error {
	if err := talentID.Validate(); err != nil {
		return err
	}
	if o.paymentStatus != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s is not paid", o.id))
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s is completed", o.id))
	}
	if o.talentID != nil {
		return errs.NewValueIsInvalidErrorWithCause("talent", fmt.Errorf("order %s already has talent %s", o.id, o.talentID))
	}
	o.talentID = &talentID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductLine(pl kernel.ProductLine) error {
	if err := pl.Validate(); err != nil {
		return err
	}
	o.productLine = pl
	return nil
}

func (o *Order) setTier(tier string) error {
	if tier == "" {
		return errs.NewValueIsRequiredError("tier")
	}
	o.tier = tier
	return nil
}

func (o *Order) setClientEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	o.clientEmail = email
	return nil
}

func (o *Order) setUnits(units decimal.Decimal) error {
	if units.IsNegative() {
		return errs.NewValueIsOutOfRangeError("units", units, 0, "unbounded")
	}
	o.units = units
	return nil
}

func (o *Order) setDiscount(code string, percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError("discount percent", percent, 0, 100)
	}
	if code == "" && !percent.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("promo code", fmt.Errorf("discount of %s%% has no promo code", percent))
	}
	o.promoCode = code
	o.discountPercent = percent
	return nil
}

func (o *Order) setRights(requested, effective kernel.RightsLevel) error {
	if err := errors.Join(requested.Validate(), effective.Validate()); err != nil {
		return err
	}
	if !effective.Includes(requested) {
		return errs.NewValueIsInvalidErrorWithCause("effective rights",
			fmt.Errorf("%s does not cover requested %s", effective, requested))
	}
	o.requestedRights = requested
	o.effectiveRights = effective
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}

func (o *Order) setLimits(maxRevisions, maxVersions, turnaroundDays int) error {
	var errList []error
	if maxRevisions < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max revisions", maxRevisions, 0, "unbounded"))
	}
	if maxVersions < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max versions", maxVersions, 1, "unbounded"))
	}
	if maxVersions >= 1 && maxRevisions >= 0 && maxVersions < maxRevisions+1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max versions", maxVersions, maxRevisions+1, "unbounded"))
	}
	if turnaroundDays < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("turnaround days", turnaroundDays, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.maxRevisions = maxRevisions
	o.maxVersions = maxVersions
	o.turnaroundDays = turnaroundDays
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = at
	return nil
}
