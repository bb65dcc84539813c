package order

import (
	"errors"
	"fmt"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
)

// VersionStatus tracks the client's decision on a delivered version.
type VersionStatus string

const (
	VersionDraft             VersionStatus = "draft"
	VersionApproved          VersionStatus = "approved"
	VersionRevisionRequested VersionStatus = "revision_requested"
)

func (s VersionStatus) Validate() error {
	switch s {
	case VersionDraft, VersionApproved, VersionRevisionRequested:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("version status", fmt.Errorf("%q is not a valid version status", string(s)))
	}
}

// Version is one deliverable iteration produced for an order. Versions are
// numbered from 1 in delivery order and only the latest one can be decided on.
type Version struct {
	id        kernel.UUID
	number    int
	ref       string
	notes     string
	status    VersionStatus
	feedback  string
	createdAt time.Time
	decidedAt *time.Time
}

func newVersion(number int, ref, notes string, at time.Time) Version {
	return Version{
		id:        kernel.NewUUID(),
		number:    number,
		ref:       ref,
		notes:     notes,
		status:    VersionDraft,
		createdAt: at,
	}
}

// RestoreVersion rebuilds a persisted version.
func RestoreVersion(
	id kernel.UUID,
	number int,
	ref, notes string,
	status VersionStatus,
	feedback string,
	createdAt time.Time,
	decidedAt *time.Time,
) (Version, error) {
	if err := errors.Join(id.Validate(), status.Validate(), validateVersionNumber(number)); err != nil {
		return Version{}, err
	}
	return Version{
		id:        id,
		number:    number,
		ref:       ref,
		notes:     notes,
		status:    status,
		feedback:  feedback,
		createdAt: createdAt,
		decidedAt: decidedAt,
	}, nil
}

func validateVersionNumber(n int) error {
	if n < 1 {
		return errs.NewValueIsOutOfRangeError("version number", n, 1, "unbounded")
	}
	return nil
}

func (v Version) ID() kernel.UUID { return v.id }
func (v Version) Number() int { return v.number }
func (v Version) Ref() string { return v.ref }
func (v Version) Notes() string { return v.notes }
func (v Version) Status() VersionStatus { return v.status }
func (v Version) Feedback() string { return v.feedback }
func (v Version) CreatedAt() time.Time { return v.createdAt }
func (v Version) DecidedAt() *time.Time { return v.decidedAt }
