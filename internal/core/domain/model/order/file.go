package order

import (
	"errors"
	"fmt"
	"time"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/pkg/errs"
)

// FileKind separates client-supplied reference material from final deliverables.
type FileKind string

const (
	FileReference FileKind = "reference"
	FileDelivery  FileKind = "delivery"
)

func (k FileKind) Validate() error {
	if k != FileReference && k != FileDelivery {
		return errs.NewValueIsInvalidErrorWithCause("file kind", fmt.Errorf("%q is not a valid file kind", string(k)))
	}
	return nil
}

// File is an artifact reference registered against an order. The bytes live
// in external storage; only the reference is tracked here.
type File struct {
	id         kernel.UUID
	kind       FileKind
	ref        string
	uploadedAt time.Time
}

func newFile(kind FileKind, ref string, at time.Time) File {
	return File{id: kernel.NewUUID(), kind: kind, ref: ref, uploadedAt: at}
}

// RestoreFile rebuilds a persisted file reference.
func RestoreFile(id kernel.UUID, kind FileKind, ref string, uploadedAt time.Time) (File, error) {
	if err := errors.Join(id.Validate(), kind.Validate(), requireRef(ref)); err != nil {
		return File{}, err
	}
	return File{id: id, kind: kind, ref: ref, uploadedAt: uploadedAt}, nil
}

func requireRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("ref")
	}
	return nil
}

func (f File) ID() kernel.UUID { return f.id }
func (f File) Kind() FileKind { return f.kind }
func (f File) Ref() string { return f.ref }
func (f File) UploadedAt() time.Time { return f.uploadedAt }
