package kernel

import (
	"fmt"
	"strings"

	"commissions/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// Email is a normalized (trimmed, lower-cased) address. Orders are owned by
// a client email.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if err := emailValidator.Var(normalized, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", value))
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) Validate() error {
	if e.value == "" {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}
