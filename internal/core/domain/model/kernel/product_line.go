package kernel

import (
	"fmt"
	"strings"

	"commissions/internal/pkg/errs"
)

// ProductLine names one of the commissioned-work catalogs.
type ProductLine string

const (
	ProductLineVoice     ProductLine = "voice"
	ProductLineMusic     ProductLine = "music"
	ProductLineOrchestra ProductLine = "orchestra"
)

var validProductLines = []ProductLine{
	ProductLineVoice,
	ProductLineMusic,
	ProductLineOrchestra,
}

// ProductLines lists every supported product line in catalog order.
func ProductLines() []ProductLine {
	out := make([]ProductLine, len(validProductLines))
	copy(out, validProductLines)
	return out
}

func (p ProductLine) String() string {
	return string(p)
}

func (p ProductLine) Validate() error {
	for _, candidate := range validProductLines {
		if candidate == p {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("product line", fmt.Errorf("%q is not a valid product line", string(p)))
}

// ParseProductLine accepts case-insensitive input.
func ParseProductLine(value string) (ProductLine, error) {
	p := ProductLine(strings.ToLower(strings.TrimSpace(value)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}
