package kernel

import (
	"strings"

	"commissions/internal/pkg/errs"
)

// RightsLevel is the scope of usage rights granted with an order.
// Levels are totally ordered: standard < broadcast < global.
type RightsLevel string

const (
	RightsStandard  RightsLevel = "standard"
	RightsBroadcast RightsLevel = "broadcast"
	RightsGlobal    RightsLevel = "global"
)

var rightsRank = map[RightsLevel]int{
	RightsStandard:  1,
	RightsBroadcast: 2,
	RightsGlobal:    3,
}

// RightsLevels lists the levels in ascending scope.
func RightsLevels() []RightsLevel {
	return []RightsLevel{RightsStandard, RightsBroadcast, RightsGlobal}
}

func (r RightsLevel) String() string {
	return string(r)
}

func (r RightsLevel) Validate() error {
	if _, ok := rightsRank[r]; !ok {
		return errs.NewUnknownRightsLevelError(string(r))
	}
	return nil
}

// Includes reports whether r grants at least everything other grants.
func (r RightsLevel) Includes(other RightsLevel) bool {
	return rightsRank[r] >= rightsRank[other] && rightsRank[other] > 0
}

// ParseRightsLevel accepts case-insensitive input. An empty value is not
// defaulted here; defaulting belongs to the rights resolver.
func ParseRightsLevel(value string) (RightsLevel, error) {
	r := RightsLevel(strings.ToLower(strings.TrimSpace(value)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}
