package services

import (
	"errors"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"
)

// ErrTalentNotFound is returned when no talent serves the order's product
// line with a free slot.
var ErrTalentNotFound = errors.New("talent not found")

// TalentAssigner picks the producer for a paid order: among talents serving
// the order's product line with free capacity, the one with the lowest load
// wins; ties go to the first in the given order.
type TalentAssigner struct{}

func NewTalentAssigner() TalentAssigner {
	return TalentAssigner{}
}

// Assign links the order to the chosen talent and occupies one of their slots.
func (a TalentAssigner) Assign(o *order.Order, talents []*talent.Talent) (*talent.Talent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := a.findBestTalent(o, talents)
	if err != nil {
		return nil, err
	}

	if err := best.TakeOrder(o); err != nil {
		return nil, err
	}
	if err := o.AssignTalent(best.ID()); err != nil {
		_ = best.ReleaseOrder()
		return nil, err
	}

	return best, nil
}

func (a TalentAssigner) findBestTalent(o *order.Order, talents []*talent.Talent) (*talent.Talent, error) {
	var best *talent.Talent

	for _, t := range talents {
		if err := t.Validate(); err != nil {
			return nil, err
		}

		free, err := t.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}

		if best == nil || t.Load() < best.Load() {
			best = t
		}
	}

	if best == nil {
		return nil, ErrTalentNotFound
	}
	return best, nil
}
