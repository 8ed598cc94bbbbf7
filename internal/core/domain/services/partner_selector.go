package services

import (
	"errors"
	"sort"
	"time"

	"foodorder/internal/core/domain/model/partner"
)

// ErrNoPartnerEligible is returned when no available partner has satisfied
// the cooldown constraint at the instant of selection. Callers treat this as
// a retry signal, never as a user-visible failure.
var ErrNoPartnerEligible = errors.New("no eligible delivery partner")

// PartnerSelector is the domain service that picks delivery partners for
// pending orders under the fairness cooldown.
//
// Selection is deterministic and reproducible: among eligible partners the
// least busy one wins (smallest currentDeliveries); ties break toward the
// partner whose lastAssignedAt is unset or earliest; remaining ties break by
// identifier. Determinism matters because concurrent scheduler instances
// ranking the same registry must agree on the candidate order, so conflicts
// resolve by conditional writes rather than by luck.
type PartnerSelector struct{}

// NewPartnerSelector creates a PartnerSelector.
func NewPartnerSelector() PartnerSelector {
	return PartnerSelector{}
}

// RankEligible filters the given partners down to those eligible at now under
// the cooldown, ordered best-first. Returns ErrNoPartnerEligible when the
// eligible set is empty.
//
// The full ranking, not just the best candidate, is returned: the caller
// walks it with conditional writes, so losing a binding race on the first
// candidate falls through to the next instead of forcing a full retry cycle.
func (s PartnerSelector) RankEligible(
	partners []*partner.DeliveryPartner,
	now time.Time,
	cooldown time.Duration,
) ([]*partner.DeliveryPartner, error) {
	eligible := make([]*partner.DeliveryPartner, 0, len(partners))
	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.IsEligible(now, cooldown) {
			eligible = append(eligible, p)
		}
	}

	if len(eligible) == 0 {
		return nil, ErrNoPartnerEligible
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return less(eligible[i], eligible[j])
	})

	return eligible, nil
}

func less(a, b *partner.DeliveryPartner) bool {
	if a.CurrentDeliveries() != b.CurrentDeliveries() {
		return a.CurrentDeliveries() < b.CurrentDeliveries()
	}

	aLast, bLast := a.LastAssignedAt(), b.LastAssignedAt()
	switch {
	case aLast == nil && bLast != nil:
		return true
	case aLast != nil && bLast == nil:
		return false
	case aLast != nil && bLast != nil && !aLast.Equal(*bLast):
		return aLast.Before(*bLast)
	}

	return a.ID().String() < b.ID().String()
}
