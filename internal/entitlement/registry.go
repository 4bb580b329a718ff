// Package entitlement resolves what a subscription tier allows: capability
// checks, quota arithmetic, and the tier ordering used for "at least tier X"
// gates. Everything here is a pure lookup over the static registry; no I/O,
// safe for concurrent use.
package entitlement

import (
	"fmt"

	"learnd/internal/domain"
)

// Unlimited marks a quota with no upper bound.
const Unlimited = -1

// TierLimits is the static limit set for one subscription tier.
type TierLimits struct {
	CanExport          bool
	CanUseAI           bool
	CanCustomDashboard bool
	DataRetentionDays  int
	MaxCustomFields    int
	MaxTemplates       int
	MaxLessonsPerMonth int
	MaxExportsPerMonth int
}

// limitsByTier is the single source of truth for plan limits. Call sites must
// go through LimitsFor so unknown tiers surface as ErrInvalidTier instead of
// a zero value.
var limitsByTier = map[domain.SubscriptionTier]TierLimits{
	domain.TierFree: {
		CanExport:          false,
		CanUseAI:           false,
		CanCustomDashboard: false,
		DataRetentionDays:  90,
		MaxCustomFields:    3,
		MaxTemplates:       1,
		MaxLessonsPerMonth: 25,
		MaxExportsPerMonth: 0,
	},
	domain.TierTeam: {
		CanExport:          true,
		CanUseAI:           false,
		CanCustomDashboard: false,
		DataRetentionDays:  365,
		MaxCustomFields:    5,
		MaxTemplates:       3,
		MaxLessonsPerMonth: 250,
		MaxExportsPerMonth: 20,
	},
	domain.TierBusiness: {
		CanExport:          true,
		CanUseAI:           true,
		CanCustomDashboard: true,
		DataRetentionDays:  730,
		MaxCustomFields:    10,
		MaxTemplates:       10,
		MaxLessonsPerMonth: 1000,
		MaxExportsPerMonth: 100,
	},
	domain.TierEnterprise: {
		CanExport:          true,
		CanUseAI:           true,
		CanCustomDashboard: true,
		DataRetentionDays:  Unlimited,
		MaxCustomFields:    Unlimited,
		MaxTemplates:       Unlimited,
		MaxLessonsPerMonth: Unlimited,
		MaxExportsPerMonth: Unlimited,
	},
}

var tierRank = map[domain.SubscriptionTier]int{
	domain.TierFree:       0,
	domain.TierTeam:       1,
	domain.TierBusiness:   2,
	domain.TierEnterprise: 3,
}

// LimitsFor returns the limit set for a tier. An unrecognized tier indicates
// a corrupted profile record upstream and returns ErrInvalidTier.
func LimitsFor(tier domain.SubscriptionTier) (TierLimits, error) {
	limits, ok := limitsByTier[tier]
	if !ok {
		return TierLimits{}, fmt.Errorf("%w: %q", domain.ErrInvalidTier, tier)
	}
	return limits, nil
}

// AtLeast reports whether userTier ranks at or above requiredTier. Unknown
// tiers rank below free so a corrupted record never unlocks anything.
func AtLeast(userTier, requiredTier domain.SubscriptionTier) bool {
	ur, ok := tierRank[userTier]
	if !ok {
		return false
	}
	rr, ok := tierRank[requiredTier]
	if !ok {
		return false
	}
	return ur >= rr
}
