package entitlement

import (
	"fmt"

	"learnd/internal/domain"
)

// Capability names a boolean-gated feature.
type Capability string

const (
	CapabilityExport          Capability = "export"
	CapabilityAI              Capability = "ai"
	CapabilityCustomDashboard Capability = "customDashboard"
)

// QuotaKind names a countable resource limit.
type QuotaKind string

const (
	QuotaLessons      QuotaKind = "lessons"
	QuotaExports      QuotaKind = "exports"
	QuotaCustomFields QuotaKind = "customFields"
	QuotaTemplates    QuotaKind = "templates"
)

// QuotaKinds lists every countable resource, in presentation order.
var QuotaKinds = []QuotaKind{QuotaLessons, QuotaExports, QuotaCustomFields, QuotaTemplates}

// CanAccess reports whether the tier grants the capability. It is a pure
// function of its inputs: identical calls always return identical results and
// a denial never touches usage state. Unknown capabilities are programmer
// errors and return ErrUnknownCapability.
func CanAccess(tier domain.SubscriptionTier, capability Capability) (bool, error) {
	limits, err := LimitsFor(tier)
	if err != nil {
		return false, err
	}
	switch capability {
	case CapabilityExport:
		return limits.CanExport, nil
	case CapabilityAI:
		return limits.CanUseAI, nil
	case CapabilityCustomDashboard:
		return limits.CanCustomDashboard, nil
	}
	return false, fmt.Errorf("%w: %q", domain.ErrUnknownCapability, capability)
}

// RemainingQuota computes limit minus used for the kind, clamped at zero.
// It returns Unlimited when the tier has no bound. Missing usage data must be
// passed as a zero-value snapshot; absence counts as no consumption.
func RemainingQuota(tier domain.SubscriptionTier, usage domain.UsageCounters, kind QuotaKind) (int, error) {
	limits, err := LimitsFor(tier)
	if err != nil {
		return 0, err
	}
	limit, used, err := quotaPair(limits, usage, kind)
	if err != nil {
		return 0, err
	}
	if limit == Unlimited {
		return Unlimited, nil
	}
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// IsAtLimit reports whether the kind's quota is exhausted for the tier.
func IsAtLimit(tier domain.SubscriptionTier, usage domain.UsageCounters, kind QuotaKind) (bool, error) {
	remaining, err := RemainingQuota(tier, usage, kind)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

// QuotaLimit exposes the raw limit for the kind, Unlimited when unbounded.
func QuotaLimit(tier domain.SubscriptionTier, kind QuotaKind) (int, error) {
	limits, err := LimitsFor(tier)
	if err != nil {
		return 0, err
	}
	limit, _, err := quotaPair(limits, domain.UsageCounters{}, kind)
	return limit, err
}

// QuotaUsed extracts the counter that feeds the kind from a usage snapshot.
func QuotaUsed(usage domain.UsageCounters, kind QuotaKind) (int, error) {
	_, used, err := quotaPair(TierLimits{}, usage, kind)
	return used, err
}

func quotaPair(limits TierLimits, usage domain.UsageCounters, kind QuotaKind) (limit, used int, err error) {
	switch kind {
	case QuotaLessons:
		return limits.MaxLessonsPerMonth, usage.LessonsThisPeriod, nil
	case QuotaExports:
		return limits.MaxExportsPerMonth, usage.ExportsThisPeriod, nil
	case QuotaCustomFields:
		return limits.MaxCustomFields, usage.CustomFields, nil
	case QuotaTemplates:
		return limits.MaxTemplates, usage.Templates, nil
	}
	return 0, 0, fmt.Errorf("%w: quota kind %q", domain.ErrUnknownCapability, kind)
}
