package entitlement

import "learnd/internal/domain"

// Restriction tells a thin client how to present a denied feature.
type Restriction string

const (
	RestrictionBlur  Restriction = "blur"  // premium preview, content shown obscured
	RestrictionBlock Restriction = "block" // hard gate, nothing shown
	RestrictionLimit Restriction = "limit" // quota exhausted, show usage warning
)

// CapabilityDecision is the resolved outcome for one capability.
type CapabilityDecision struct {
	Capability   Capability              `json:"capability"`
	Allowed      bool                    `json:"allowed"`
	Restriction  Restriction             `json:"restriction,omitempty"`
	RequiredTier domain.SubscriptionTier `json:"required_tier,omitempty"`
}

// QuotaDecision is the resolved outcome for one countable resource.
type QuotaDecision struct {
	Kind      QuotaKind `json:"kind"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"` // -1 means unlimited
	Remaining int       `json:"remaining"`
	Unlimited bool      `json:"unlimited"`
	AtLimit   bool      `json:"at_limit"`
}

// Decision is the full entitlement set for a tier and usage snapshot, shaped
// so clients render gates without any business logic of their own.
type Decision struct {
	Tier         domain.SubscriptionTier `json:"tier"`
	Capabilities []CapabilityDecision    `json:"capabilities"`
	Quotas       []QuotaDecision         `json:"quotas"`
}

// restrictionFor maps a denied capability to its presentation variant. Export
// and dashboards preview well blurred; the AI endpoint has nothing to preview.
var restrictionFor = map[Capability]Restriction{
	CapabilityExport:          RestrictionBlur,
	CapabilityAI:              RestrictionBlock,
	CapabilityCustomDashboard: RestrictionBlur,
}

// minimumTierFor is the lowest tier granting each capability, derived from
// the registry so the upgrade prompt never drifts from the actual limits.
func minimumTierFor(capability Capability) domain.SubscriptionTier {
	for _, tier := range []domain.SubscriptionTier{
		domain.TierFree, domain.TierTeam, domain.TierBusiness, domain.TierEnterprise,
	} {
		if ok, err := CanAccess(tier, capability); err == nil && ok {
			return tier
		}
	}
	return domain.TierEnterprise
}

// Evaluate resolves the complete decision set. The usage snapshot may be the
// zero value when the store could not be read; gating then assumes zero
// consumption rather than failing the request.
func Evaluate(tier domain.SubscriptionTier, usage domain.UsageCounters) (Decision, error) {
	if _, err := LimitsFor(tier); err != nil {
		return Decision{}, err
	}

	d := Decision{Tier: tier}
	for _, capability := range []Capability{CapabilityExport, CapabilityAI, CapabilityCustomDashboard} {
		allowed, err := CanAccess(tier, capability)
		if err != nil {
			return Decision{}, err
		}
		cd := CapabilityDecision{Capability: capability, Allowed: allowed}
		if !allowed {
			cd.Restriction = restrictionFor[capability]
			cd.RequiredTier = minimumTierFor(capability)
		}
		d.Capabilities = append(d.Capabilities, cd)
	}

	for _, kind := range QuotaKinds {
		limit, err := QuotaLimit(tier, kind)
		if err != nil {
			return Decision{}, err
		}
		used, err := QuotaUsed(usage, kind)
		if err != nil {
			return Decision{}, err
		}
		remaining, err := RemainingQuota(tier, usage, kind)
		if err != nil {
			return Decision{}, err
		}
		d.Quotas = append(d.Quotas, QuotaDecision{
			Kind:      kind,
			Used:      used,
			Limit:     limit,
			Remaining: remaining,
			Unlimited: limit == Unlimited,
			AtLimit:   limit != Unlimited && remaining == 0,
		})
	}
	return d, nil
}
