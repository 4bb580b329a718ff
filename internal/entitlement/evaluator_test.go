package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnd/internal/domain"
)

func TestCanAccess_MatchesRegistryTable(t *testing.T) {
	for _, tier := range allTiers {
		limits, err := LimitsFor(tier)
		require.NoError(t, err)

		for capability, want := range map[Capability]bool{
			CapabilityExport:          limits.CanExport,
			CapabilityAI:              limits.CanUseAI,
			CapabilityCustomDashboard: limits.CanCustomDashboard,
		} {
			got, err := CanAccess(tier, capability)
			require.NoError(t, err, "%s/%s", tier, capability)
			assert.Equal(t, want, got, "%s/%s", tier, capability)
		}
	}
}

func TestCanAccess_ExportScenarios(t *testing.T) {
	got, err := CanAccess(domain.TierFree, CapabilityExport)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = CanAccess(domain.TierTeam, CapabilityExport)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCanAccess_UnknownCapability(t *testing.T) {
	_, err := CanAccess(domain.TierTeam, Capability("teleport"))
	assert.ErrorIs(t, err, domain.ErrUnknownCapability)
}

func TestCanAccess_InvalidTier(t *testing.T) {
	_, err := CanAccess(domain.SubscriptionTier(""), CapabilityExport)
	assert.ErrorIs(t, err, domain.ErrInvalidTier)
}

func TestRemainingQuota_BoundaryAndClamp(t *testing.T) {
	// business tier caps custom fields at 10
	tests := []struct {
		name string
		used int
		want int
	}{
		{"one below cap", 9, 1},
		{"at cap", 10, 0},
		{"over cap clamps to zero", 14, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := domain.UsageCounters{CustomFields: tt.used}
			got, err := RemainingQuota(domain.TierBusiness, usage, QuotaCustomFields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemainingQuota_NeverNegative(t *testing.T) {
	for _, tier := range allTiers {
		for _, kind := range QuotaKinds {
			usage := domain.UsageCounters{
				LessonsThisPeriod: 1 << 20,
				ExportsThisPeriod: 1 << 20,
				CustomFields:      1 << 20,
				Templates:         1 << 20,
			}
			got, err := RemainingQuota(tier, usage, kind)
			require.NoError(t, err)
			if got != Unlimited {
				assert.GreaterOrEqual(t, got, 0, "%s/%s", tier, kind)
			}
		}
	}
}

func TestRemainingQuota_EnterpriseUnlimited(t *testing.T) {
	for _, used := range []int{0, 10, 1_000_000} {
		usage := domain.UsageCounters{CustomFields: used}
		got, err := RemainingQuota(domain.TierEnterprise, usage, QuotaCustomFields)
		require.NoError(t, err)
		assert.Equal(t, Unlimited, got, "used=%d", used)

		atLimit, err := IsAtLimit(domain.TierEnterprise, usage, QuotaCustomFields)
		require.NoError(t, err)
		assert.False(t, atLimit)
	}
}

func TestIsAtLimit_BusinessCustomFields(t *testing.T) {
	atLimit, err := IsAtLimit(domain.TierBusiness, domain.UsageCounters{CustomFields: 10}, QuotaCustomFields)
	require.NoError(t, err)
	assert.True(t, atLimit)

	atLimit, err = IsAtLimit(domain.TierBusiness, domain.UsageCounters{CustomFields: 9}, QuotaCustomFields)
	require.NoError(t, err)
	assert.False(t, atLimit)
}

func TestEvaluation_Idempotent(t *testing.T) {
	usage := domain.UsageCounters{LessonsThisPeriod: 7, CustomFields: 2}
	for i := 0; i < 3; i++ {
		got, err := CanAccess(domain.TierTeam, CapabilityExport)
		require.NoError(t, err)
		assert.True(t, got)

		remaining, err := RemainingQuota(domain.TierTeam, usage, QuotaLessons)
		require.NoError(t, err)
		assert.Equal(t, 243, remaining)
	}
	// The snapshot itself is untouched by evaluation.
	assert.Equal(t, domain.UsageCounters{LessonsThisPeriod: 7, CustomFields: 2}, usage)
}

func TestEvaluate_DecisionShape(t *testing.T) {
	usage := domain.UsageCounters{ExportsThisPeriod: 20}
	d, err := Evaluate(domain.TierTeam, usage)
	require.NoError(t, err)

	assert.Equal(t, domain.TierTeam, d.Tier)
	require.Len(t, d.Capabilities, 3)
	require.Len(t, d.Quotas, len(QuotaKinds))

	byCap := map[Capability]CapabilityDecision{}
	for _, cd := range d.Capabilities {
		byCap[cd.Capability] = cd
	}
	assert.True(t, byCap[CapabilityExport].Allowed)
	assert.False(t, byCap[CapabilityAI].Allowed)
	assert.Equal(t, RestrictionBlock, byCap[CapabilityAI].Restriction)
	assert.Equal(t, domain.TierBusiness, byCap[CapabilityAI].RequiredTier)

	for _, qd := range d.Quotas {
		if qd.Kind == QuotaExports {
			assert.True(t, qd.AtLimit)
			assert.Equal(t, 0, qd.Remaining)
		}
	}
}

func TestEvaluate_InvalidTier(t *testing.T) {
	_, err := Evaluate(domain.SubscriptionTier("vip"), domain.UsageCounters{})
	assert.ErrorIs(t, err, domain.ErrInvalidTier)
}

func TestEvaluate_ZeroUsageFailOpen(t *testing.T) {
	// A store failure hands the evaluator a zero snapshot; quotas read as untouched.
	d, err := Evaluate(domain.TierBusiness, domain.UsageCounters{})
	require.NoError(t, err)
	for _, qd := range d.Quotas {
		assert.Zero(t, qd.Used, qd.Kind)
		assert.False(t, qd.AtLimit, qd.Kind)
	}
}
