package domain

import "time"

// SubscriptionTier enumerates billing tiers, ordered free < team < business < enterprise.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierTeam       SubscriptionTier = "team"
	TierBusiness   SubscriptionTier = "business"
	TierEnterprise SubscriptionTier = "enterprise"
)

// Valid reports whether t is one of the four known tiers.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierTeam, TierBusiness, TierEnterprise:
		return true
	}
	return false
}

// User represents an authenticated account within the platform.
type User struct {
	ID        string
	GoogleSub string
	Email     string
	Name      string
	Picture   string
	Tier      SubscriptionTier
	CreatedAt time.Time
	UpdatedAt time.Time
}
