package entity

// Tier is the access level of a caller, read from the access token.
type Tier string

const (
	// TierFree is the default tier with the smallest proximity radius cap.
	TierFree Tier = "free"
	// TierElevated unlocks the larger proximity radius cap.
	TierElevated Tier = "elevated"
)

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierElevated:
		return true
	default:
		return false
	}
}

// ParseTier maps a claim value to a Tier, falling back to TierFree.
func ParseTier(s string) Tier {
	if t := Tier(s); t.IsValid() {
		return t
	}

	return TierFree
}
