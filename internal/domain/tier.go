package domain

import "strings"

// Tier is an outlet's priority classification, A highest and D lowest.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// DefaultTier is assigned to outlets whose tier is missing or unrecognised.
const DefaultTier = TierC

// ParseTier maps raw directory values onto the closed Tier set.
func ParseTier(s string) Tier {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierA, TierB, TierC, TierD:
		return t
	default:
		return DefaultTier
	}
}

// Normalize returns t when it is a known tier, DefaultTier otherwise.
func (t Tier) Normalize() Tier {
	return ParseTier(string(t))
}
