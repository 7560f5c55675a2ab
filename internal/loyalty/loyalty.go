// Package loyalty derives the customer tier from cumulative spend. The tier
// is recomputed on every read; a stored tier label could go stale relative to
// totalSpent, so nothing here is ever persisted as authoritative state.
package loyalty

// Tier is a named loyalty rank.
type Tier string

const (
	Bronze   Tier = "Bronze"
	Silver   Tier = "Silver"
	Gold     Tier = "Gold"
	Platinum Tier = "Platinum"
	Diamond  Tier = "Diamond"
)

// Spend thresholds in whole naira. A customer holds the highest tier whose
// threshold they have reached.
const (
	SilverThreshold   int64 = 10_000
	GoldThreshold     int64 = 25_000
	PlatinumThreshold int64 = 50_000
	DiamondThreshold  int64 = 100_000
)

// Status is the derived tier plus progress toward the next one.
type Status struct {
	Tier     Tier    `json:"tier"`
	Progress float64 `json:"progress"` // percent, 0-100
	NextTier Tier    `json:"next_tier,omitempty"`
	ToGo     int64   `json:"to_go"` // naira left to the next tier, 0 for Diamond
}

// ComputeTier maps cumulative spend onto a tier and the progress toward the
// next threshold. Progress is totalSpent over the next threshold, so e.g.
// 24,000 spent reports Silver at 96%. Diamond has no next tier and is pinned
// at 100%.
func ComputeTier(totalSpent int64) Status {
	switch {
	case totalSpent >= DiamondThreshold:
		return Status{Tier: Diamond, Progress: 100}
	case totalSpent >= PlatinumThreshold:
		return status(Platinum, Diamond, totalSpent, DiamondThreshold)
	case totalSpent >= GoldThreshold:
		return status(Gold, Platinum, totalSpent, PlatinumThreshold)
	case totalSpent >= SilverThreshold:
		return status(Silver, Gold, totalSpent, GoldThreshold)
	default:
		return status(Bronze, Silver, totalSpent, SilverThreshold)
	}
}

func status(current, next Tier, spent, threshold int64) Status {
	return Status{
		Tier:     current,
		Progress: float64(spent) / float64(threshold) * 100,
		NextTier: next,
		ToGo:     threshold - spent,
	}
}
