package domain

// Tier is one of four ordered severity buckets for a resolved duration,
// used by the presentation layer for row coloring.
type Tier int

const (
	TierUnknown Tier = iota // duration missing, rendered as a placeholder
	TierGreat               // under 20 min
	TierOK                  // 20–45 min inclusive
	TierTough               // over 45 up to 60 min
	TierNeedsWork           // over 60 min
)

func (t Tier) String() string {
	switch t {
	case TierGreat:
		return "great"
	case TierOK:
		return "ok"
	case TierTough:
		return "tough"
	case TierNeedsWork:
		return "needs_work"
	default:
		return "unknown"
	}
}

// Classify buckets a resolved duration. Boundaries: <20, [20,45], (45,60], >60.
func Classify(durationMin *int) Tier {
	if durationMin == nil {
		return TierUnknown
	}
	d := *durationMin
	switch {
	case d < 20:
		return TierGreat
	case d <= 45:
		return TierOK
	case d <= 60:
		return TierTough
	default:
		return TierNeedsWork
	}
}
