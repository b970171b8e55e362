package drop

// Tier weighting: the i-th tier counted from the rarest gets 1 + TierWeightBase^(i+1)
const (
	TierWeightBase = 5

	// MaxTiers keeps the cumulative weight table inside int64
	MaxTiers = 16
)

// RareDraw is the single draw value that diverts to the rare pool
const RareDraw = 1

// StatTrakOdds is the 1-in-N chance of a StatTrak overlay on case drops
const StatTrakOdds = 10

// floatBucket maps a uniform draw in (0,1] onto a wear sub-range. The
// cutoffs reproduce the skewed real-world wear distribution.
type floatBucket struct {
	upper float64
	lo    float64
	hi    float64
}

// floatBuckets is ordered by ascending upper cutoff; the first bucket whose
// cutoff is at or above the draw wins
var floatBuckets = []floatBucket{
	{upper: 0.1471, lo: 0.00, hi: 0.07},
	{upper: 0.3939, lo: 0.07, hi: 0.15},
	{upper: 0.8257, lo: 0.15, hi: 0.38},
	{upper: 0.9007, lo: 0.38, hi: 0.45},
	{upper: 1.0000, lo: 0.45, hi: 1.00},
}
