package engine

import (
	"math"
	"sort"
)

// quantilePoints are the cut points of the intensity ramp: quartiles for the
// lower tiers and the 90th percentile for the top tier, so that only genuine
// spikes reach the strongest color.
var quantilePoints = [4]float64{0.25, 0.50, 0.75, 0.90}

// Thresholds holds four strictly increasing positive cut points partitioning
// non-zero daily counts into four tiers. Level 0 is reserved for count == 0.
type Thresholds [4]int

// defaultThresholds is the fallback for calendars with no activity at all.
func defaultThresholds() Thresholds {
	return Thresholds{1, 2, 3, 4}
}

// BuildThresholds derives the intensity cut points from the distribution of
// daily counts. Zeros are excluded: a mostly idle calendar would otherwise
// drag every threshold down to zero and flatten the ramp.
func BuildThresholds(counts []int) Thresholds {
	positive := make([]float64, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			positive = append(positive, float64(c))
		}
	}
	if len(positive) == 0 {
		return defaultThresholds()
	}
	sort.Float64s(positive)

	var t Thresholds
	for i, q := range quantilePoints {
		t[i] = int(math.Round(quantile(positive, q)))
	}

	// Enforce strict monotonic increase. Skewed distributions (many equal
	// counts) collapse adjacent quantiles onto the same value; each threshold
	// is bumped to at least one more than its predecessor.
	if t[0] < 1 {
		t[0] = 1
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			t[i] = t[i-1] + 1
		}
	}
	return t
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation between closest ranks (the R-7 rule: position (n-1)*q).
func quantile(sorted []float64, q float64) float64 {
	n := float64(len(sorted))
	index := q * (n - 1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// LevelFor classifies a daily count into an intensity level 0..4. It is total
// over the non-negative integers and non-decreasing in count. Upper bounds are
// strict so that the top observed count always lands in the top tier, even
// when the 75th and 90th percentiles saturate at the maximum.
func (t Thresholds) LevelFor(count int) int {
	switch {
	case count <= 0:
		return 0
	case count < t[0]:
		return 1
	case count < t[1]:
		return 2
	case count < t[2]:
		return 3
	default:
		return 4
	}
}
