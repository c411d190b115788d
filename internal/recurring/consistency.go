package recurring

import (
	"math"
	"time"

	"github.com/cadencefin/cadence/internal/model"
)

// variableConsistency is the flat score assigned when no reference interval
// exists to measure regularity against.
const variableConsistency = 0.5

// ConsistencyScore quantifies how regular the gaps between charge dates are
// relative to the frequency's canonical interval, as 1 minus the mean
// relative gap deviation, clamped to [0,1]. Variable frequency scores a
// flat 0.5; fewer than two dates score 0.
func ConsistencyScore(dates []time.Time, freq model.Frequency) float64 {
	interval := float64(freq.IntervalDays())
	if interval == 0 {
		return variableConsistency
	}

	gaps := dayGaps(dates)
	if len(gaps) == 0 {
		return 0
	}

	var totalDeviation float64
	for _, g := range gaps {
		totalDeviation += math.Abs(g-interval) / interval
	}
	meanDeviation := totalDeviation / float64(len(gaps))

	return math.Max(0, 1-meanDeviation)
}
