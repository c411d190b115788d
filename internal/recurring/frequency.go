package recurring

import (
	"math"
	"sort"
	"time"

	"github.com/cadencefin/cadence/internal/model"
)

// regularFrequencies lists the frequencies with canonical intervals, in
// ascending interval order.
var regularFrequencies = []model.Frequency{
	model.FrequencyDaily,
	model.FrequencyWeekly,
	model.FrequencyBiweekly,
	model.FrequencyMonthly,
	model.FrequencyBimonthly,
	model.FrequencyQuarterly,
	model.FrequencyYearly,
}

// ClassifyRate maps an occurrences-per-month rate to a frequency using
// fixed bands. Exactly one frequency matches any non-negative rate;
// variable is the exhaustive fallback. Band edges shared between two bands
// resolve to the higher-rate band.
func ClassifyRate(perMonth float64) model.Frequency {
	switch {
	case perMonth >= 20:
		return model.FrequencyDaily
	case perMonth >= 3.5 && perMonth <= 5:
		return model.FrequencyWeekly
	case perMonth >= 1.8 && perMonth <= 2.5:
		return model.FrequencyBiweekly
	case perMonth >= 0.8 && perMonth <= 1.2:
		return model.FrequencyMonthly
	case perMonth >= 0.4 && perMonth <= 0.6:
		return model.FrequencyBimonthly
	case perMonth >= 0.25 && perMonth < 0.4:
		return model.FrequencyQuarterly
	case perMonth >= 0.08 && perMonth <= 0.15:
		return model.FrequencyYearly
	default:
		return model.FrequencyVariable
	}
}

// ClassifyIntervals infers a frequency from the mean gap between
// consecutive charge dates, choosing the canonical interval closest to it.
// Fewer than two dates give no gaps and classify as variable.
func ClassifyIntervals(dates []time.Time) model.Frequency {
	gaps := dayGaps(dates)
	if len(gaps) == 0 {
		return model.FrequencyVariable
	}

	var total float64
	for _, g := range gaps {
		total += g
	}
	meanGap := total / float64(len(gaps))

	best := model.FrequencyVariable
	bestDiff := math.Inf(1)
	for _, f := range regularFrequencies {
		diff := math.Abs(meanGap - float64(f.IntervalDays()))
		if diff < bestDiff {
			bestDiff = diff
			best = f
		}
	}
	return best
}

// dayGaps returns the gaps in days between consecutive dates, sorted
// ascending by date. Empty for fewer than two dates.
func dayGaps(dates []time.Time) []float64 {
	if len(dates) < 2 {
		return nil
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]).Hours()/24)
	}
	return gaps
}

// MonthsSpan counts the calendar months from first to last date inclusive,
// floored at 1 so rate calculations never divide by zero.
func MonthsSpan(first, last time.Time) int {
	span := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
	if span < 1 {
		return 1
	}
	return span
}
