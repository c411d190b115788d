package model

// Frequency describes the detected billing cadence of a recurring pattern.
type Frequency string

const (
	// FrequencyDaily represents charges arriving roughly every day.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly represents charges arriving roughly every week.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyBiweekly represents charges arriving roughly every two weeks.
	FrequencyBiweekly Frequency = "biweekly"
	// FrequencyMonthly represents charges arriving roughly every month.
	FrequencyMonthly Frequency = "monthly"
	// FrequencyBimonthly represents charges arriving roughly every two months.
	FrequencyBimonthly Frequency = "bimonthly"
	// FrequencyQuarterly represents charges arriving roughly every quarter.
	FrequencyQuarterly Frequency = "quarterly"
	// FrequencyYearly represents charges arriving roughly once a year.
	FrequencyYearly Frequency = "yearly"
	// FrequencyVariable represents charges with no stable cadence.
	FrequencyVariable Frequency = "variable"
)

// canonicalIntervalDays maps each regular frequency to its reference
// interval in days. Variable has no reference interval.
var canonicalIntervalDays = map[Frequency]int{
	FrequencyDaily:     1,
	FrequencyWeekly:    7,
	FrequencyBiweekly:  14,
	FrequencyMonthly:   30,
	FrequencyBimonthly: 60,
	FrequencyQuarterly: 91,
	FrequencyYearly:    365,
}

// IntervalDays returns the canonical interval for the frequency in days,
// or 0 if the frequency has no reference interval (variable or unknown).
func (f Frequency) IntervalDays() int {
	return canonicalIntervalDays[f]
}

// IsRegular reports whether the frequency carries a canonical interval.
func (f Frequency) IsRegular() bool {
	return f.IntervalDays() > 0
}
