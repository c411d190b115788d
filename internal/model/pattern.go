package model

import "time"

// RecurringPattern is one detected recurring commitment for a normalized
// merchant key, recomputed fresh on every detection run.
type RecurringPattern struct {
	FirstCharge         time.Time `json:"first_charge_date"`
	LastCharge          time.Time `json:"last_charge_date"`
	Key                 string    `json:"pattern_key"`  // Normalized grouping key
	DisplayName         string    `json:"display_name"` // Most frequent raw label for the key
	Category            string    `json:"category"`     // Best-voted category, if any
	Frequency           Frequency `json:"detected_frequency"`
	Amount              float64   `json:"detected_amount"` // Dominant cluster mean
	TotalSpent          float64   `json:"total_spent"`
	Consistency         float64   `json:"consistency_score"` // Interval regularity in [0,1]
	OccurrencesPerMonth float64   `json:"occurrences_per_month"`
	AmountStdDev        float64   `json:"amount_stddev"`
	AmountCV            float64   `json:"amount_coefficient_of_variation"`
	Occurrences         int       `json:"occurrence_count"`
	MonthsSpan          int       `json:"months_span"`
	AmountIsFixed       bool      `json:"amount_is_fixed"`
}

// NextExpectedDate returns a naive estimate of the next charge date:
// the last observed charge plus the canonical interval. Returns the zero
// time for variable frequency, where no interval exists.
func (p *RecurringPattern) NextExpectedDate() time.Time {
	days := p.Frequency.IntervalDays()
	if days == 0 || p.LastCharge.IsZero() {
		return time.Time{}
	}
	return p.LastCharge.AddDate(0, 0, days)
}

// DetectionMeta counts candidate keys and the reason each rejected key was
// dropped. It is part of the detection contract: consumers surface these
// counts to explain why a charge was not recognized as recurring.
type DetectionMeta struct {
	TotalCandidates     int `json:"total_candidates"`
	ExcludedOccurrences int `json:"excluded_occurrences"`
	ExcludedConsistency int `json:"excluded_consistency"`
	ExcludedAmount      int `json:"excluded_amount"`
}

// DetectionResult is the full output of one detection pass.
type DetectionResult struct {
	Patterns []RecurringPattern `json:"patterns"`
	Meta     DetectionMeta      `json:"meta"`
}
