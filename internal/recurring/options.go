package recurring

import (
	"fmt"

	"github.com/cadencefin/cadence/internal/common"
)

// Options configures one detection pass. Use DefaultOptions as the starting
// point; a Detector validates its Options once at construction.
type Options struct {
	// AggregateBy selects charge granularity: by day (default) or by
	// transaction row.
	AggregateBy AggregationUnit
	// MonthsBack bounds the historical window when loading transactions
	// from storage.
	MonthsBack int
	// MinOccurrences is the minimum number of charges a key needs to be
	// considered recurring.
	MinOccurrences int
	// MinConsistency is the minimum interval-regularity score in [0,1].
	MinConsistency float64
	// MinVariableAmount suppresses low-value noise: variable-frequency
	// patterns below this mean amount are dropped.
	MinVariableAmount float64
	// TolerancePct is the relative amount-cluster tolerance.
	TolerancePct float64
	// MinTolerance is the absolute amount-cluster tolerance floor.
	MinTolerance float64
}

// DefaultOptions returns the standard detection configuration.
func DefaultOptions() Options {
	return Options{
		AggregateBy:       AggregateByDay,
		MonthsBack:        12,
		MinOccurrences:    2,
		MinConsistency:    0.3,
		MinVariableAmount: 50,
		TolerancePct:      DefaultTolerancePct,
		MinTolerance:      DefaultMinTolerance,
	}
}

// Validate checks the options, wrapping common.ErrInvalidConfig so callers
// fail fast instead of computing misleading statistics.
func (o Options) Validate() error {
	switch o.AggregateBy {
	case AggregateByDay, AggregateByTransaction:
	default:
		return fmt.Errorf("%w: aggregate_by must be %q or %q, got %q",
			common.ErrInvalidConfig, AggregateByDay, AggregateByTransaction, o.AggregateBy)
	}
	if o.MonthsBack < 1 {
		return fmt.Errorf("%w: months_back must be at least 1, got %d", common.ErrInvalidConfig, o.MonthsBack)
	}
	if o.MinOccurrences < 1 {
		return fmt.Errorf("%w: min_occurrences must be at least 1, got %d", common.ErrInvalidConfig, o.MinOccurrences)
	}
	if o.MinConsistency < 0 || o.MinConsistency > 1 {
		return fmt.Errorf("%w: min_consistency must be between 0 and 1, got %g", common.ErrInvalidConfig, o.MinConsistency)
	}
	if o.MinVariableAmount < 0 {
		return fmt.Errorf("%w: min_variable_amount must not be negative, got %g", common.ErrInvalidConfig, o.MinVariableAmount)
	}
	if o.TolerancePct <= 0 || o.TolerancePct >= 1 {
		return fmt.Errorf("%w: tolerance_pct must be between 0 and 1, got %g", common.ErrInvalidConfig, o.TolerancePct)
	}
	if o.MinTolerance < 0 {
		return fmt.Errorf("%w: min_tolerance must not be negative, got %g", common.ErrInvalidConfig, o.MinTolerance)
	}
	return nil
}
