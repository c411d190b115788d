package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencefin/cadence/internal/common"
	"github.com/cadencefin/cadence/internal/model"
)

func expense(date, name string, amount float64) model.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{Date: d, Name: name, Amount: -amount}
}

func newTestDetector(t *testing.T, mutate func(*Options)) *Detector {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	d, err := NewDetector(opts)
	require.NoError(t, err)
	return d
}

func TestNewDetector_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"negative min occurrences", func(o *Options) { o.MinOccurrences = -1 }},
		{"zero min occurrences", func(o *Options) { o.MinOccurrences = 0 }},
		{"consistency above one", func(o *Options) { o.MinConsistency = 1.5 }},
		{"negative consistency", func(o *Options) { o.MinConsistency = -0.1 }},
		{"negative variable amount", func(o *Options) { o.MinVariableAmount = -5 }},
		{"zero months back", func(o *Options) { o.MonthsBack = 0 }},
		{"unknown aggregation unit", func(o *Options) { o.AggregateBy = "week" }},
		{"zero tolerance", func(o *Options) { o.TolerancePct = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := NewDetector(opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestDetect_CleanMonthlySubscription(t *testing.T) {
	d := newTestDetector(t, nil)

	// Six 49.90 charges at ~29-day intervals.
	var txns []model.Transaction
	start := mustDate("2024-01-05")
	for i := 0; i < 6; i++ {
		txns = append(txns, model.Transaction{
			Date:   start.AddDate(0, 0, 29*i),
			Name:   "NETFLIX.COM",
			Amount: -49.90,
		})
	}

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 1)
	p := result.Patterns[0]
	assert.Equal(t, "netflix com", p.Key)
	assert.Equal(t, "NETFLIX.COM", p.DisplayName)
	assert.Equal(t, model.FrequencyMonthly, p.Frequency)
	assert.True(t, p.AmountIsFixed)
	assert.GreaterOrEqual(t, p.Consistency, 0.9)
	assert.Equal(t, 6, p.Occurrences)
	assert.InDelta(t, 49.90, p.Amount, 1e-9)
	assert.InDelta(t, 6*49.90, p.TotalSpent, 1e-9)
	assert.Equal(t, 1, result.Meta.TotalCandidates)
}

func TestDetect_NoisySharedLabel(t *testing.T) {
	d := newTestDetector(t, nil)

	// Five ~30 charges on a biweekly cadence plus two unrelated 500s under
	// the same generic label.
	txns := []model.Transaction{
		expense("2024-01-01", "PAYMENT SERVICES", 30),
		expense("2024-01-15", "PAYMENT SERVICES", 29.50),
		expense("2024-01-29", "PAYMENT SERVICES", 30.50),
		expense("2024-02-12", "PAYMENT SERVICES", 30),
		expense("2024-02-26", "PAYMENT SERVICES", 30),
		expense("2024-01-20", "PAYMENT SERVICES", 500),
		expense("2024-02-20", "PAYMENT SERVICES", 500),
	}

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 1)
	p := result.Patterns[0]
	assert.Equal(t, model.FrequencyBiweekly, p.Frequency)
	assert.Equal(t, 5, p.Occurrences, "only the dominant cluster is analyzed")
	assert.InDelta(t, 30.0, p.Amount, 0.5)
	assert.Less(t, p.AmountCV, 0.05, "CV computed from the dominant cluster only")
	assert.InDelta(t, 150.0, p.TotalSpent, 1.0)
}

func TestDetect_InsufficientOccurrences(t *testing.T) {
	d := newTestDetector(t, nil)

	result := d.Detect([]model.Transaction{
		expense("2024-03-10", "ONE OFF STORE", 80),
	})

	assert.Empty(t, result.Patterns)
	assert.Equal(t, 1, result.Meta.TotalCandidates)
	assert.Equal(t, 1, result.Meta.ExcludedOccurrences)
	assert.Zero(t, result.Meta.ExcludedConsistency)
	assert.Zero(t, result.Meta.ExcludedAmount)
}

func TestDetect_VariableLowValueSuppressed(t *testing.T) {
	d := newTestDetector(t, nil)

	// Three small charges with no stable cadence: frequency variable,
	// mean 12, below the 50 floor.
	txns := []model.Transaction{
		expense("2024-01-01", "CORNER CAFE", 11),
		expense("2024-01-02", "CORNER CAFE", 12),
		expense("2024-02-25", "CORNER CAFE", 13),
	}

	result := d.Detect(txns)

	assert.Empty(t, result.Patterns)
	assert.Equal(t, 1, result.Meta.ExcludedAmount)
}

func TestDetect_Determinism(t *testing.T) {
	d := newTestDetector(t, nil)

	txns := []model.Transaction{
		expense("2024-01-01", "SPOTIFY", 9.99),
		expense("2024-02-01", "SPOTIFY", 9.99),
		expense("2024-03-01", "SPOTIFY", 9.99),
		expense("2024-01-05", "GYM CLUB", 120),
		expense("2024-02-05", "GYM CLUB", 120),
		expense("2024-03-05", "GYM CLUB", 150), // add-on month
		expense("2024-01-09", "RANDOM SHOP", 33),
	}

	first := d.Detect(txns)
	for i := 0; i < 10; i++ {
		again := d.Detect(txns)
		assert.Equal(t, first, again, "identical input must yield identical output")
	}
}

func TestDetect_RankedByTotalSpent(t *testing.T) {
	d := newTestDetector(t, nil)

	txns := []model.Transaction{
		expense("2024-01-01", "SPOTIFY", 9.99),
		expense("2024-02-01", "SPOTIFY", 9.99),
		expense("2024-01-05", "GYM CLUB", 120),
		expense("2024-02-05", "GYM CLUB", 120),
	}

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 2)
	assert.Equal(t, "gym club", result.Patterns[0].Key)
	assert.Equal(t, "spotify", result.Patterns[1].Key)
}

func TestDetect_SkipsEmptyKeysAndIncome(t *testing.T) {
	d := newTestDetector(t, nil)

	txns := []model.Transaction{
		// A digits-only label normalizes to the empty key; income rows are
		// skipped outright.
		expense("2024-01-01", "12345", 50),
		expense("2024-02-01", "", 50),
		{Date: mustDate("2024-01-15"), Name: "SALARY", Amount: 5000},
	}

	result := d.Detect(txns)

	assert.Empty(t, result.Patterns)
	assert.Zero(t, result.Meta.TotalCandidates)
}

func TestDetect_EmptyWindowMetaPopulated(t *testing.T) {
	d := newTestDetector(t, nil)

	result := d.Detect(nil)

	require.NotNil(t, result)
	assert.NotNil(t, result.Patterns)
	assert.Empty(t, result.Patterns)
	assert.Zero(t, result.Meta.TotalCandidates)
	assert.Zero(t, result.Meta.ExcludedOccurrences)
	assert.Zero(t, result.Meta.ExcludedConsistency)
	assert.Zero(t, result.Meta.ExcludedAmount)
}

func TestDetect_DayAggregationMergesSplitPostings(t *testing.T) {
	d := newTestDetector(t, nil)

	// The gym splits each monthly charge into two same-day postings.
	txns := []model.Transaction{
		expense("2024-01-05", "GYM CLUB", 60),
		expense("2024-01-05", "GYM CLUB", 60),
		expense("2024-02-05", "GYM CLUB", 60),
		expense("2024-02-05", "GYM CLUB", 60),
		expense("2024-03-05", "GYM CLUB", 60),
		expense("2024-03-05", "GYM CLUB", 60),
	}

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 1)
	p := result.Patterns[0]
	assert.Equal(t, 3, p.Occurrences)
	assert.InDelta(t, 120.0, p.Amount, 1e-9)
	assert.Equal(t, model.FrequencyMonthly, p.Frequency)
}

func TestDetect_CategoryAndNameVotes(t *testing.T) {
	d := newTestDetector(t, nil)

	groceries := "Groceries"
	household := "Household"
	txns := []model.Transaction{
		expense("2024-01-02", "SUPER MART 01", 40),
		expense("2024-02-02", "SUPER MART 01", 42),
		expense("2024-03-02", "SUPER-MART 02", 41),
	}
	txns[0].CategoryName = groceries
	txns[1].CategoryName = groceries
	txns[2].CategoryName = household

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 1)
	p := result.Patterns[0]
	assert.Equal(t, "super mart", p.Key)
	assert.Equal(t, "SUPER MART 01", p.DisplayName, "most frequent raw label")
	assert.Equal(t, groceries, p.Category, "category with the largest summed amount")
}

func TestDetect_HeterogeneousFallback(t *testing.T) {
	// Every amount lands in its own cluster, so no dominant cluster reaches
	// the floor; the key falls back to one heterogeneous group and survives
	// gating as a variable pattern.
	d := newTestDetector(t, nil)

	txns := []model.Transaction{
		expense("2024-01-03", "UTILITY CO", 80),
		expense("2024-01-06", "UTILITY CO", 150),
		expense("2024-04-11", "UTILITY CO", 260),
	}

	result := d.Detect(txns)

	require.Len(t, result.Patterns, 1)
	p := result.Patterns[0]
	assert.Equal(t, 3, p.Occurrences, "all charges analyzed as one group")
	assert.Equal(t, model.FrequencyVariable, p.Frequency)
	assert.False(t, p.AmountIsFixed)
}
