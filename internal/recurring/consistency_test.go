package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cadencefin/cadence/internal/model"
)

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name  string
		freq  model.Frequency
		dates []time.Time
		want  float64
	}{
		{
			name: "perfect monthly cadence",
			freq: model.FrequencyMonthly,
			dates: []time.Time{
				mustDate("2024-01-01"), mustDate("2024-01-31"),
				mustDate("2024-03-01"), mustDate("2024-03-31"),
			},
			want: 1,
		},
		{
			name: "perfect weekly cadence",
			freq: model.FrequencyWeekly,
			dates: []time.Time{
				mustDate("2024-01-01"), mustDate("2024-01-08"), mustDate("2024-01-15"),
			},
			want: 1,
		},
		{
			name:  "variable has flat score",
			freq:  model.FrequencyVariable,
			dates: []time.Time{mustDate("2024-01-01"), mustDate("2024-04-17")},
			want:  0.5,
		},
		{
			name:  "single date scores zero",
			freq:  model.FrequencyMonthly,
			dates: []time.Time{mustDate("2024-01-01")},
			want:  0,
		},
		{
			name:  "no dates scores zero",
			freq:  model.FrequencyMonthly,
			dates: nil,
			want:  0,
		},
		{
			name: "wildly irregular clamps at zero",
			freq: model.FrequencyDaily,
			dates: []time.Time{
				mustDate("2024-01-01"), mustDate("2024-06-01"),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConsistencyScore(tt.dates, tt.freq), 1e-9)
		})
	}
}

func TestConsistencyScore_Bounds(t *testing.T) {
	dateSets := [][]time.Time{
		nil,
		{mustDate("2024-01-01")},
		{mustDate("2024-01-01"), mustDate("2024-01-02")},
		{mustDate("2024-01-01"), mustDate("2024-02-15"), mustDate("2024-02-16")},
		{mustDate("2023-01-01"), mustDate("2023-07-01"), mustDate("2024-06-30")},
	}
	freqs := []model.Frequency{
		model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyBiweekly,
		model.FrequencyMonthly, model.FrequencyBimonthly, model.FrequencyQuarterly,
		model.FrequencyYearly, model.FrequencyVariable,
	}

	for _, dates := range dateSets {
		for _, freq := range freqs {
			score := ConsistencyScore(dates, freq)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestConsistencyScore_NearRegular(t *testing.T) {
	// 29/31-day gaps around the 30-day canonical interval stay close to 1.
	dates := []time.Time{
		mustDate("2024-01-01"), mustDate("2024-01-30"),
		mustDate("2024-03-01"), mustDate("2024-03-30"),
	}
	score := ConsistencyScore(dates, model.FrequencyMonthly)
	assert.Greater(t, score, 0.9)
	assert.Less(t, score, 1.0)
}
