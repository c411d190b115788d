package recurring

import (
	"sort"
	"time"

	"github.com/cadencefin/cadence/internal/model"
)

// AggregationUnit selects the granularity at which transactions collapse
// into charges.
type AggregationUnit string

const (
	// AggregateByDay sums same-day transactions into one charge. This is
	// the default; it folds split authorizations and partial postings back
	// into a single billing event.
	AggregateByDay AggregationUnit = "day"
	// AggregateByTransaction keeps one charge per transaction row.
	AggregateByTransaction AggregationUnit = "transaction"
)

// Charge is one (date, amount) observation for a pattern key. Amounts are
// positive magnitudes; dates carry day resolution.
type Charge struct {
	Date   time.Time
	Amount float64
}

// BuildCharges derives the charge list for one key's transactions. Only
// expense (negative-amount) transactions participate; the charge amount is
// the absolute value. Output is sorted by date ascending.
func BuildCharges(txns []model.Transaction, unit AggregationUnit) []Charge {
	var charges []Charge

	if unit == AggregateByTransaction {
		for _, t := range txns {
			if !t.IsExpense() {
				continue
			}
			charges = append(charges, Charge{Date: dayOf(t.Date), Amount: -t.Amount})
		}
	} else {
		byDay := make(map[time.Time]float64)
		for _, t := range txns {
			if !t.IsExpense() {
				continue
			}
			byDay[dayOf(t.Date)] += -t.Amount
		}
		for day, total := range byDay {
			charges = append(charges, Charge{Date: day, Amount: total})
		}
	}

	sort.SliceStable(charges, func(i, j int) bool {
		return charges[i].Date.Before(charges[j].Date)
	})

	return charges
}

// dayOf truncates a timestamp to day resolution in UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
