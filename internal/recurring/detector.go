package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cadencefin/cadence/internal/model"
	"github.com/cadencefin/cadence/internal/service"
)

// fixedAmountCV is the coefficient-of-variation ceiling below which a
// pattern's amount counts as fixed.
const fixedAmountCV = 0.15

// Detector runs recurring-pattern detection passes. It holds no mutable
// state, so a single Detector is safe for concurrent use across windows.
type Detector struct {
	opts Options
}

// NewDetector validates the options once and returns a ready detector.
func NewDetector(opts Options) (*Detector, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Detector{opts: opts}, nil
}

// keyGroup accumulates one normalized key's raw material during the
// ingestion pass.
type keyGroup struct {
	txns          []model.Transaction
	nameVotes     map[string]int
	categoryVotes map[string]float64
}

// Detect runs one pass over the supplied transactions and returns the
// ranked recurring patterns plus rejection counts. The pass is pure and
// deterministic: the same window and options always produce identical
// output.
func (d *Detector) Detect(txns []model.Transaction) *model.DetectionResult {
	groups := make(map[string]*keyGroup)

	for _, t := range txns {
		key := NormalizeKey(t.Name)
		if key == "" || !t.IsExpense() {
			continue
		}

		g := groups[key]
		if g == nil {
			g = &keyGroup{
				nameVotes:     make(map[string]int),
				categoryVotes: make(map[string]float64),
			}
			groups[key] = g
		}
		g.txns = append(g.txns, t)
		g.nameVotes[t.Name]++
		if cat := categoryOf(t); cat != "" {
			g.categoryVotes[cat] += -t.Amount
		}
	}

	result := &model.DetectionResult{Patterns: []model.RecurringPattern{}}

	for key, g := range groups {
		result.Meta.TotalCandidates++

		pattern, reason := d.analyzeKey(key, g)
		switch reason {
		case rejectNone:
			result.Patterns = append(result.Patterns, *pattern)
		case rejectOccurrences:
			result.Meta.ExcludedOccurrences++
		case rejectConsistency:
			result.Meta.ExcludedConsistency++
		case rejectAmount:
			result.Meta.ExcludedAmount++
		}
	}

	// Rank by total spent; key breaks ties so repeated runs are
	// byte-identical.
	sort.Slice(result.Patterns, func(i, j int) bool {
		if result.Patterns[i].TotalSpent != result.Patterns[j].TotalSpent {
			return result.Patterns[i].TotalSpent > result.Patterns[j].TotalSpent
		}
		return result.Patterns[i].Key < result.Patterns[j].Key
	})

	slog.Debug("detection pass complete",
		"candidates", result.Meta.TotalCandidates,
		"patterns", len(result.Patterns),
		"excluded_occurrences", result.Meta.ExcludedOccurrences,
		"excluded_consistency", result.Meta.ExcludedConsistency,
		"excluded_amount", result.Meta.ExcludedAmount)

	return result
}

// DetectWindow loads the expense window for the configured months-back
// horizon from storage and runs Detect over it.
func (d *Detector) DetectWindow(ctx context.Context, store service.Storage, now time.Time) (*model.DetectionResult, error) {
	start := now.AddDate(0, -d.opts.MonthsBack, 0)
	txns, err := store.GetExpensesByPeriod(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction window: %w", err)
	}
	return d.Detect(txns), nil
}

type rejectReason int

const (
	rejectNone rejectReason = iota
	rejectOccurrences
	rejectConsistency
	rejectAmount
)

// analyzeKey takes one key's accumulated transactions from charges through
// gating, returning either a pattern or the rejection reason.
func (d *Detector) analyzeKey(key string, g *keyGroup) (*model.RecurringPattern, rejectReason) {
	charges := BuildCharges(g.txns, d.opts.AggregateBy)
	if len(charges) == 0 {
		return nil, rejectOccurrences
	}

	clusters := ClusterCharges(charges, d.opts.TolerancePct, d.opts.MinTolerance)
	dominant := SelectDominantCluster(clusters)

	analyzed := dominant.Charges
	if len(analyzed) < d.opts.MinOccurrences {
		// A fragmented key with no dominant signal is analyzed as one
		// heterogeneous group; gating below may still reject it.
		analyzed = charges
	}

	if len(analyzed) < d.opts.MinOccurrences {
		return nil, rejectOccurrences
	}

	dates := make([]time.Time, len(analyzed))
	var totalSpent float64
	first, last := analyzed[0].Date, analyzed[0].Date
	for i, c := range analyzed {
		dates[i] = c.Date
		totalSpent += c.Amount
		if c.Date.Before(first) {
			first = c.Date
		}
		if c.Date.After(last) {
			last = c.Date
		}
	}

	months := MonthsSpan(first, last)
	perMonth := float64(len(analyzed)) / float64(months)

	freq := ClassifyRate(perMonth)
	if intervalFreq := ClassifyIntervals(dates); intervalFreq.IsRegular() &&
		ConsistencyScore(dates, intervalFreq) >= d.opts.MinConsistency {
		// The interval estimator carries more signal than the coarse rate
		// bands, but only when its own regularity clears the floor.
		freq = intervalFreq
	}

	score := ConsistencyScore(dates, freq)
	if score < d.opts.MinConsistency {
		return nil, rejectConsistency
	}

	mean, stddev, cv := AmountStats(analyzed)
	if freq == model.FrequencyVariable && mean < d.opts.MinVariableAmount {
		return nil, rejectAmount
	}

	return &model.RecurringPattern{
		Key:                 key,
		DisplayName:         topNameVote(g.nameVotes),
		Category:            topCategoryVote(g.categoryVotes),
		Frequency:           freq,
		Amount:              mean,
		AmountIsFixed:       cv < fixedAmountCV,
		AmountStdDev:        stddev,
		AmountCV:            cv,
		Consistency:         score,
		Occurrences:         len(analyzed),
		OccurrencesPerMonth: perMonth,
		MonthsSpan:          months,
		TotalSpent:          totalSpent,
		FirstCharge:         first,
		LastCharge:          last,
	}, rejectNone
}

// categoryOf picks the transaction's category vote: the direct category
// name when present, otherwise the parent category.
func categoryOf(t model.Transaction) string {
	if t.CategoryName != "" {
		return t.CategoryName
	}
	return t.ParentCategory
}

// topNameVote returns the most frequent raw label, ties broken
// lexicographically for determinism.
func topNameVote(votes map[string]int) string {
	var best string
	bestCount := -1
	for name, count := range votes {
		if count > bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

// topCategoryVote returns the category with the largest summed amount,
// ties broken lexicographically.
func topCategoryVote(votes map[string]float64) string {
	var best string
	bestTotal := -1.0
	for cat, total := range votes {
		if total > bestTotal || (total == bestTotal && cat < best) {
			best = cat
			bestTotal = total
		}
	}
	return best
}
