package recurring

import (
	"math"
	"sort"
	"time"
)

const (
	// DefaultTolerancePct is the relative amount tolerance for attaching a
	// charge to an existing cluster.
	DefaultTolerancePct = 0.08
	// DefaultMinTolerance is the absolute tolerance floor, so small amounts
	// still cluster despite the percentage being tiny.
	DefaultMinTolerance = 5.0
)

// Cluster groups charges with mutually similar amounts. A key's charges may
// split across several clusters when unrelated billers share a generic
// label; only the dominant cluster is treated as the recurring signal.
type Cluster struct {
	Latest  time.Time
	Charges []Charge
	Mean    float64
	Total   float64
}

// ClusterCharges partitions charges into amount-similarity clusters.
// Charges are visited in ascending amount order; each attaches to the first
// cluster whose running mean is within max(mean*tolerancePct, minTolerance),
// otherwise it starts a new singleton cluster. Every input charge lands in
// exactly one cluster.
func ClusterCharges(charges []Charge, tolerancePct, minTolerance float64) []*Cluster {
	if len(charges) == 0 {
		return nil
	}

	sorted := make([]Charge, len(charges))
	copy(sorted, charges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	var clusters []*Cluster
	for _, c := range sorted {
		attached := false
		for _, cl := range clusters {
			tolerance := math.Max(cl.Mean*tolerancePct, minTolerance)
			if math.Abs(c.Amount-cl.Mean) <= tolerance {
				cl.add(c)
				attached = true
				break
			}
		}
		if !attached {
			clusters = append(clusters, &Cluster{
				Charges: []Charge{c},
				Mean:    c.Amount,
				Total:   c.Amount,
				Latest:  c.Date,
			})
		}
	}

	return clusters
}

// add appends a charge, updating the incremental mean, total and latest date.
func (c *Cluster) add(charge Charge) {
	c.Charges = append(c.Charges, charge)
	c.Total += charge.Amount
	c.Mean = c.Total / float64(len(c.Charges))
	if charge.Date.After(c.Latest) {
		c.Latest = charge.Date
	}
}

// SelectDominantCluster picks the cluster carrying the recurring signal:
// most members, ties broken by most recent activity, then by larger total.
// Returns nil for an empty cluster list.
func SelectDominantCluster(clusters []*Cluster) *Cluster {
	var dominant *Cluster
	for _, cl := range clusters {
		if dominant == nil {
			dominant = cl
			continue
		}
		switch {
		case len(cl.Charges) > len(dominant.Charges):
			dominant = cl
		case len(cl.Charges) == len(dominant.Charges):
			if cl.Latest.After(dominant.Latest) ||
				(cl.Latest.Equal(dominant.Latest) && cl.Total > dominant.Total) {
				dominant = cl
			}
		}
	}
	return dominant
}

// AmountStats returns the mean, sample standard deviation and coefficient
// of variation of a charge set. Standard deviation and CV are 0 for fewer
// than two charges.
func AmountStats(charges []Charge) (mean, stddev, cv float64) {
	n := len(charges)
	if n == 0 {
		return 0, 0, 0
	}

	var total float64
	for _, c := range charges {
		total += c.Amount
	}
	mean = total / float64(n)

	if n < 2 {
		return mean, 0, 0
	}

	var sumSq float64
	for _, c := range charges {
		d := c.Amount - mean
		sumSq += d * d
	}
	stddev = math.Sqrt(sumSq / float64(n-1))
	if mean > 0 {
		cv = stddev / mean
	}
	return mean, stddev, cv
}
