// Package variability classifies a category's spending magnitude stability
// from its monthly totals. It answers a different question than recurring
// detection: amount stability rather than timing regularity.
package variability

import "math"

// Classification is the magnitude-stability verdict for a category.
type Classification string

const (
	// Fixed means monthly totals barely move (CV below 0.15).
	Fixed Classification = "fixed"
	// Variable means monthly totals fluctuate with no clear structure.
	Variable Classification = "variable"
	// Seasonal means a few months spike far above an otherwise stable
	// baseline (e.g., holiday or back-to-school spending).
	Seasonal Classification = "seasonal"
)

const (
	fixedCVMax    = 0.15
	variableCVMax = 0.4
	// outlierSigma is the spike threshold above the mean.
	outlierSigma = 2.0
	// minOutlierMonths is the minimum number of spiking months for a
	// seasonal verdict.
	minOutlierMonths = 2
	// maxOutlierShare bounds the share of months that may spike and still
	// read as seasonal; beyond it the category is just volatile.
	maxOutlierShare = 0.25
)

// Classify buckets a category by the coefficient of variation of its
// monthly totals. High-CV categories are reported seasonal rather than
// variable when at least two months exceed mean+2σ and those spikes stay a
// minority share of the observed months.
func Classify(monthlyTotals []float64) Classification {
	n := len(monthlyTotals)
	if n == 0 {
		return Variable
	}

	mean, stddev := meanStdDev(monthlyTotals)
	if mean <= 0 {
		return Variable
	}
	cv := stddev / mean

	switch {
	case cv < fixedCVMax:
		return Fixed
	case cv <= variableCVMax:
		return Variable
	}

	threshold := mean + outlierSigma*stddev
	outliers := 0
	for _, v := range monthlyTotals {
		if v > threshold {
			outliers++
		}
	}

	if outliers >= minOutlierMonths && float64(outliers) <= maxOutlierShare*float64(n) {
		return Seasonal
	}
	return Variable
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(values []float64) (mean, stddev float64) {
	var total float64
	for _, v := range values {
		total += v
	}
	mean = total / float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stddev = math.Sqrt(sumSq / float64(len(values)))
	return mean, stddev
}
