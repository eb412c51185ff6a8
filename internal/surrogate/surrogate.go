// Package surrogate implements the per-stage Tree-Parzen-Estimator-style
// density-ratio estimator described in spec.md §4.1.
package surrogate

import (
	"math"
	"sort"

	"github.com/sketchdev/promptsicle/internal/prng"
)

// epsilon guards the denominator of the utility ratio against a zero
// "bad"-side density.
const epsilon = 1e-6

// Surrogate holds one stage's observed score population, split into a
// "good" and a "bad" half by a running median.
type Surrogate struct {
	good []float64
	bad  []float64
}

// New returns an empty Surrogate.
func New() *Surrogate {
	return &Surrogate{}
}

// Update classifies score against the running median of every score this
// Surrogate has ever observed (the union of good and bad as it stood
// before this call), then appends it to the chosen side. A score at or
// above the median goes to good — ties go to good, preserved verbatim per
// spec.md §9 Open Question 1. If no prior observations exist, or the
// median is undefined, the score goes to good.
func (s *Surrogate) Update(score float64) {
	if len(s.good)+len(s.bad) == 0 {
		s.good = append(s.good, score)
		return
	}
	m := median(append(append([]float64{}, s.good...), s.bad...))
	if score >= m {
		s.good = append(s.good, score)
	} else {
		s.bad = append(s.bad, score)
	}
}

// Utility returns this stage's preference signal for score: larger means
// more promising to mutate next. Per spec.md §4.1: while either side is
// still empty, return a uniform random draw from rng (pure exploration);
// otherwise the ratio of Parzen-estimated densities.
func (s *Surrogate) Utility(score float64, rng *prng.Source) float64 {
	if len(s.good) == 0 || len(s.bad) == 0 {
		return rng.Float64()
	}
	return parzen(score, s.good) / (parzen(score, s.bad) + epsilon)
}

// Good and Bad expose the current split, read-only, for callers that need
// to inspect surrogate state (e.g. tests asserting property 2 in spec.md
// §8).
func (s *Surrogate) Good() []float64 {
	return append([]float64(nil), s.good...)
}

func (s *Surrogate) Bad() []float64 {
	return append([]float64(nil), s.bad...)
}

// parzen is a Gaussian kernel density estimate of x over arr, using the
// Silverman-style bandwidth rule from spec.md §4.1.
func parzen(x float64, arr []float64) float64 {
	n := float64(len(arr))
	h := bandwidth(arr)
	sum := 0.0
	for _, mu := range arr {
		sum += gaussian(x, mu, h)
	}
	return sum / n
}

// bandwidth computes h = 1e-3 + 1.06 * stddev(arr) * |arr|^(-0.2).
func bandwidth(arr []float64) float64 {
	n := float64(len(arr))
	return 1e-3 + 1.06*stddev(arr)*math.Pow(n, -0.2)
}

// gaussian evaluates N(mu, sigma) at x.
func gaussian(x, mu, sigma float64) float64 {
	coef := 1.0 / (sigma * math.Sqrt(2*math.Pi))
	exponent := -((x - mu) * (x - mu)) / (2 * sigma * sigma)
	return coef * math.Exp(exponent)
}

// stddev computes the standard deviation of arr using the *median* — not
// the mean — as the centroid. This is unusual and intentional: spec.md
// §4.1/§9 preserve it verbatim for fidelity to the source algorithm.
func stddev(arr []float64) float64 {
	if len(arr) == 0 {
		return 0
	}
	m := median(arr)
	sum := 0.0
	for _, v := range arr {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(arr)))
}

// median returns the median of arr without mutating the caller's slice.
func median(arr []float64) float64 {
	if len(arr) == 0 {
		return math.NaN()
	}
	cp := append([]float64(nil), arr...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}
