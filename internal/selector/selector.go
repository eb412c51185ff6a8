// Package selector implements the stage-selection policy of spec.md §4.2.
package selector

import (
	"math"

	"github.com/sketchdev/promptsicle/internal/history"
	"github.com/sketchdev/promptsicle/internal/prng"
	"github.com/sketchdev/promptsicle/internal/surrogate"
)

// Selector chooses which declared stage to mutate next.
type Selector struct {
	stages     []string
	surrogates map[string]*surrogate.Surrogate
	rng        *prng.Source
}

// New builds a Selector over the declared stages, one Surrogate per stage
// (surrogates is owned by the caller so the Optimizer can update and
// inspect them directly after each trial).
func New(stages []string, surrogates map[string]*surrogate.Surrogate, rng *prng.Source) *Selector {
	return &Selector{stages: stages, surrogates: surrogates, rng: rng}
}

// Pick returns the next stage to mutate, per spec.md §4.2's two-branch
// policy: any never-executed stage first (uniform among the unexecuted),
// otherwise a utility-weighted sample falling back to uniform when the
// weights are degenerate.
func (s *Selector) Pick(ledger *history.Ledger) string {
	executed := ledger.ExecutedStages()

	unexecuted := make([]string, 0, len(s.stages))
	for _, stage := range s.stages {
		if !executed[stage] {
			unexecuted = append(unexecuted, stage)
		}
	}
	if len(unexecuted) > 0 {
		return unexecuted[s.rng.Intn(len(unexecuted))]
	}

	lastScore := ledger.LastScore()
	utilities := make([]float64, len(s.stages))
	total := 0.0
	for i, stage := range s.stages {
		u := s.surrogates[stage].Utility(lastScore, s.rng)
		if math.IsNaN(u) {
			// spec.md §4.1 Failure note: NaN utilities from a degenerate
			// surrogate population are treated as 0 by the caller.
			u = 0
		}
		utilities[i] = u
		total += u
	}

	if total == 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return s.stages[s.rng.Intn(len(s.stages))]
	}

	return sampleWeighted(s.stages, utilities, total, s.rng)
}

// sampleWeighted picks an index with probability proportional to weights,
// using a single draw from rng against the cumulative distribution.
func sampleWeighted(stages []string, weights []float64, total float64, rng *prng.Source) string {
	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return stages[i]
		}
	}
	// Floating-point rounding can leave target just past the last
	// cumulative boundary; fall back to the last stage rather than panic.
	return stages[len(stages)-1]
}
