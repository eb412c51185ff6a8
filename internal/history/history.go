// Package history implements the append-only trial ledger of spec.md §4.3.
package history

import (
	"math"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
)

// Ledger is an append-only ordered sequence of Trials. No deletion, no
// in-place mutation of a recorded Trial.
type Ledger struct {
	trials []model.Trial
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records a Trial. The Ledger takes no ownership of the Trial's
// PromptSet beyond holding the reference; callers must not mutate a
// PromptSet after appending it.
func (l *Ledger) Append(t model.Trial) {
	l.trials = append(l.trials, t)
}

// Len returns the number of recorded trials.
func (l *Ledger) Len() int {
	return len(l.trials)
}

// Trials returns the recorded trials in iteration order. The returned
// slice is a copy; mutating it does not affect the Ledger.
func (l *Ledger) Trials() []model.Trial {
	return append([]model.Trial(nil), l.trials...)
}

// AttemptsFor returns, oldest first, the prompt assigned to stage in each
// past trial together with that trial's score — exactly the
// outbound.PastAttempt shape the Assembler hands the Proposer.
func (l *Ledger) AttemptsFor(stage string) []outbound.PastAttempt {
	attempts := make([]outbound.PastAttempt, 0, len(l.trials))
	for _, t := range l.trials {
		if t.Stage != stage {
			continue
		}
		prompt, ok := t.Prompts[stage]
		if !ok {
			continue
		}
		attempts = append(attempts, outbound.PastAttempt{Prompt: prompt, Score: t.Score})
	}
	return attempts
}

// ExecutedStages returns the set of stage names that have been mutated by
// at least one trial.
func (l *Ledger) ExecutedStages() map[string]bool {
	set := make(map[string]bool)
	for _, t := range l.trials {
		set[t.Stage] = true
	}
	return set
}

// Best returns the highest-scoring recorded Trial, ties broken by earliest
// iteration, or false if the Ledger is empty. NaN scores never compare
// greater than anything (including each other) and so can never become
// Best through this method, consistent with the NumericError invariant in
// spec.md §7.
func (l *Ledger) Best() (model.Trial, bool) {
	var best model.Trial
	var have bool
	for _, t := range l.trials {
		if !have {
			if math.IsNaN(t.Score) {
				continue
			}
			best, have = t, true
			continue
		}
		if t.Score > best.Score {
			best = t
		}
	}
	return best, have
}

// LastScore returns the most recent trial's score, or 0 if the Ledger is
// empty, per spec.md §4.2: "last_trial.score is the most recent trial's
// score (or 0 if none)".
func (l *Ledger) LastScore() float64 {
	if len(l.trials) == 0 {
		return 0
	}
	return l.trials[len(l.trials)-1].Score
}
