package model

import "math"

// Trial is one (stage, candidate PromptSet, observed score) record. Trials
// are never mutated after being appended to the History.
type Trial struct {
	Iteration int
	Stage     string
	Prompts   PromptSet
	Score     float64
}

// Best tracks the highest-scoring Trial seen so far, ties broken by
// earliest iteration (strict '>' never displaces an equal or lower score).
type Best struct {
	Trial   Trial
	HasReal bool // false until a real trial has ever improved on the sentinel
}

// SentinelBest is the Best value §4.6 INIT constructs before any real
// trial has run: iteration -1, the normalized initial prompts, score -Inf.
func SentinelBest(initial PromptSet) Best {
	return Best{
		Trial: Trial{
			Iteration: -1,
			Prompts:   initial,
			Score:     math.Inf(-1),
		},
		HasReal: false,
	}
}
