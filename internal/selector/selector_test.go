package selector

import (
	"testing"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/internal/history"
	"github.com/sketchdev/promptsicle/internal/prng"
	"github.com/sketchdev/promptsicle/internal/surrogate"
)

func newSurrogates(stages []string) map[string]*surrogate.Surrogate {
	m := make(map[string]*surrogate.Surrogate, len(stages))
	for _, s := range stages {
		m[s] = surrogate.New()
	}
	return m
}

func mkTrial(iter int, stage string, score float64) model.Trial {
	instr, _ := model.NewInstruction("x")
	return model.Trial{
		Iteration: iter,
		Stage:     stage,
		Prompts:   model.PromptSet{stage: model.NewPrompt(instr, nil)},
		Score:     score,
	}
}

func TestPickPrefersNeverExecutedStages(t *testing.T) {
	stages := []string{"a", "b", "c"}
	surrogates := newSurrogates(stages)
	rng := prng.New(1)
	sel := New(stages, surrogates, rng)

	ledger := history.New()
	ledger.Append(mkTrial(0, "a", 0.5))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		picked := sel.Pick(ledger)
		seen[picked] = true
		if picked == "a" {
			t.Errorf("stage %q already executed should not be re-picked while b/c remain unexecuted", picked)
		}
	}
	if !seen["b"] || !seen["c"] {
		t.Errorf("expected both unexecuted stages to be reachable, saw %v", seen)
	}
}

func TestPickCoversAllStagesWithinFirstNPicks(t *testing.T) {
	stages := []string{"a", "b", "c"}
	surrogates := newSurrogates(stages)
	rng := prng.New(7)
	sel := New(stages, surrogates, rng)
	ledger := history.New()

	for range stages {
		picked := sel.Pick(ledger)
		ledger.Append(mkTrial(len(ledger.Trials()), picked, 0.5))
		surrogates[picked].Update(0.5)
	}

	executed := ledger.ExecutedStages()
	for _, s := range stages {
		if !executed[s] {
			t.Errorf("stage %q should have been executed after %d picks", s, len(stages))
		}
	}
}

func TestPickFallsBackToUniformAfterAllStagesExecuted(t *testing.T) {
	stages := []string{"a", "b"}
	surrogates := newSurrogates(stages)
	rng := prng.New(3)
	sel := New(stages, surrogates, rng)

	ledger := history.New()
	ledger.Append(mkTrial(0, "a", 0.5))
	ledger.Append(mkTrial(1, "b", 0.5))
	surrogates["a"].Update(0.5)
	surrogates["b"].Update(0.5)

	// Both surrogates now have a single "good" observation each (bad is
	// empty), so Utility falls back to a uniform random draw per
	// surrogate.Utility's own contract — Pick must still return a valid
	// stage name every time.
	for i := 0; i < 20; i++ {
		picked := sel.Pick(ledger)
		if picked != "a" && picked != "b" {
			t.Fatalf("Pick returned unknown stage %q", picked)
		}
	}
}
