// Package optimizer implements the Optimizer Loop of spec.md §4.6 — the
// top-level INIT → LOOP → TERMINATED state machine composing the
// Surrogate, Selector, History, Assembler, and Sampler packages around the
// five injected collaborators.
package optimizer

import (
	"context"
	"fmt"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/inbound"
	"github.com/sketchdev/promptsicle/internal/assembler"
	"github.com/sketchdev/promptsicle/internal/events"
	"github.com/sketchdev/promptsicle/internal/history"
	"github.com/sketchdev/promptsicle/internal/obslog"
	"github.com/sketchdev/promptsicle/internal/prng"
	"github.com/sketchdev/promptsicle/internal/sampler"
	"github.com/sketchdev/promptsicle/internal/selector"
	"github.com/sketchdev/promptsicle/internal/surrogate"
)

// Optimizer holds the declared stages and the notification bus. Each
// Optimize call builds its own PRNG, History, per-stage Surrogates, and
// Best. It is not safe for concurrent use — spec.md §5 mandates
// single-threaded cooperative execution.
type Optimizer struct {
	stages []string
	events *events.Bus
}

// New returns an Optimizer over the declared stage names. bus may be nil,
// in which case the Optimizer creates its own bus, reachable via Events().
func New(stages []string, bus *events.Bus) *Optimizer {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Optimizer{stages: stages, events: bus}
}

// Events exposes the Optimizer's notification bus so callers can subscribe
// before calling Optimize.
func (o *Optimizer) Events() *events.Bus {
	return o.events
}

// Collaborators bundles the five capabilities spec.md §6 requires. It is
// an alias of the inbound port's own type so Optimizer satisfies
// inbound.OptimizationPort without a second parallel definition.
type Collaborators = inbound.Collaborators

var _ inbound.OptimizationPort = (*Optimizer)(nil)

// Optimize runs one full INIT → LOOP → TERMINATED cycle and returns the
// best PromptSet found, per spec.md §4.6. It implements
// inbound.OptimizationPort, but takes the declared stages from the
// Optimizer itself (set at New) rather than per-call, since a single
// Optimizer instance is already scoped to one fixed stage pipeline.
func (o *Optimizer) Optimize(
	ctx context.Context,
	initialPromptsRaw map[string]interface{},
	opts model.Options,
	collab Collaborators,
) (model.PromptSet, error) {
	// --- INIT ---
	if len(o.stages) == 0 {
		return nil, fmt.Errorf("%w: at least one stage must be declared", model.ErrConfiguration)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	initial, err := model.NormalizeInitialPrompts(initialPromptsRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}
	if err := initial.Validate(o.stages); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}

	rng := prng.New(opts.Seed)

	surrogates := make(map[string]*surrogate.Surrogate, len(o.stages))
	for _, stage := range o.stages {
		surrogates[stage] = surrogate.New()
	}

	ledger := history.New()
	best := model.SentinelBest(initial)

	// DataLoader is invoked exactly once at INIT, per spec.md §6.
	dataset, err := collab.DataLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	sel := selector.New(o.stages, surrogates, rng)
	asm := assembler.New(collab.Proposer, dataset, o.stages)
	smp := sampler.New(dataset, rng)

	// --- LOOP ---
	for iter := 0; iter < opts.MaxIterations; iter++ {
		stage := sel.Pick(ledger)

		candidate, err := asm.Propose(ctx, stage, best.Trial.Prompts, initial, ledger)
		if err != nil {
			return nil, err
		}

		batch := smp.Sample(opts.BatchSize)

		outputs := make([]interface{}, 0, len(batch))
		for _, item := range batch {
			out, err := collab.Runner.Run(ctx, item, candidate)
			if err != nil {
				return nil, err
			}
			outputs = append(outputs, out)
		}

		score, err := collab.Evaluator.Evaluate(ctx, outputs)
		if err != nil {
			return nil, err
		}

		trial := model.Trial{Iteration: iter, Stage: stage, Prompts: candidate, Score: score}
		ledger.Append(trial)
		surrogates[stage].Update(score)
		obslog.Default().Debugw("trial recorded", "iteration", iter, "stage", stage, "score", score)
		o.events.EmitTrial(events.Trial{Iteration: iter, Stage: stage, Score: score})

		// A NaN score never compares greater than anything, so a NaN trial
		// can never become Best here — the NumericError invariant from
		// spec.md §7 falls out of IEEE-754 comparison semantics, no
		// special-casing needed.
		if score > best.Trial.Score {
			best = model.Best{Trial: trial, HasReal: true}
			obslog.Default().Infow("best improved", "iteration", iter, "stage", stage, "score", score)
			o.events.EmitImproved(events.Improved{Iteration: iter, Stage: stage, Score: score})
			if score >= opts.EarlyStopThreshold {
				break
			}
		}
	}

	// --- TERMINATED ---
	if err := collab.Outputter.Output(ctx, best.Trial.Prompts); err != nil {
		return nil, err
	}
	return best.Trial.Prompts, nil
}
