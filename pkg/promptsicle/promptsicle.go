// Package promptsicle is the public entry point to the prompt optimizer.
// It wires the internal Surrogate/Selector/History/Assembler/Sampler
// components behind the single Optimize operation described in spec.md §4.6.
package promptsicle

import (
	"context"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/inbound"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/events"
	"github.com/sketchdev/promptsicle/internal/optimizer"
)

// Re-exported domain types so callers never need to import domain/model or
// domain/ports/outbound directly.
type (
	Example       = model.Example
	Instruction   = model.Instruction
	Demonstration = model.Demonstration
	Prompt        = model.Prompt
	PromptSet     = model.PromptSet
	Trial         = model.Trial
	Options       = model.Options

	DataLoader      = outbound.DataLoader
	Runner          = outbound.Runner
	Evaluator       = outbound.Evaluator
	Proposer        = outbound.Proposer
	Outputter       = outbound.Outputter
	PastAttempt     = outbound.PastAttempt
	ProposerContext = outbound.ProposerContext

	// Collaborators bundles the five capabilities an Optimize call
	// requires; it is the inbound port's own type, so a caller assembling
	// one here is exercising the same contract internal/optimizer is
	// built against.
	Collaborators = inbound.Collaborators

	ImprovedEvent = events.Improved
	TrialEvent    = events.Trial
)

// ErrConfiguration is the sentinel wrapped by every ConfigurationError,
// per spec.md §7. Callers should use errors.Is(err, promptsicle.ErrConfiguration).
var ErrConfiguration = model.ErrConfiguration

// DefaultOptions returns the §6 defaults: max_iterations=100, batch_size=8,
// early_stop_threshold=0.95, seed=0 (callers wanting wall-clock-seeded runs
// should set Seed explicitly; the core never reads the clock itself).
func DefaultOptions() Options {
	return model.DefaultOptions()
}

// Optimize runs one optimization session over the declared stages and
// returns the best PromptSet found. initialPrompts maps each declared
// stage to either a bare instruction string or a Prompt; see
// model.NormalizeInitialPrompts.
//
// onImproved, if non-nil, is invoked synchronously every time a new best
// Trial is recorded. onTrial, if non-nil, is invoked synchronously after
// every trial, improving or not — the hook a monitoring.Metrics or a
// cost/ratelimit observer subscribes through.
func Optimize(
	ctx context.Context,
	stages []string,
	initialPrompts map[string]interface{},
	opts Options,
	collab Collaborators,
	onImproved func(ImprovedEvent),
	onTrial func(TrialEvent),
) (PromptSet, error) {
	bus := events.NewBus()
	if onImproved != nil {
		bus.OnImproved(onImproved)
	}
	if onTrial != nil {
		bus.OnTrial(onTrial)
	}

	var port inbound.OptimizationPort = optimizer.New(stages, bus)
	return port.Optimize(ctx, initialPrompts, opts, collab)
}
