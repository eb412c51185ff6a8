// Package inbound declares the operations external callers drive the
// optimizer core through.
package inbound

import (
	"context"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
)

// Collaborators bundles the five injected capabilities spec.md §6 requires.
type Collaborators struct {
	DataLoader outbound.DataLoader
	Runner     outbound.Runner
	Evaluator  outbound.Evaluator
	Proposer   outbound.Proposer
	Outputter  outbound.Outputter
}

// OptimizationPort is the single public operation of the core. An
// implementation is scoped to one fixed, already-declared stage pipeline
// (supplied wherever the implementation is constructed); Optimize itself
// only takes what varies per run.
type OptimizationPort interface {
	// Optimize searches for the prompt set that maximizes score on sampled
	// batches, per spec.md §4.6.
	Optimize(
		ctx context.Context,
		initialPrompts map[string]interface{},
		opts model.Options,
		collaborators Collaborators,
	) (model.PromptSet, error)
}
