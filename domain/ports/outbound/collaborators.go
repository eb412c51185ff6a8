// Package outbound declares the five capabilities the optimizer core calls
// out to. Each is a single-operation contract realized as a Go interface,
// per spec.md §9's "polymorphic collaborators" design note — the target
// language here has first-class interfaces, so there is no need to fall
// back to function-typed struct fields the way a language without them
// would.
package outbound

import (
	"context"

	"github.com/sketchdev/promptsicle/domain/model"
)

// DataLoader is invoked exactly once at INIT to load the training set.
type DataLoader interface {
	Load(ctx context.Context) ([]model.Example, error)
}

// Runner executes one item against a candidate prompt set. Its return
// value is opaque to the core.
type Runner interface {
	Run(ctx context.Context, item model.Example, prompts model.PromptSet) (interface{}, error)
}

// Evaluator scores one batch's outputs. It must return a finite real;
// non-finite values are handled by the core per the NumericError rule in
// spec.md §7 — the Evaluator itself has no obligation to avoid them.
type Evaluator interface {
	Evaluate(ctx context.Context, outputs []interface{}) (float64, error)
}

// PastAttempt is one historical (prompt, score) pair for a given stage,
// oldest first.
type PastAttempt struct {
	Prompt model.Prompt
	Score  float64
}

// ProposerContext is everything the Assembler hands the Proposer.
type ProposerContext struct {
	StageName      string
	DataSummary    string
	ProgramSummary string
	PastAttempts   []PastAttempt
	InitialPrompts model.PromptSet
}

// Proposer drafts a new Prompt for one stage, grounded in the supplied
// context. Per spec.md §6's contract: if PastAttempts is empty, the
// Proposer should return InitialPrompts[StageName] verbatim.
type Proposer interface {
	Propose(ctx context.Context, pctx ProposerContext) (model.Prompt, error)
}

// Outputter is called exactly once at termination with the best prompt set.
type Outputter interface {
	Output(ctx context.Context, best model.PromptSet) error
}
