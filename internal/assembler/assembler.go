// Package assembler implements the Candidate Assembler of spec.md §4.4: it
// gathers the context a Proposer needs and turns the Proposer's answer for
// one stage into a full candidate PromptSet.
package assembler

import (
	"context"
	"strings"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/history"
)

// maxSummaryExamples bounds how many training examples feed the data
// summary text, per spec.md §4.4's "first 3 examples" rule.
const maxSummaryExamples = 3

// Assembler builds ProposerContext values and assembles candidate
// PromptSets around a single Proposer call.
type Assembler struct {
	proposer outbound.Proposer
	dataset  []model.Example
	stages   []string
}

// New returns an Assembler bound to the full training set and the declared
// stage names (used to build the program summary).
func New(proposer outbound.Proposer, dataset []model.Example, stages []string) *Assembler {
	return &Assembler{proposer: proposer, dataset: dataset, stages: stages}
}

// Propose builds the ProposerContext for stage, calls the Proposer, and
// returns a new PromptSet equal to current except stage's entry replaced
// by the Proposer's answer.
func (a *Assembler) Propose(
	ctx context.Context,
	stage string,
	current model.PromptSet,
	initial model.PromptSet,
	ledger *history.Ledger,
) (model.PromptSet, error) {
	pctx := outbound.ProposerContext{
		StageName:      stage,
		DataSummary:    a.dataSummary(),
		ProgramSummary: a.programSummary(),
		PastAttempts:   ledger.AttemptsFor(stage),
		InitialPrompts: initial,
	}

	prompt, err := a.proposer.Propose(ctx, pctx)
	if err != nil {
		// Collaborator errors propagate unchanged out of Optimize.
		return nil, err
	}

	return current.With(stage, prompt), nil
}

// dataSummary renders a short human-readable preview of the first few
// training examples, per spec.md §4.4.
func (a *Assembler) dataSummary() string {
	n := len(a.dataset)
	if n > maxSummaryExamples {
		n = maxSummaryExamples
	}
	if n == 0 {
		return "no training examples available"
	}
	lines := make([]string, 0, n)
	for _, ex := range a.dataset[:n] {
		lines = append(lines, ex.String())
	}
	return strings.Join(lines, "\n")
}

// programSummary renders the declared stage pipeline per spec.md §4.4:
// "Program stages: " + comma-joined stage names.
func (a *Assembler) programSummary() string {
	return "Program stages: " + strings.Join(a.stages, ", ")
}
