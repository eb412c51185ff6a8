package evaluate

import (
	"context"
	"fmt"
)

// MeanScore aggregates a batch of pre-computed per-item scores into the
// single finite value spec.md §4.6 step 6 expects from an Evaluator, mirroring
// the teacher's BaseMetric.ComputeBatch reduction (per-pair scores in, one
// number out). It stands in for an LLM-judge metric whose per-item scoring
// already happened inside the Runner.
type MeanScore struct{}

// NewMeanScore returns a MeanScore evaluator.
func NewMeanScore() MeanScore {
	return MeanScore{}
}

// Evaluate implements outbound.Evaluator. Each element of outputs must be a
// float64 score in the Runner's own [0,1] (or otherwise evaluator-agreed)
// range; any other type is a wiring bug, not a data problem.
func (MeanScore) Evaluate(ctx context.Context, outputs []interface{}) (float64, error) {
	if len(outputs) == 0 {
		return 0, nil
	}

	sum := 0.0
	for i, o := range outputs {
		score, ok := o.(float64)
		if !ok {
			return 0, fmt.Errorf("evaluate: output %d is %T, want float64", i, o)
		}
		sum += score
	}
	return sum / float64(len(outputs)), nil
}
