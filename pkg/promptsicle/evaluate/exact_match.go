// Package evaluate provides Evaluator implementations. ExactMatch scores a
// batch by the fraction of Prediction outputs whose Predicted string equals
// their Target, grounded on the teacher's exact-match metric.
package evaluate

import (
	"context"
	"fmt"
)

// Prediction is what Runner implementations in this package's examples are
// expected to return: a predicted string alongside the target it's
// compared against. Evaluators outside this package are free to use any
// output shape the Runner agrees to.
type Prediction struct {
	Predicted string
	Target    string
}

// ExactMatch scores a batch as the fraction of outputs that are an exact
// string match against their target. An empty batch scores 0, the "go
// ahead and return 0" option spec.md §4.6 leaves open for empty datasets.
type ExactMatch struct{}

// NewExactMatch returns an ExactMatch evaluator.
func NewExactMatch() ExactMatch {
	return ExactMatch{}
}

// Evaluate implements outbound.Evaluator. Each element of outputs must be
// a Prediction; any other type is a CollaboratorError-class failure
// (a Runner/Evaluator mismatch is a wiring bug, not a data problem).
func (ExactMatch) Evaluate(ctx context.Context, outputs []interface{}) (float64, error) {
	if len(outputs) == 0 {
		return 0, nil
	}

	matches := 0
	for i, o := range outputs {
		pred, ok := o.(Prediction)
		if !ok {
			return 0, fmt.Errorf("evaluate: output %d is %T, want evaluate.Prediction", i, o)
		}
		if pred.Predicted == pred.Target {
			matches++
		}
	}
	return float64(matches) / float64(len(outputs)), nil
}
