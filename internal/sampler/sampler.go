// Package sampler implements the Batch Sampler of spec.md §4.5: uniform
// without-replacement selection of a mini-batch from the training set.
package sampler

import (
	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/internal/prng"
)

// Sampler draws mini-batches from a fixed dataset.
type Sampler struct {
	dataset []model.Example
	rng     *prng.Source
}

// New returns a Sampler over dataset, drawing from rng.
func New(dataset []model.Example, rng *prng.Source) *Sampler {
	return &Sampler{dataset: dataset, rng: rng}
}

// Sample returns min(batchSize, len(dataset)) examples drawn uniformly
// without replacement, per spec.md §4.5. The dataset itself is never
// mutated — sampling works over a scratch copy that is partially shuffled
// in place.
func (s *Sampler) Sample(batchSize int) []model.Example {
	n := len(s.dataset)
	if batchSize > n {
		batchSize = n
	}
	if batchSize <= 0 {
		return nil
	}

	scratch := append([]model.Example(nil), s.dataset...)
	for i := 0; i < batchSize; i++ {
		j := i + s.rng.Intn(n-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:batchSize]
}
