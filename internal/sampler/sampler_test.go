package sampler

import (
	"testing"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/internal/prng"
)

func mkDataset(n int) []model.Example {
	out := make([]model.Example, 0, n)
	for i := 0; i < n; i++ {
		ex, _ := model.NewExample("in", "out")
		out = append(out, ex)
	}
	return out
}

func TestSampleReturnsRequestedSize(t *testing.T) {
	s := New(mkDataset(10), prng.New(1))
	batch := s.Sample(4)
	if len(batch) != 4 {
		t.Fatalf("len(batch) = %d, want 4", len(batch))
	}
}

func TestSampleClampsToDatasetSize(t *testing.T) {
	s := New(mkDataset(3), prng.New(1))
	batch := s.Sample(10)
	if len(batch) != 3 {
		t.Fatalf("len(batch) = %d, want 3 (dataset size)", len(batch))
	}
}

func TestSampleZeroOrNegativeBatchSizeReturnsNil(t *testing.T) {
	s := New(mkDataset(3), prng.New(1))
	if b := s.Sample(0); b != nil {
		t.Errorf("Sample(0) = %v, want nil", b)
	}
}

func TestSampleDoesNotMutateDataset(t *testing.T) {
	dataset := mkDataset(5)
	original := append([]model.Example(nil), dataset...)
	s := New(dataset, prng.New(1))

	s.Sample(3)

	for i := range dataset {
		if dataset[i] != original[i] {
			t.Fatalf("dataset mutated at index %d", i)
		}
	}
}

func TestSampleNoDuplicatesWithinBatch(t *testing.T) {
	dataset := make([]model.Example, 20)
	for i := range dataset {
		ex, _ := model.NewExample(string(rune('a'+i)), "t")
		dataset[i] = ex
	}
	s := New(dataset, prng.New(42))

	batch := s.Sample(20)
	seen := make(map[string]bool, len(batch))
	for _, ex := range batch {
		if seen[ex.InputText] {
			t.Fatalf("duplicate item %q in batch", ex.InputText)
		}
		seen[ex.InputText] = true
	}
}
