package model

import "fmt"

// Options configures one optimize() run (spec.md §6).
type Options struct {
	// MaxIterations bounds the LOOP; 0 means the loop never executes.
	MaxIterations int
	// BatchSize is how many dataset items are sampled per trial.
	BatchSize int
	// Seed drives the single PRNG instance; 0 is a legal seed (callers that
	// want wall-clock default behavior pass one in explicitly — the core
	// itself never reads the clock, keeping every run reproducible given a
	// seed, per spec.md §9).
	Seed uint64
	// EarlyStopThreshold: the loop breaks as soon as a trial's score is
	// at or above this value.
	EarlyStopThreshold float64
}

// DefaultOptions mirrors spec.md §6's stated defaults, except Seed, which
// the core never chooses on its own — a caller wanting "wall-clock time"
// behavior must sample one itself before calling Optimize.
func DefaultOptions() Options {
	return Options{
		MaxIterations:      100,
		BatchSize:          8,
		EarlyStopThreshold: 0.95,
	}
}

// Validate implements the batch_size and max_iterations ConfigurationError
// checks of spec.md §7. The stage checks (no stages declared, initial
// prompts missing or adding a stage) are made by the optimizer itself.
func (o Options) Validate() error {
	if o.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be >= 1, got %d", ErrConfiguration, o.BatchSize)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations must be >= 0, got %d", ErrConfiguration, o.MaxIterations)
	}
	return nil
}

// ErrConfiguration is the sentinel errors.Is target for ConfigurationError
// per spec.md §7's taxonomy.
var ErrConfiguration = fmt.Errorf("configuration error")
