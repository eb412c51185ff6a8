// Package cost tracks token usage and estimated spend across Proposer
// calls, grounded on the teacher's per-model pricing table (formerly
// attached to its Anthropic client as GetModelInfo).
package cost

import "sync"

// Pricing is the USD cost per million input/output tokens for one model.
type Pricing struct {
	CostPer1MInput  float64
	CostPer1MOutput float64
}

// knownPricing covers the models internal/llm/anthropic and
// internal/llm/bedrock default to. Unknown models fall back to zero cost
// rather than failing — cost tracking is observability, not billing.
var knownPricing = map[string]Pricing{
	"claude-3-opus-20240229":            {CostPer1MInput: 15.00, CostPer1MOutput: 75.00},
	"claude-3-5-sonnet-20240620":        {CostPer1MInput: 3.00, CostPer1MOutput: 15.00},
	"claude-3-sonnet-20240229":          {CostPer1MInput: 3.00, CostPer1MOutput: 15.00},
	"claude-3-haiku-20240307":           {CostPer1MInput: 0.25, CostPer1MOutput: 1.25},
	"anthropic.claude-3-5-sonnet-20240620-v1:0": {CostPer1MInput: 3.00, CostPer1MOutput: 15.00},
}

// PricingFor returns the known Pricing for model, or a zero Pricing if
// the model is not in the table.
func PricingFor(model string) Pricing {
	return knownPricing[model]
}

// Usage is one call's token counts.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Tracker accumulates Usage across calls and reports estimated spend.
// Safe for concurrent use so it can sit behind adapters shared across
// goroutines outside the (single-threaded) optimizer core itself.
type Tracker struct {
	mu    sync.Mutex
	spent float64
	calls int
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record adds one call's Usage against model's pricing to the running
// total.
func (t *Tracker) Record(model string, u Usage) {
	p := PricingFor(model)
	cost := float64(u.PromptTokens)/1_000_000*p.CostPer1MInput +
		float64(u.CompletionTokens)/1_000_000*p.CostPer1MOutput

	t.mu.Lock()
	defer t.mu.Unlock()
	t.spent += cost
	t.calls++
}

// Spent returns the running estimated USD total.
func (t *Tracker) Spent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spent
}

// Calls returns the number of recorded calls.
func (t *Tracker) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
