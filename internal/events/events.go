// Package events implements the optimizer's improvement-notice channel.
// spec.md §7 leaves logging/notification format as "an implementation
// choice"; this mirrors the teacher's callback-registry shape (register
// handlers, fire synchronously, ignore handler panics never — errors from
// handlers are not part of the contract so handlers return nothing).
package events

import "sync"

// Improved is fired once per iteration in which a new Best Trial is
// recorded.
type Improved struct {
	Iteration int
	Stage     string
	Score     float64
}

// Trial is fired once per iteration, for every trial, whether or not it
// improved on Best — the hook internal/monitoring subscribes to so it can
// count every trial and observe every score, not just the improving ones.
type Trial struct {
	Iteration int
	Stage     string
	Score     float64
}

// Handler receives an Improved notice.
type Handler func(Improved)

// TrialHandler receives a Trial notice.
type TrialHandler func(Trial)

// Bus is a minimal synchronous pub-sub registry. The zero value is ready
// to use.
type Bus struct {
	mu            sync.Mutex
	handlers      []Handler
	trialHandlers []TrialHandler
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnImproved registers a Handler invoked on every emitted Improved event,
// in registration order.
func (b *Bus) OnImproved(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// OnTrial registers a TrialHandler invoked on every emitted Trial event, in
// registration order.
func (b *Bus) OnTrial(h TrialHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trialHandlers = append(b.trialHandlers, h)
}

// EmitImproved synchronously notifies every registered Handler.
func (b *Bus) EmitImproved(e Improved) {
	b.mu.Lock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

// EmitTrial synchronously notifies every registered TrialHandler.
func (b *Bus) EmitTrial(e Trial) {
	b.mu.Lock()
	handlers := append([]TrialHandler(nil), b.trialHandlers...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}
