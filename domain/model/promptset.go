package model

import "fmt"

// PromptSet maps every declared stage name to the Prompt currently assigned
// to it. Stage names are kept as plain strings with runtime validation
// against the declared stage set, per spec.md §9 design note (a) — a
// generic type parameter was considered and rejected because nothing in
// this package needs compile-time stage enumeration, and runtime validation
// (Validate, called when an optimization run starts) has to happen regardless.
type PromptSet map[string]Prompt

// Clone returns a shallow copy whose map is independent of the receiver;
// the Assembler relies on this to never mutate the current best PromptSet
// in place.
func (ps PromptSet) Clone() PromptSet {
	cp := make(PromptSet, len(ps))
	for k, v := range ps {
		cp[k] = v
	}
	return cp
}

// With returns a new PromptSet identical to ps except that stage now maps
// to prompt.
func (ps PromptSet) With(stage string, prompt Prompt) PromptSet {
	cp := ps.Clone()
	cp[stage] = prompt
	return cp
}

// NormalizeInitialPrompts implements the §4.6 INIT normalization step: a
// raw entry that is a bare string is wrapped as a zero-demonstration
// Prompt; a raw entry that is already a Prompt passes through unchanged.
// Any other dynamic type, or an empty string, is rejected with an error.
func NormalizeInitialPrompts(raw map[string]interface{}) (PromptSet, error) {
	ps := make(PromptSet, len(raw))
	for stage, v := range raw {
		switch val := v.(type) {
		case string:
			p, err := PromptFromString(val)
			if err != nil {
				return nil, fmt.Errorf("stage %q: %w", stage, err)
			}
			ps[stage] = p
		case Prompt:
			ps[stage] = val
		default:
			return nil, fmt.Errorf("stage %q: initial prompt must be a string or Prompt, got %T", stage, v)
		}
	}
	return ps, nil
}

// Validate checks that ps has exactly the declared stages: no missing
// entries, no extras.
func (ps PromptSet) Validate(stages []string) error {
	declared := make(map[string]bool, len(stages))
	for _, s := range stages {
		declared[s] = true
		if _, ok := ps[s]; !ok {
			return fmt.Errorf("promptset missing declared stage %q", s)
		}
	}
	for s := range ps {
		if !declared[s] {
			return fmt.Errorf("promptset has undeclared stage %q", s)
		}
	}
	return nil
}
