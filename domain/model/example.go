// Package model contains the value types shared by the optimizer core: the
// training data, the prompt vocabulary, and the record of what was tried.
package model

import "fmt"

// Example is a single labeled training instance.
type Example struct {
	InputText string
	Target    string
}

// NewExample creates an Example, rejecting the empty-field states the
// invariant table forbids.
func NewExample(inputText, target string) (Example, error) {
	if inputText == "" {
		return Example{}, fmt.Errorf("example input_text must not be empty")
	}
	if target == "" {
		return Example{}, fmt.Errorf("example target must not be empty")
	}
	return Example{InputText: inputText, Target: target}, nil
}

// String renders a short single-line preview, used by the assembler when it
// builds a data summary for the proposer.
func (e Example) String() string {
	return fmt.Sprintf("input=%q target=%q", e.InputText, e.Target)
}
