package model

import "fmt"

// Instruction is a non-empty natural-language directive for one stage.
type Instruction struct {
	Text string
}

// NewInstruction validates and wraps an instruction string.
func NewInstruction(text string) (Instruction, error) {
	if text == "" {
		return Instruction{}, fmt.Errorf("instruction text must not be empty")
	}
	return Instruction{Text: text}, nil
}

// Demonstration is one input/output pair bundled alongside an Instruction.
type Demonstration struct {
	Input  string
	Output string
}

// Prompt is everything one stage needs at runtime: an instruction plus zero
// or more demonstrations. Prompts are immutable once proposed.
type Prompt struct {
	Instruction Instruction
	Examples    []Demonstration
}

// NewPrompt builds a Prompt, copying the demonstration slice so the caller's
// backing array can't mutate a prompt after the fact.
func NewPrompt(instruction Instruction, examples []Demonstration) Prompt {
	cp := make([]Demonstration, len(examples))
	copy(cp, examples)
	return Prompt{Instruction: instruction, Examples: cp}
}

// PromptFromString wraps a bare instruction string as a Prompt with no
// demonstrations — the normalization §4.6 INIT requires for initial_prompts
// entries supplied as plain strings.
func PromptFromString(text string) (Prompt, error) {
	instr, err := NewInstruction(text)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Instruction: instr}, nil
}
