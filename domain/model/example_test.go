package model

import "testing"

func TestNewExampleRejectsEmptyFields(t *testing.T) {
	if _, err := NewExample("", "target"); err == nil {
		t.Error("expected error for empty input_text")
	}
	if _, err := NewExample("input", ""); err == nil {
		t.Error("expected error for empty target")
	}
	if _, err := NewExample("input", "target"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewInstructionRejectsEmpty(t *testing.T) {
	if _, err := NewInstruction(""); err == nil {
		t.Error("expected error for empty instruction text")
	}
	if _, err := NewInstruction("do it"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
