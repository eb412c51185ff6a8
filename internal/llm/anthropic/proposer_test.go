package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/cost"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(ClientOptions{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestProposeReturnsInitialPromptOnEmptyPastAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("API must not be called when PastAttempts is empty")
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	instr, _ := model.NewInstruction("seed instruction")
	initial := model.PromptSet{"generate": model.NewPrompt(instr, nil)}

	got, err := client.Propose(context.Background(), outbound.ProposerContext{
		StageName:      "generate",
		InitialPrompts: initial,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Instruction.Text != "seed instruction" {
		t.Errorf("got %q, want verbatim initial prompt", got.Instruction.Text)
	}
}

func TestProposeCallsAPIWhenPastAttemptsExist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing API key header")
		}
		resp := response{Content: []contentBlock{{Type: "text", Text: "Improved instruction."}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	instr, _ := model.NewInstruction("seed instruction")
	initial := model.PromptSet{"generate": model.NewPrompt(instr, nil)}

	got, err := client.Propose(context.Background(), outbound.ProposerContext{
		StageName:      "generate",
		InitialPrompts: initial,
		PastAttempts:   []outbound.PastAttempt{{Prompt: initial["generate"], Score: 0.3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Instruction.Text != "Improved instruction." {
		t.Errorf("got %q, want %q", got.Instruction.Text, "Improved instruction.")
	}
}

func TestProposeRecordsCostFromUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := response{
			Content: []contentBlock{{Type: "text", Text: "Improved instruction."}},
			Usage:   usage{InputTokens: 100, OutputTokens: 50},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	tracker := cost.NewTracker()
	client, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: server.URL, Costs: tracker})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	instr, _ := model.NewInstruction("seed instruction")
	initial := model.PromptSet{"generate": model.NewPrompt(instr, nil)}

	_, err = client.Propose(context.Background(), outbound.ProposerContext{
		StageName:      "generate",
		InitialPrompts: initial,
		PastAttempts:   []outbound.PastAttempt{{Prompt: initial["generate"], Score: 0.3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tracker.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1", tracker.Calls())
	}
	if tracker.Spent() <= 0 {
		t.Errorf("Spent() = %v, want > 0", tracker.Spent())
	}
}

func TestProposeRespectsRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := response{Content: []contentBlock{{Type: "text", Text: "Improved instruction."}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{
		APIKey:             "test-key",
		BaseURL:            server.URL,
		RateLimitPerSecond: 100,
		RateLimitBurst:     1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.limiter == nil {
		t.Fatal("expected a configured limiter when RateLimitPerSecond > 0")
	}

	instr, _ := model.NewInstruction("seed instruction")
	initial := model.PromptSet{"generate": model.NewPrompt(instr, nil)}

	_, err = client.Propose(context.Background(), outbound.ProposerContext{
		StageName:      "generate",
		InitialPrompts: initial,
		PastAttempts:   []outbound.PastAttempt{{Prompt: initial["generate"], Score: 0.3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
