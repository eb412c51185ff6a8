package bedrock

import (
	"context"
	"testing"
	"time"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/cost"
)

func TestModelProvider(t *testing.T) {
	cases := map[string]string{
		"anthropic.claude-3-5-sonnet-20240620-v1:0": "anthropic",
		"amazon.titan-text-express-v1":              "titan",
		"meta.llama3-70b-instruct-v1:0":              "unknown",
	}
	for model, want := range cases {
		if got := modelProvider(model); got != want {
			t.Errorf("modelProvider(%q) = %q, want %q", model, got, want)
		}
	}
}

func TestBuildRequestBodyAnthropic(t *testing.T) {
	pctx := outbound.ProposerContext{StageName: "s", DataSummary: "d", ProgramSummary: "p"}
	body, err := buildRequestBody("anthropic", pctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("expected non-empty request body")
	}
}

func TestBuildRequestBodyUnsupportedProvider(t *testing.T) {
	if _, err := buildRequestBody("meta", outbound.ProposerContext{}); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestParseResponseTextAnthropic(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"hello"},{"type":"text","text":" world"}]}`)
	text, err := parseResponseText("anthropic", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello world" {
		t.Errorf("got %q, want %q", text, "hello world")
	}
}

func TestParseResponseTextTitanNoResults(t *testing.T) {
	body := []byte(`{"results":[]}`)
	if _, err := parseResponseText("titan", body); err == nil {
		t.Error("expected error for empty titan results")
	}
}

// Propose must return the verbatim initial prompt, without touching the
// AWS client at all, whenever PastAttempts is empty — so this is safe to
// exercise on a Client built without a real AWS session.
func TestProposeReturnsInitialPromptOnEmptyPastAttempts(t *testing.T) {
	client := &Client{modelID: "anthropic.claude-3-5-sonnet-20240620-v1:0", timeout: time.Second}

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

func TestParseResponseUsageAnthropic(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"hi"}],"usage":{"input_tokens":10,"output_tokens":5}}`)
	got := parseResponseUsage("anthropic", body)
	want := cost.Usage{PromptTokens: 10, CompletionTokens: 5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseResponseUsageTitanNoResultsIsZero(t *testing.T) {
	body := []byte(`{"inputTextTokenCount":10,"results":[]}`)
	got := parseResponseUsage("titan", body)
	if got != (cost.Usage{}) {
		t.Errorf("got %+v, want zero Usage", got)
	}
}

func TestClientWiresRateLimiterAndCostsFromOptions(t *testing.T) {
	client, err := NewClient(context.Background(), ClientOptions{
		RateLimitPerSecond: 100,
		RateLimitBurst:     1,
		Costs:              cost.NewTracker(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.limiter == nil || client.costs == nil {
		t.Fatal("expected both limiter and costs to be set")
	}
}
