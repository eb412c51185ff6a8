// Package anthropic adapts the Anthropic Messages API into the
// outbound.Proposer contract, grounded on the teacher's raw-HTTP client
// idiom (go-retryablehttp over the official SDK).
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/cost"
	"github.com/sketchdev/promptsicle/internal/obslog"
	"github.com/sketchdev/promptsicle/internal/ratelimit"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-3-5-sonnet-20240620"
	defaultMaxTokens = 1024
	defaultTimeout   = 60 * time.Second
	apiVersion       = "2023-06-01"
)

// Client drafts new stage instructions by calling the Anthropic API.
// It implements outbound.Proposer.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *retryablehttp.Client
	timeout    time.Duration
	limiter    *ratelimit.Limiter
	costs      *cost.Tracker
}

// ClientOptions configures a Client. RateLimitPerSecond/RateLimitBurst are
// optional; a zero RateLimitPerSecond leaves the client unthrottled. Costs
// is optional; when set, every successful call records its token usage
// against it so a caller can read Costs.Spent() across a whole run.
type ClientOptions struct {
	APIKey             string
	BaseURL            string
	Model              string
	Timeout            time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	Costs              *cost.Tracker
}

var _ outbound.Proposer = (*Client)(nil)

// NewClient builds a Client. APIKey is required; the rest default to
// Anthropic's production endpoint, claude-3-5-sonnet, and a 60s timeout.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = nil

	var limiter *ratelimit.Limiter
	if opts.RateLimitPerSecond > 0 {
		limiter = ratelimit.New(opts.RateLimitPerSecond, opts.RateLimitBurst)
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		model:      opts.Model,
		httpClient: retryClient,
		timeout:    opts.Timeout,
		limiter:    limiter,
		costs:      opts.Costs,
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type response struct {
	Content []contentBlock `json:"content"`
	Usage   usage          `json:"usage"`
}

// Propose drafts a new Prompt for pctx.StageName. Per spec.md §6's
// contract, when PastAttempts is empty it returns the initial prompt for
// this stage verbatim without calling the API at all.
func (c *Client) Propose(ctx context.Context, pctx outbound.ProposerContext) (model.Prompt, error) {
	if len(pctx.PastAttempts) == 0 {
		if p, ok := pctx.InitialPrompts[pctx.StageName]; ok {
			return p, nil
		}
	}

	sys := "You improve natural-language instructions for one stage of a " +
		"multi-stage LLM pipeline. Reply with the improved instruction text " +
		"only, no preamble, no markdown fences."

	reqBody := request{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		System:    sys,
		Messages: []message{
			{Role: "user", Content: buildUserTurn(pctx)},
		},
	}

	text, err := c.call(ctx, reqBody)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("anthropic: propose stage %q: %w", pctx.StageName, err)
	}

	instr, err := model.NewInstruction(strings.TrimSpace(text))
	if err != nil {
		return model.Prompt{}, fmt.Errorf("anthropic: empty proposal for stage %q: %w", pctx.StageName, err)
	}

	var demos []model.Demonstration
	if prior, ok := pctx.InitialPrompts[pctx.StageName]; ok {
		demos = prior.Examples
	}
	return model.NewPrompt(instr, demos), nil
}

func buildUserTurn(pctx outbound.ProposerContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stage: %s\n\n", pctx.StageName)
	fmt.Fprintf(&b, "%s\n\n", pctx.ProgramSummary)
	fmt.Fprintf(&b, "Dataset preview:\n%s\n\n", pctx.DataSummary)
	if len(pctx.PastAttempts) == 0 {
		b.WriteString("No prior attempts for this stage yet.\n")
	} else {
		b.WriteString("Prior attempts for this stage, oldest first:\n")
		for i, a := range pctx.PastAttempts {
			fmt.Fprintf(&b, "%d. score=%.4f instruction=%q\n", i+1, a.Score, a.Prompt.Instruction.Text)
		}
	}
	b.WriteString("\nPropose a better instruction for this stage.")
	return b.String()
}

func (c *Client) call(ctx context.Context, reqBody request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/v1/messages"
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	obslog.Debugw("anthropic: calling model", "model", reqBody.Model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if c.costs != nil {
		c.costs.Record(reqBody.Model, cost.Usage{
			PromptTokens:     parsed.Usage.InputTokens,
			CompletionTokens: parsed.Usage.OutputTokens,
		})
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
