// Package bedrock adapts AWS Bedrock's InvokeModel API into the
// outbound.Proposer contract, grounded on the teacher's native use of
// aws-sdk-go-v2/service/bedrockruntime (its one non-hand-rolled LLM
// client).
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/sketchdev/promptsicle/domain/model"
	"github.com/sketchdev/promptsicle/domain/ports/outbound"
	"github.com/sketchdev/promptsicle/internal/cost"
	"github.com/sketchdev/promptsicle/internal/obslog"
	"github.com/sketchdev/promptsicle/internal/ratelimit"
)

const defaultTimeout = 60 * time.Second

// Client drafts new stage instructions via AWS Bedrock's InvokeModel API.
// It implements outbound.Proposer.
type Client struct {
	client  *bedrockruntime.Client
	modelID string
	region  string
	timeout time.Duration
	limiter *ratelimit.Limiter
	costs   *cost.Tracker
}

// ClientOptions configures a Client. RateLimitPerSecond/RateLimitBurst are
// optional; a zero RateLimitPerSecond leaves the client unthrottled. Costs
// is optional; when set, every successful InvokeModel call records its
// token usage against it.
type ClientOptions struct {
	Region             string
	ModelID            string
	Timeout            time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	Costs              *cost.Tracker
}

var _ outbound.Proposer = (*Client)(nil)

// NewClient loads AWS credentials via the standard SDK chain (env,
// shared config, IAM role) and builds a Client bound to modelID.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if opts.ModelID == "" {
		opts.ModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load AWS config: %w", err)
	}

	var limiter *ratelimit.Limiter
	if opts.RateLimitPerSecond > 0 {
		limiter = ratelimit.New(opts.RateLimitPerSecond, opts.RateLimitBurst)
	}

	return &Client{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: opts.ModelID,
		region:  opts.Region,
		timeout: opts.Timeout,
		limiter: limiter,
		costs:   opts.Costs,
	}, nil
}

// Propose drafts a new Prompt for pctx.StageName. Per spec.md §6's
// contract, when PastAttempts is empty it returns the initial prompt for
// this stage verbatim without invoking the model.
func (c *Client) Propose(ctx context.Context, pctx outbound.ProposerContext) (model.Prompt, error) {
	if len(pctx.PastAttempts) == 0 {
		if p, ok := pctx.InitialPrompts[pctx.StageName]; ok {
			return p, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return model.Prompt{}, fmt.Errorf("bedrock: rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	provider := modelProvider(c.modelID)
	body, err := buildRequestBody(provider, pctx)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("bedrock: build request: %w", err)
	}

	obslog.Debugw("bedrock: invoking model", "model", c.modelID, "provider", provider)

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        body,
		ContentType: strPtr("application/json"),
	})
	if err != nil {
		return model.Prompt{}, fmt.Errorf("bedrock: invoke model: %w", err)
	}

	text, err := parseResponseText(provider, out.Body)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("bedrock: parse response: %w", err)
	}

	if c.costs != nil {
		c.costs.Record(c.modelID, parseResponseUsage(provider, out.Body))
	}

	instr, err := model.NewInstruction(strings.TrimSpace(text))
	if err != nil {
		return model.Prompt{}, fmt.Errorf("bedrock: empty proposal for stage %q: %w", pctx.StageName, err)
	}

	var demos []model.Demonstration
	if prior, ok := pctx.InitialPrompts[pctx.StageName]; ok {
		demos = prior.Examples
	}
	return model.NewPrompt(instr, demos), nil
}

func modelProvider(modelID string) string {
	switch {
	case strings.HasPrefix(modelID, "anthropic."):
		return "anthropic"
	case strings.HasPrefix(modelID, "amazon.titan"):
		return "titan"
	default:
		return "unknown"
	}
}

func buildRequestBody(provider string, pctx outbound.ProposerContext) ([]byte, error) {
	prompt := proposalPrompt(pctx)
	switch provider {
	case "anthropic":
		type req struct {
			AnthropicVersion string `json:"anthropic_version"`
			Messages         []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		r := req{AnthropicVersion: "bedrock-2023-05-31", MaxTokens: 1024}
		r.Messages = append(r.Messages, struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{Role: "user", Content: prompt})
		return json.Marshal(r)
	case "titan":
		type cfg struct {
			MaxTokenCount int `json:"maxTokenCount"`
		}
		type req struct {
			InputText            string `json:"inputText"`
			TextGenerationConfig cfg    `json:"textGenerationConfig"`
		}
		return json.Marshal(req{InputText: prompt, TextGenerationConfig: cfg{MaxTokenCount: 1024}})
	default:
		return nil, fmt.Errorf("unsupported model provider %q", provider)
	}
}

func parseResponseText(provider string, body []byte) (string, error) {
	switch provider {
	case "anthropic":
		var resp struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", err
		}
		var text string
		for _, c := range resp.Content {
			if c.Type == "text" {
				text += c.Text
			}
		}
		return text, nil
	case "titan":
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", err
		}
		if len(resp.Results) == 0 {
			return "", fmt.Errorf("no results in response")
		}
		return resp.Results[0].OutputText, nil
	default:
		return "", fmt.Errorf("unsupported model provider")
	}
}

// parseResponseUsage extracts token counts from a raw InvokeModel body, for
// internal/cost bookkeeping. An unparseable or unsupported-provider body
// yields a zero Usage rather than an error — usage tracking is best-effort
// observability, not part of Propose's error contract.
func parseResponseUsage(provider string, body []byte) cost.Usage {
	switch provider {
	case "anthropic":
		var resp struct {
			Usage struct {
				InputTokens  int `json:"input_tokens"`
				OutputTokens int `json:"output_tokens"`
			} `json:"usage"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return cost.Usage{}
		}
		return cost.Usage{PromptTokens: resp.Usage.InputTokens, CompletionTokens: resp.Usage.OutputTokens}
	case "titan":
		var resp struct {
			InputTextTokenCount int `json:"inputTextTokenCount"`
			Results             []struct {
				TokenCount int `json:"tokenCount"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil || len(resp.Results) == 0 {
			return cost.Usage{}
		}
		return cost.Usage{PromptTokens: resp.InputTextTokenCount, CompletionTokens: resp.Results[0].TokenCount}
	default:
		return cost.Usage{}
	}
}

// proposalPrompt renders the ProposerContext into the single text prompt
// Bedrock's raw InvokeModel API expects.
func proposalPrompt(pctx outbound.ProposerContext) string {
	var b strings.Builder
	b.WriteString("You improve natural-language instructions for one stage of a ")
	b.WriteString("multi-stage LLM pipeline. Reply with the improved instruction ")
	b.WriteString("text only, no preamble, no markdown fences.\n\n")
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
	return b.String()
}

func strPtr(s string) *string { return &s }
