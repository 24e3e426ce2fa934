package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Environment variables consumed by NewFromEnv.
const (
	EnvAPIKey = "ANTHROPIC_API_KEY"
	EnvModel  = "ENRICHER_MODEL"
)

const (
	maxTokens      = 1024
	maxOutputRunes = 600
)

const systemPrompt = "You improve company 'Solution Description' entries for a business database.\n" +
	"Rules:\n" +
	"- Use only the provided website text/context; do not invent facts.\n" +
	"- Neutral, professional tone. No marketing fluff.\n" +
	"- 1-2 sentences, max 50 words.\n" +
	"- Output must be English.\n" +
	"- If information is insufficient, write a cautious minimal description.\n" +
	"Respond with a single JSON object of the form {\"description\": \"...\"} and nothing else."

// Anthropic is the Claude-backed refinement client.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewFromEnv builds a refinement client from the environment. Without an
// API key it returns the Disabled client; ENRICHER_MODEL overrides the
// default model id.
func NewFromEnv(defaultModel string) Client {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return Disabled{}
	}

	model := defaultModel
	if override := os.Getenv(EnvModel); override != "" {
		model = override
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{client: &client, model: model}
}

func (a *Anthropic) Enabled() bool { return true }

// Rewrite asks the model for an improved description. Every failure mode
// (transport, malformed response, empty output) collapses into an
// unavailable Result.
func (a *Anthropic) Rewrite(ctx context.Context, req Request) Result {
	current := req.CurrentDescription
	if current == "" {
		current = "EMPTY"
	}
	prompt := fmt.Sprintf("Company: %s\nWebsite: %s\nCurrent description: %s\n\nWebsite/extracted text:\n%s\n",
		req.Company, req.Website, current, req.ExtractedText)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return NotAvailable(fmt.Sprintf("completion call failed: %v", err))
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return ParseResponse(sb.String())
}

// ParseResponse extracts the description from the model's JSON reply.
// Fenced code blocks around the JSON are tolerated; anything else malformed
// is unavailable, never an error.
func ParseResponse(raw string) Result {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return NotAvailable("empty response")
	}

	var parsed struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return NotAvailable(fmt.Sprintf("malformed response: %v", err))
	}

	desc := strings.TrimSpace(parsed.Description)
	if desc == "" {
		return NotAvailable("response contained no description")
	}

	runes := []rune(desc)
	if len(runes) > maxOutputRunes {
		desc = string(runes[:maxOutputRunes])
	}
	return Improved(desc)
}
