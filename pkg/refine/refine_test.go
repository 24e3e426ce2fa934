package refine

import (
	"context"
	"strings"
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		unavailable bool
	}{
		{
			name: "plain json",
			raw:  `{"description": "Acme builds industrial widget inspection systems."}`,
			want: "Acme builds industrial widget inspection systems.",
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"description\": \"Acme builds widgets.\"}\n```",
			want: "Acme builds widgets.",
		},
		{
			name: "description trimmed",
			raw:  `{"description": "  padded  "}`,
			want: "padded",
		},
		{
			name:        "empty response",
			raw:         "   ",
			unavailable: true,
		},
		{
			name:        "not json",
			raw:         "Acme builds widgets.",
			unavailable: true,
		},
		{
			name:        "json without description",
			raw:         `{"summary": "wrong field"}`,
			unavailable: true,
		},
		{
			name:        "empty description field",
			raw:         `{"description": ""}`,
			unavailable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.raw)
			if got.Unavailable != tt.unavailable {
				t.Fatalf("Unavailable = %v (reason %q), want %v", got.Unavailable, got.Reason, tt.unavailable)
			}
			if !tt.unavailable && got.Description != tt.want {
				t.Errorf("Description = %q, want %q", got.Description, tt.want)
			}
		})
	}
}

func TestParseResponseCapsLength(t *testing.T) {
	long := strings.Repeat("x", 900)
	got := ParseResponse(`{"description": "` + long + `"}`)
	if got.Unavailable {
		t.Fatalf("unexpected unavailable: %s", got.Reason)
	}
	if n := len([]rune(got.Description)); n != 600 {
		t.Errorf("capped length = %d, want 600", n)
	}
}

func TestDisabledClient(t *testing.T) {
	var c Client = Disabled{}
	if c.Enabled() {
		t.Error("Disabled client must report Enabled() == false")
	}
	got := c.Rewrite(context.Background(), Request{Company: "Acme", Website: "https://acme.example"})
	if !got.Unavailable {
		t.Error("Disabled client must always return unavailable")
	}
	if got.Reason == "" {
		t.Error("unavailable result should carry a reason")
	}
}

func TestNewFromEnvWithoutKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	c := NewFromEnv("claude-sonnet-4-20250514")
	if c.Enabled() {
		t.Error("NewFromEnv without key must return the disabled client")
	}
}

func TestNewFromEnvModelOverride(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvModel, "claude-haiku-override")
	c := NewFromEnv("claude-sonnet-4-20250514")

	a, ok := c.(*Anthropic)
	if !ok {
		t.Fatalf("NewFromEnv with key returned %T, want *Anthropic", c)
	}
	if a.model != "claude-haiku-override" {
		t.Errorf("model = %q, want override", a.model)
	}
}
