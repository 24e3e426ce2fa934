package extract

import (
	"fmt"
	"strings"
	"testing"
)

const metaPage = `<html><head>
<meta property="og:description" content="Widgets for all.">
<meta name="description" content="Generic fallback description.">
</head><body><p>body</p></body></html>`

func TestMetaDescriptionPriority(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "open graph outranks generic meta",
			html: metaPage,
			want: "Widgets for all.",
		},
		{
			name: "generic meta when og absent",
			html: `<html><head><meta name="description" content="Generic fallback description."></head></html>`,
			want: "Generic fallback description.",
		},
		{
			name: "json-ld object",
			html: `<html><head><script type="application/ld+json">{"@type":"Organization","description":"Structured data description."}</script></head></html>`,
			want: "Structured data description.",
		},
		{
			name: "json-ld array",
			html: `<html><head><script type="application/ld+json">[{"name":"x"},{"description":"From the array."}]</script></head></html>`,
			want: "From the array.",
		},
		{
			name: "generic meta outranks json-ld",
			html: `<html><head><meta name="description" content="Meta wins."><script type="application/ld+json">{"description":"JSON-LD loses."}</script></head></html>`,
			want: "Meta wins.",
		},
		{
			name: "malformed json-ld skipped",
			html: `<html><head><script type="application/ld+json">{not json</script><script type="application/ld+json">{"description":"Second block."}</script></head></html>`,
			want: "Second block.",
		},
		{
			name: "empty og content falls through",
			html: `<html><head><meta property="og:description" content="  "><meta name="description" content="Fallback."></head></html>`,
			want: "Fallback.",
		},
		{
			name: "content trimmed",
			html: `<html><head><meta property="og:description" content="  padded  "></head></html>`,
			want: "padded",
		},
		{
			name: "nothing found",
			html: `<html><head><title>t</title></head><body>hello</body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetaDescription(tt.html); got != tt.want {
				t.Errorf("MetaDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUsableProseBoundary(t *testing.T) {
	at := strings.Repeat("a", 200)  // exactly 200: rejected
	over := strings.Repeat("a", 201) // 201: accepted

	if got := usableProse(at, 6000); got != "" {
		t.Errorf("200-char prose should be rejected, got %d chars", len(got))
	}
	if got := usableProse(over, 6000); got != over {
		t.Errorf("201-char prose should be accepted verbatim, got %d chars", len(got))
	}
}

func TestUsableProseCollapsesAndTruncates(t *testing.T) {
	raw := "Line one.\n\n  Line\ttwo.   " + strings.Repeat("x", 400)
	got := usableProse(raw, 250)
	if strings.Contains(got, "\n") || strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
	if len([]rune(got)) != 250 {
		t.Errorf("truncation: got %d runes, want 250", len([]rune(got)))
	}
	if !strings.HasPrefix(got, "Line one. Line two. ") {
		t.Errorf("unexpected prefix: %q", got[:30])
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "first two long sentences joined",
			in: "We build industrial widget platforms for manufacturers. " +
				"Our software automates quality control at scale. " +
				"A third sentence that should not appear in the output.",
			want: "We build industrial widget platforms for manufacturers. " +
				"Our software automates quality control at scale.",
		},
		{
			name: "short fragments discarded",
			in: "Home. About us. Contact. " +
				"We build industrial widget platforms for manufacturers.",
			want: "We build industrial widget platforms for manufacturers.",
		},
		{
			name: "question and exclamation are boundaries",
			in: "Why do manufacturers choose our widget platform every time? " +
				"Because it automates their entire quality pipeline end to end! Short.",
			want: "Why do manufacturers choose our widget platform every time? " +
				"Because it automates their entire quality pipeline end to end!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.in); got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeSentenceLengthBoundary(t *testing.T) {
	// 30 characters including the period: discarded; 31: kept.
	s30 := strings.Repeat("a", 29) + "."
	s31 := strings.Repeat("b", 30) + "."
	in := s30 + " " + s31

	if got := Summarize(in); got != s31 {
		t.Errorf("Summarize() = %q, want only the 31-char sentence", got)
	}
}

func TestSummarizeFallbackVerbatim(t *testing.T) {
	// Nothing but short fragments: first 300 chars of the original text.
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "Item %02d. ", i)
	}
	in := strings.TrimSpace(sb.String())

	got := Summarize(in)
	if len([]rune(got)) != 300 {
		t.Fatalf("fallback length = %d, want 300", len([]rune(got)))
	}
	if !strings.HasPrefix(in, got) {
		t.Error("fallback must be a verbatim prefix of the input")
	}
}

func TestSummarizeCap(t *testing.T) {
	long := "It starts here and " + strings.Repeat("keeps going ", 80) + "ends."
	got := Summarize(long)
	if n := len([]rune(got)); n > 600 {
		t.Errorf("summary length = %d, want <= 600", n)
	}
}

func TestExtractPrefersMetadata(t *testing.T) {
	e := New(6000)

	// Page with both a meta description and plenty of article prose: the
	// metadata must win regardless of content quality.
	prose := strings.Repeat("This paragraph describes the company in great detail. ", 20)
	html := fmt.Sprintf(`<html><head>
<meta property="og:description" content="Widgets for all.">
</head><body><article><p>%s</p></article></body></html>`, prose)

	result, ok := e.Extract(html, "https://acme.example")
	if !ok {
		t.Fatal("Extract() should succeed")
	}
	if result.Description != "Widgets for all." {
		t.Errorf("Description = %q", result.Description)
	}
	if result.Provenance != ProvenanceMeta {
		t.Errorf("Provenance = %q, want %q", result.Provenance, ProvenanceMeta)
	}
}

func TestExtractMainTextFallback(t *testing.T) {
	e := New(6000)

	prose := "Acme Industrial builds automated widget inspection platforms for factories across Europe. " +
		"The company's systems combine machine vision with statistical process control. " +
		strings.Repeat("Additional detail about deployments and certifications follows here. ", 10)
	html := fmt.Sprintf(`<html><head><title>Acme</title></head>
<body><article><h1>About Acme</h1><p>%s</p></article></body></html>`, prose)

	result, ok := e.Extract(html, "https://acme.example/about")
	if !ok {
		t.Fatal("Extract() should fall back to main text")
	}
	if result.Provenance != ProvenanceMainText {
		t.Errorf("Provenance = %q, want %q", result.Provenance, ProvenanceMainText)
	}
	if !strings.Contains(result.Description, "Acme Industrial builds") {
		t.Errorf("Description = %q", result.Description)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
}

func TestExtractNothing(t *testing.T) {
	e := New(6000)
	if _, ok := e.Extract(`<html><body><p>Hi.</p></body></html>`, "https://acme.example"); ok {
		t.Error("Extract() should fail on a page with no metadata and no prose")
	}
}
