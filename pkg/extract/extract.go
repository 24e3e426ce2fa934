// Package extract derives a company description from fetched page content.
// Strategies are ordered: structured metadata, then a readability main-text
// pass reduced by naive summarization. The first strategy to produce a
// non-empty description wins.
package extract

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Provenance tags recording which strategy produced a description.
const (
	ProvenanceMeta     = "meta/jsonld"
	ProvenanceMainText = "main_text"
)

// Result is a derived description with its provenance and a best-effort
// language tag. The language never affects the success decision; it is
// recorded for run-history auditing only.
type Result struct {
	Description        string
	Provenance         string
	Language           string // ISO 639-1, lowercase; "" when undetermined
	LanguageConfidence float64
}

// Extractor runs the layered extraction strategy. MaxText bounds how much
// main-text prose is carried forward.
type Extractor struct {
	MaxText  int
	detector lingua.LanguageDetector
}

// candidateLanguages covers the markets the business database spans. Keeping
// the set small keeps detector startup cheap.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Swedish,
	lingua.Russian,
	lingua.Chinese,
	lingua.Japanese,
}

// New builds an Extractor with a language detector over the candidate set.
func New(maxText int) *Extractor {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidateLanguages...).
		Build()
	return &Extractor{MaxText: maxText, detector: detector}
}

// Extract derives a description from fetched markup. ok is false when no
// strategy produced one.
func (e *Extractor) Extract(html, rawURL string) (Result, bool) {
	if desc := MetaDescription(html); desc != "" {
		return e.finish(desc, ProvenanceMeta), true
	}

	mainText := MainText(html, rawURL, e.MaxText)
	if mainText == "" {
		return Result{}, false
	}
	return e.finish(Summarize(mainText), ProvenanceMainText), true
}

func (e *Extractor) finish(description, provenance string) Result {
	r := Result{Description: description, Provenance: provenance}
	if e.detector != nil {
		if lang, ok := e.detector.DetectLanguageOf(description); ok {
			r.Language = strings.ToLower(lang.IsoCode639_1().String())
			r.LanguageConfidence = e.detector.ComputeLanguageConfidence(description, lang)
		}
	}
	return r
}
