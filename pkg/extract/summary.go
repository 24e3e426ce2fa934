package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	summaryMaxSentences  = 2
	summaryMinSentence   = 30 // fragments at or below this are discarded
	summaryMaxRunes      = 600
	summaryFallbackRunes = 300
)

// Summarize reduces raw page prose to a short description: the first two
// sentences longer than 30 characters, capped at 600. When no sentence
// survives filtering it falls back to the first 300 characters verbatim.
func Summarize(text string) string {
	text = collapseWhitespace(text)

	var kept []string
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) > summaryMinSentence {
			kept = append(kept, sentence)
			if len(kept) == summaryMaxSentences {
				break
			}
		}
	}

	if len(kept) > 0 {
		return truncateRunes(strings.Join(kept, " "), summaryMaxRunes)
	}
	return truncateRunes(text, summaryFallbackRunes)
}

// splitSentences breaks text at sentence-ending punctuation followed by
// whitespace. The punctuation stays attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				sentences = append(sentences, string(runes[start:i+1]))
				start = i + 2
				i++
			}
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}
