package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
)

// minMainText is the shortest main-content extraction worth keeping.
// Anything at or below it is treated as boilerplate, not prose.
const minMainText = 200

// MainText runs a readability pass over the page and returns its primary
// prose with whitespace collapsed, truncated to maxRunes. Returns "" when
// the page has no usable main content.
func MainText(html, rawURL string, maxRunes int) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}

	return usableProse(article.TextContent, maxRunes)
}

// usableProse collapses whitespace, rejects text at or below the minimum
// length, and truncates the remainder to maxRunes.
func usableProse(text string, maxRunes int) string {
	text = collapseWhitespace(text)
	if utf8.RuneCountInString(text) <= minMainText {
		return ""
	}
	return truncateRunes(text, maxRunes)
}

// collapseWhitespace folds all runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
