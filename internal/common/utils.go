package common

import (
	"net/url"
	"strings"
)

// SafeString trims a raw cell value, treating common spreadsheet placeholders
// for "no value" as empty.
func SafeString(v string) string {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "n/a", "na", "none", "null", "-":
		return ""
	}
	return s
}

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste
// issues: edge whitespace and stray trailing/leading punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// NormalizeURL turns a spreadsheet website cell into an absolute URL.
// Values without a scheme get https:// prefixed. Returns "" when the cell
// is empty after cleanup.
func NormalizeURL(raw string) string {
	u := SanitizeURL(SafeString(raw))
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}
	return u
}

// DomainOf returns the lowercased host component of a URL, or "" when the
// URL does not parse.
func DomainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}
