package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetaDescription returns the first non-empty description found in the
// page's structured metadata, in priority order: Open Graph description,
// standard description meta tag, then a description field inside any
// JSON-LD block. Returns "" when none is present.
func MetaDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if t := metaContent(doc, `meta[property="og:description"]`); t != "" {
		return t
	}
	if t := metaContent(doc, `meta[name="description"]`); t != "" {
		return t
	}
	return jsonLDDescription(doc)
}

func metaContent(doc *goquery.Document, selector string) string {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, ok := s.Attr("content")
		if !ok {
			return true
		}
		if t := strings.TrimSpace(content); t != "" {
			found = t
			return false
		}
		return true
	})
	return found
}

// jsonLDDescription scans ld+json script blocks for a top-level description
// field. Malformed blocks are skipped, not fatal.
func jsonLDDescription(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}

		objs, ok := data.([]any)
		if !ok {
			objs = []any{data}
		}
		for _, obj := range objs {
			m, ok := obj.(map[string]any)
			if !ok {
				continue
			}
			desc, ok := m["description"].(string)
			if !ok {
				continue
			}
			if t := strings.TrimSpace(desc); t != "" {
				found = t
				return false
			}
		}
		return true
	})
	return found
}
