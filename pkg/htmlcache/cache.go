// Package htmlcache stores fetched HTML on disk so repeated enrichment
// runs do not hammer the same company sites. Entries expire by file
// modification time.
package htmlcache

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Cache is a file-based HTML cache with a max age.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// New creates the cache directory if needed. A maxAge of zero means every
// lookup misses, which callers use to force refetching.
func New(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, maxAge: maxAge}, nil
}

var invalidFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

// entryName builds a readable, collision-safe filename: a host/path slug
// plus a short hash of the full URL.
func entryName(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	short := fmt.Sprintf("%x", hash[:6])

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return short + ".html"
	}
	slug := strings.ReplaceAll(u.Host, ".", "_")
	if p := strings.Trim(invalidFilenameChar.ReplaceAllString(u.Path, "_"), "_"); p != "" {
		slug += "_" + p
	}
	return fmt.Sprintf("%s_%s.html", slug, short)
}

// Get returns cached HTML for the URL if present and not expired.
func (c *Cache) Get(rawURL string) ([]byte, bool) {
	if c.maxAge <= 0 {
		return nil, false
	}
	path := filepath.Join(c.dir, entryName(rawURL))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.maxAge {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores HTML for the URL, overwriting any previous entry.
func (c *Cache) Set(rawURL string, html []byte) error {
	path := filepath.Join(c.dir, entryName(rawURL))
	if err := os.WriteFile(path, html, 0640); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
