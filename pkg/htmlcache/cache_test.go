package htmlcache

import (
	"strings"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url := "https://acme.example/about"
	if _, ok := c.Get(url); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	if err := c.Set(url, []byte("<html>acme</html>")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok := c.Get(url)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "<html>acme</html>" {
		t.Errorf("got %q", data)
	}
}

func TestDistinctURLsDoNotCollide(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Set("https://acme.example", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("https://globex.example", []byte("b")); err != nil {
		t.Fatal(err)
	}

	if data, ok := c.Get("https://acme.example"); !ok || string(data) != "a" {
		t.Errorf("acme entry = %q, %v", data, ok)
	}
	if data, ok := c.Get("https://globex.example"); !ok || string(data) != "b" {
		t.Errorf("globex entry = %q, %v", data, ok)
	}
}

func TestZeroMaxAgeAlwaysMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Set("https://acme.example", []byte("x")); err != nil {
		t.Fatal(err)
	}

	forced, err := New(dir, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := forced.Get("https://acme.example"); ok {
		t.Error("maxAge 0 must never hit")
	}
}

func TestEntryNameSlugsHostAndPath(t *testing.T) {
	name := entryName("https://acme.example/about/team")
	if !strings.HasPrefix(name, "acme_example_about_team_") {
		t.Errorf("entry name = %q, want host/path slug prefix", name)
	}
	if !strings.HasSuffix(name, ".html") {
		t.Errorf("entry name = %q, want .html suffix", name)
	}
	if name == entryName("https://acme.example/about") {
		t.Error("different paths must map to different entries")
	}
}
