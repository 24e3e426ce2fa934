// Package models defines data structures shared across the enricher.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when the config file is absent or leaves a field unset.
const (
	DefaultPerDomainDelay  = 800 * time.Millisecond
	DefaultFetchTimeout    = 20 * time.Second
	DefaultUserAgent       = "Mozilla/5.0 (compatible; CompanyEnricher/1.0; +https://github.com/dtnitsch/company-enricher)"
	DefaultMaxText         = 6000
	DefaultLLMContextChars = 2500
	DefaultModel           = "claude-sonnet-4-20250514"
)

// rawConfig is the YAML shape of the config file. Durations are strings
// ("800ms", "20s") so the file stays readable.
type rawConfig struct {
	PerDomainDelay  string `yaml:"per_domain_delay"`
	FetchTimeout    string `yaml:"fetch_timeout"`
	UserAgent       string `yaml:"user_agent"`
	MaxText         int    `yaml:"max_text"`
	LLMContextChars int    `yaml:"llm_context_chars"`
	Model           string `yaml:"model"`
}

// Config holds runtime configuration for an enrichment run.
// Credentials are never read from the file; they come from the environment.
type Config struct {
	PerDomainDelay  time.Duration
	FetchTimeout    time.Duration
	UserAgent       string
	MaxText         int
	LLMContextChars int
	Model           string
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		PerDomainDelay:  DefaultPerDomainDelay,
		FetchTimeout:    DefaultFetchTimeout,
		UserAgent:       DefaultUserAgent,
		MaxText:         DefaultMaxText,
		LLMContextChars: DefaultLLMContextChars,
		Model:           DefaultModel,
	}
}

// LoadConfig reads an optional YAML config file and applies defaults for
// anything left unset. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.PerDomainDelay != "" {
		d, err := time.ParseDuration(raw.PerDomainDelay)
		if err != nil {
			return cfg, fmt.Errorf("invalid per_domain_delay %q: %w", raw.PerDomainDelay, err)
		}
		cfg.PerDomainDelay = d
	}
	if raw.FetchTimeout != "" {
		d, err := time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid fetch_timeout %q: %w", raw.FetchTimeout, err)
		}
		cfg.FetchTimeout = d
	}
	if raw.UserAgent != "" {
		cfg.UserAgent = raw.UserAgent
	}
	if raw.MaxText > 0 {
		cfg.MaxText = raw.MaxText
	}
	if raw.LLMContextChars > 0 {
		cfg.LLMContextChars = raw.LLMContextChars
	}
	if raw.Model != "" {
		cfg.Model = raw.Model
	}

	return cfg, nil
}
