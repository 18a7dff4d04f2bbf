// Package config loads rulegen settings from defaults, a YAML file, RULEGEN_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"rulegen/internal/backoff"
	"rulegen/internal/common"
	"rulegen/internal/completion"
	"rulegen/internal/extract"
	"rulegen/internal/match"
	"rulegen/internal/rules"
)

// Default values.
const (
	DefaultLogLevel          = "info"
	DefaultMaxDepth          = 64
	DefaultCompletionTimeout = completion.DefaultTimeout
	DefaultMaxRetries        = 3
	DefaultInitialInterval   = 500 * time.Millisecond
)

// Config holds all rulegen settings.
type Config struct {
	LogLevel          string   `koanf:"log_level"`
	MaxDepth          int      `koanf:"max_depth"`
	FuzzyThreshold    float64  `koanf:"fuzzy_threshold"`
	TargetOnly        string   `koanf:"target_only"`
	SourceContentType string   `koanf:"source_content_type"`
	TargetContentType string   `koanf:"target_content_type"`
	Packages          []string `koanf:"packages"`

	Match      MatchConfig      `koanf:"match"`
	Completion CompletionConfig `koanf:"completion"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// MatchConfig overrides the array classifier word lists. An empty list keeps
// the built-in default.
type MatchConfig struct {
	Keywords           []string `koanf:"keywords"`
	CollectionNouns    []string `koanf:"collection_nouns"`
	SingularExceptions []string `koanf:"singular_exceptions"`
}

// CompletionConfig configures the text-completion collaborator.
type CompletionConfig struct {
	URL             string        `koanf:"url"`
	Model           string        `koanf:"model"`
	APIKey          string        `koanf:"api_key"`
	Timeout         time.Duration `koanf:"timeout"`
	MaxRetries      uint          `koanf:"max_retries"`
	InitialInterval time.Duration `koanf:"initial_interval"`
}

func defaults() map[string]any {
	return map[string]any{
		"log_level":                   DefaultLogLevel,
		"max_depth":                   DefaultMaxDepth,
		"fuzzy_threshold":             0.0,
		"target_only":                 extract.TargetOnlyFallback.String(),
		"source_content_type":         rules.ContentTypeJSON,
		"target_content_type":         rules.ContentTypeJSON,
		"completion.timeout":          DefaultCompletionTimeout.String(),
		"completion.max_retries":      DefaultMaxRetries,
		"completion.initial_interval": DefaultInitialInterval.String(),
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}

	if !common.IsInRange(0, c.FuzzyThreshold, 1) {
		return fmt.Errorf("fuzzy_threshold must be within [0, 1], got %v", c.FuzzyThreshold)
	}

	if _, err := extract.ParseTargetOnlyPolicy(c.TargetOnly); err != nil {
		return err
	}

	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion.timeout must not be negative, got %s", c.Completion.Timeout)
	}

	return nil
}

// Classifier returns the array classifier, using defaults for empty lists.
func (c *Config) Classifier() *match.Classifier {
	cl := match.DefaultClassifier()

	if len(c.Match.Keywords) > 0 {
		cl.Keywords = c.Match.Keywords
	}

	if len(c.Match.CollectionNouns) > 0 {
		cl.CollectionNouns = c.Match.CollectionNouns
	}

	if len(c.Match.SingularExceptions) > 0 {
		cl.SingularExceptions = c.Match.SingularExceptions
	}

	return &cl
}

// TargetOnlyPolicy returns the parsed target_only value. Validate reports
// invalid values; here they fall back to the default.
func (c *Config) TargetOnlyPolicy() extract.TargetOnlyPolicy {
	p, err := extract.ParseTargetOnlyPolicy(c.TargetOnly)
	if err != nil {
		return extract.TargetOnlyFallback
	}

	return p
}

// CompletionClientConfig returns the completion client settings.
func (c *Config) CompletionClientConfig() completion.Config {
	return completion.Config{
		URL:     c.Completion.URL,
		Model:   c.Completion.Model,
		APIKey:  c.Completion.APIKey,
		Timeout: c.Completion.Timeout,
		Backoff: backoff.Config{
			InitialInterval: c.Completion.InitialInterval,
			MaxRetries:      c.Completion.MaxRetries,
		},
	}
}
