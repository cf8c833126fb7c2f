// Package config provides loading and parsing of nipper.yaml configuration files.
// A configuration selects the report parts to parse, the ref keys that address
// them, the table row policy and the report cache.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/nipper/audit"
	"github.com/zero-day-ai/nipper/parser"
)

// Part names a top-level report part that can be enabled.
type Part string

const (
	PartSecurityAudit       Part = "security_audit"
	PartVulnerabilityAudit  Part = "vulnerability_audit"
	PartFilteringComplexity Part = "filtering_complexity"
)

// IsValid returns true if the part is known.
func (p Part) IsValid() bool {
	switch p {
	case PartSecurityAudit, PartVulnerabilityAudit, PartFilteringComplexity:
		return true
	default:
		return false
	}
}

// AllParts returns every part in report order.
func AllParts() []Part {
	return []Part{PartSecurityAudit, PartVulnerabilityAudit, PartFilteringComplexity}
}

// Config represents a nipper.yaml configuration file.
type Config struct {
	// Parts lists the parts to parse. Empty means all parts.
	// The Information part is always parsed.
	Parts []Part `yaml:"parts,omitempty"`

	// Keys overrides the ref attribute values. Empty keys take the defaults.
	Keys audit.Keys `yaml:"keys,omitempty"`

	Tables TablesConfig `yaml:"tables,omitempty"`

	// Cache configures the report cache. Nil disables caching.
	Cache *CacheConfig `yaml:"cache,omitempty"`
}

// TablesConfig controls table extraction.
type TablesConfig struct {
	// RowPolicy is "truncate" or "strict".
	// Default: truncate
	RowPolicy parser.RowPolicy `yaml:"row_policy,omitempty"`
}

// GetRowPolicy returns the configured row policy or the default value.
func (t TablesConfig) GetRowPolicy() parser.RowPolicy {
	if t.RowPolicy == "" {
		return parser.RowTruncate
	}
	return t.RowPolicy
}

// CacheConfig defines where parsed reports are cached.
type CacheConfig struct {
	// RedisURL is a redis:// URL. Empty selects the in-memory store.
	RedisURL string `yaml:"redis_url,omitempty"`

	// TTL is how long a cached report is kept.
	// Format: Go duration string (e.g., "24h")
	// Default: 24h
	TTL string `yaml:"ttl,omitempty"`

	// Prefix is the key prefix of cached reports.
	// Default: "nipper" (resulting in "nipper:report:<digest>")
	Prefix string `yaml:"prefix,omitempty"`
}

// GetTTL parses the TTL string and returns a duration.
// Returns the default value if not set or invalid.
func (c *CacheConfig) GetTTL() time.Duration {
	if c == nil || c.TTL == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetPrefix returns the key prefix or the default value.
func (c *CacheConfig) GetPrefix() string {
	if c == nil || c.Prefix == "" {
		return "nipper"
	}
	return c.Prefix
}

// Default returns a configuration with every part enabled and the keys
// written by Nipper Studio.
func Default() *Config {
	return &Config{
		Parts:  AllParts(),
		Keys:   audit.DefaultKeys(),
		Tables: TablesConfig{RowPolicy: parser.RowTruncate},
	}
}

// Enabled reports whether part should be parsed.
func (c *Config) Enabled(part Part) bool {
	if c == nil || len(c.Parts) == 0 {
		return true
	}
	for _, p := range c.Parts {
		if p == part {
			return true
		}
	}
	return false
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[Part]bool, len(c.Parts))
	for _, p := range c.Parts {
		if !p.IsValid() {
			errs = append(errs, fmt.Errorf("parts: unknown part %q", p))
		}
		if seen[p] {
			errs = append(errs, fmt.Errorf("parts: %q listed twice", p))
		}
		seen[p] = true
	}
	if c.Tables.RowPolicy != "" && !c.Tables.RowPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("tables.row_policy: unknown policy %q", c.Tables.RowPolicy))
	}
	if c.Cache != nil && c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl: %w", err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("cache.ttl: must be positive, got %s", d))
		}
	}
	return errors.Join(errs...)
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Load reads and parses a nipper.yaml file from the given path.
// If the path is a directory, it looks for nipper.yaml or nipper.yml in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{"nipper.yaml", "nipper.yml"} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no nipper.yaml or nipper.yml found in %s", path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}
