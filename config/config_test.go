package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/nipper/audit"
	"github.com/zero-day-ai/nipper/parser"
)

const sample = `
parts: [security_audit, filtering_complexity]
keys:
  security_audit: SECAUDIT
  security_mitigations: SECURITY.MITIGATION
tables:
  row_policy: strict
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1h
  prefix: reports
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []Part{PartSecurityAudit, PartFilteringComplexity}, cfg.Parts)
	assert.True(t, cfg.Enabled(PartSecurityAudit))
	assert.False(t, cfg.Enabled(PartVulnerabilityAudit))
	assert.Equal(t, "SECAUDIT", cfg.Keys.SecurityAudit)
	assert.Equal(t, "SECURITY.MITIGATION", cfg.Keys.SecurityMitigations)
	assert.Empty(t, cfg.Keys.VulnerabilityAudit)
	assert.Equal(t, parser.RowStrict, cfg.Tables.GetRowPolicy())
	require.NotNil(t, cfg.Cache)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, time.Hour, cfg.Cache.GetTTL())
	assert.Equal(t, "reports", cfg.Cache.GetPrefix())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"malformed", "parts: [", "failed to parse config"},
		{"unknown part", "parts: [appendix]", `unknown part "appendix"`},
		{"duplicate part", "parts: [security_audit, security_audit]", "listed twice"},
		{"row policy", "tables:\n  row_policy: pad", `unknown policy "pad"`},
		{"bad ttl", "cache:\n  ttl: soon", "cache.ttl"},
		{"negative ttl", "cache:\n  ttl: -1h", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, audit.DefaultKeys(), cfg.Keys)
	for _, p := range AllParts() {
		assert.True(t, cfg.Enabled(p))
	}
	assert.Nil(t, cfg.Cache)
}

func TestDefaults_Unset(t *testing.T) {
	var cfg Config
	assert.True(t, cfg.Enabled(PartVulnerabilityAudit))
	assert.Equal(t, parser.RowTruncate, cfg.Tables.GetRowPolicy())

	var cache *CacheConfig
	assert.Equal(t, 24*time.Hour, cache.GetTTL())
	assert.Equal(t, "nipper", cache.GetPrefix())
	assert.Equal(t, 24*time.Hour, (&CacheConfig{TTL: "bogus"}).GetTTL())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nipper.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nipper.yml"), []byte(sample), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "SECAUDIT", cfg.Keys.SecurityAudit)

	cfg, err = Load(filepath.Join(dir, "nipper.yml"))
	require.NoError(t, err)
	assert.Equal(t, parser.RowStrict, cfg.Tables.RowPolicy)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat path")
}
