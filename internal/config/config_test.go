package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
jwt:
  secret: dev-secret
ledger:
  retry_backoff: 5ms
  points:
    MILESTONE_COMPLETE: 80
scoring:
  prep_windows:
    - min_gap: 50
      label: later
    - min_gap: 0
      label: soon
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Catalog.Source != "local" || cfg.Catalog.WeightTolerance != 0.01 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.JWT.ExpireTime != 72*time.Hour {
		t.Fatalf("expire=%v", cfg.JWT.ExpireTime)
	}
	if cfg.Ledger.RetryBackoff != 5*time.Millisecond || cfg.Ledger.MaxRetries != 3 || cfg.Ledger.HeatmapDays != 365 {
		t.Fatalf("ledger=%+v", cfg.Ledger)
	}
	// viper 会把 map key 转成小写
	found := false
	for k, v := range cfg.Ledger.Points {
		if strings.EqualFold(k, "MILESTONE_COMPLETE") && v == 80 {
			found = true
		}
	}
	if !found {
		t.Fatalf("points override lost: %v", cfg.Ledger.Points)
	}
	if len(cfg.Scoring.PrepWindows) != 2 || cfg.Scoring.PrepWindows[0].Label != "later" {
		t.Fatalf("prep windows=%+v", cfg.Scoring.PrepWindows)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Mode: "debug"},
			Database: DatabaseConfig{Driver: "sqlite"},
			JWT:      JWTConfig{Secret: "short"},
			Catalog:  CatalogConfig{Source: "local"},
			Scoring:  ScoringConfig{ReadinessRatio: 0.6},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"short secret in release": func(c *Config) { c.Server.Mode = "release" },
		"unknown driver":          func(c *Config) { c.Database.Driver = "postgres" },
		"unknown catalog source":  func(c *Config) { c.Catalog.Source = "ftp" },
		"negative retries":        func(c *Config) { c.Ledger.MaxRetries = -1 },
		"readiness above one":     func(c *Config) { c.Scoring.ReadinessRatio = 1.5 },
		"heatmap over a year":     func(c *Config) { c.Ledger.HeatmapDays = 400 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}
