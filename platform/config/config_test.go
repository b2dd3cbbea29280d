package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/nerve?sslmode=disable")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "development" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: env=%q addr=%q", cfg.Env, cfg.HTTPAddr)
	}
	if cfg.AutoProcessInterval != 10*time.Second {
		t.Fatalf("expected 10s auto-process interval, got %v", cfg.AutoProcessInterval)
	}
	if cfg.BureauScoreFloor != 500 || cfg.BureauScoreCeiling != 750 {
		t.Fatalf("unexpected score band: [%d, %d]", cfg.BureauScoreFloor, cfg.BureauScoreCeiling)
	}
	if cfg.BureauDefaultRegion != "ZA" {
		t.Fatalf("expected ZA region, got %q", cfg.BureauDefaultRegion)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadRejectsInvertedScoreBand(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BUREAU_SCORE_FLOOR", "800")
	t.Setenv("BUREAU_SCORE_CEILING", "600")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for inverted score band")
	}
}

func TestLoadRejectsMalformedNumericValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"RATE_LIMIT_RPS", "twenty"},
		{"RATE_LIMIT_BURST", "4O"},
		{"AUTO_PROCESS_INTERVAL", "10 seconds"},
		{"BUREAU_SCORE_FLOOR", "low"},
		{"BUREAU_SCORE_CEILING", "7.5.0"},
		{"BUREAU_RATE_LIMIT_RPS", "fast"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoadWildcardOriginEnablesAllowAll(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", "https://app.example.com, *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.CORSAllowAll {
		t.Fatalf("wildcard origin must enable allow-all")
	}
}

func TestLoadParsesCSVOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com , https://b.example.com,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example.com" || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}
