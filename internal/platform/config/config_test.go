package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"studydesk/internal/platform/config"
)

func TestLoadReadsFileAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studydesk.yaml")
	body := "api:\n  base_url: http://study.local:9000/api/\n  timeout: 5s\nfocus:\n  minutes: 50\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://study.local:9000/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.FocusDuration() != 50*time.Minute {
		t.Fatalf("expected 50 minute focus run, got %s", cfg.FocusDuration())
	}
	if cfg.FlashcardCount != config.DefaultFlashcardCount {
		t.Fatalf("expected default flashcard count, got %d", cfg.FlashcardCount)
	}
	if cfg.ConfigFile != path {
		t.Fatalf("expected config file %s, got %s", path, cfg.ConfigFile)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studydesk.yaml")
	if err := os.WriteFile(path, []byte("log:\n  mode: prod\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STUDYDESK_API_BASE_URL", "https://api.example.com/api")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Fatalf("expected env override, got %q", cfg.APIBaseURL)
	}
	if cfg.LogMode != "prod" {
		t.Fatalf("expected log mode from file, got %q", cfg.LogMode)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	base := config.Config{APIBaseURL: "http://localhost:8001/api", Timeout: time.Second, FocusMinutes: 25, FlashcardCount: 5}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]func(c *config.Config){
		"relative url": func(c *config.Config) { c.APIBaseURL = "/api" },
		"zero timeout": func(c *config.Config) { c.Timeout = 0 },
		"zero focus":   func(c *config.Config) { c.FocusMinutes = 0 },
		"zero cards":   func(c *config.Config) { c.FlashcardCount = 0 },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
