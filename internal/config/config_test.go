package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5001 {
		t.Errorf("Port = %d, want 5001", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.Sweep.Interval != 60 {
		t.Errorf("Interval = %d, want 60", cfg.Sweep.Interval)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 9000\nsweep:\n  interval: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Sweep.Interval != 5 {
		t.Errorf("Interval = %d, want 5", cfg.Sweep.Interval)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want 127.0.0.1", cfg.Server.Bind)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SELFCARE_LLM__PROVIDER", "ollama")
	t.Setenv("GEMINI_API_KEY", "key-from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.LLM.GeminiKey != "key-from-env" {
		t.Errorf("GeminiKey = %q, want key-from-env", cfg.LLM.GeminiKey)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := *cfg
	bad.LLM.Provider = "claude"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	bad = *cfg
	bad.Sweep.Interval = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero sweep interval")
	}

	bad = *cfg
	bad.Server.Port = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestListenAddr(t *testing.T) {
	cfg, _ := Load("")
	if got := cfg.ListenAddr(); got != "127.0.0.1:5001" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:5001", got)
	}
}
