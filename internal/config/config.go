package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all selfcare configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	LLM      LLMConfig      `koanf:"llm"`
	Sweep    SweepConfig    `koanf:"sweep"`
}

type ServerConfig struct {
	Bind string `koanf:"bind"`
	Port int    `koanf:"port"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LLMConfig struct {
	Provider    string `koanf:"provider"` // "gemini", "openai", "ollama"
	Model       string `koanf:"model"`
	GeminiKey   string `koanf:"gemini_api_key"`
	OpenAIKey   string `koanf:"openai_api_key"`
	OllamaURL   string `koanf:"ollama_url"`
	OllamaModel string `koanf:"ollama_model"`
}

type SweepConfig struct {
	Interval int `koanf:"interval"` // seconds between reconciliation sweeps
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"bind": "127.0.0.1",
			"port": 5001,
		},
		"database": map[string]interface{}{
			"path": "", // resolved at runtime via store.DefaultDBPath()
		},
		"llm": map[string]interface{}{
			"provider": "gemini",
			"model":    "",
		},
		"sweep": map[string]interface{}{
			"interval": 60,
		},
	}
}

// DefaultConfigPath returns ~/.selfcare/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".selfcare", "config.yaml")
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence. Env keys use the
// SELFCARE_ prefix with double underscores as section separators, e.g.
// SELFCARE_SERVER__PORT. Provider credentials are also read from the
// conventional GEMINI_API_KEY and OPENAI_API_KEY variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("SELFCARE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SELFCARE_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		k.Set("llm.gemini_api_key", key)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		k.Set("llm.openai_api_key", key)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks startup invariants. Credential presence is checked by the
// generation client factory instead, so a missing key degrades the AI
// endpoints rather than refusing to serve reminders.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("unknown llm provider: %q (supported: gemini, openai, ollama)", c.LLM.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %d", c.Sweep.Interval)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
