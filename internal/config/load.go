// Package config loads the proxy's startup configuration: an optional YAML
// file layered under environment-variable overrides. The result is an
// immutable snapshot constructed once and passed by value into every
// request-handling task; nothing mutates it after startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment says otherwise.
const (
	DefaultListenAddr  = "0.0.0.0:3000"
	DefaultModel       = "claude-sonnet-4-5-20250929"
	DefaultFrontendDir = "../frontend"

	// ModeCLI runs requests through the local Claude Code CLI; ModeAPI is
	// the declared-but-unimplemented HTTP API variant.
	ModeCLI = "cli"
	ModeAPI = "api"
)

// Config describes the triagewizard YAML configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Claude  ClaudeConfig  `yaml:"claude"`
	Keys    KeysConfig    `yaml:"keys"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	FrontendDir string `yaml:"frontend_dir"`
	NoOpen      bool   `yaml:"no_open"`
}

// ClaudeConfig selects the Claude backend mode and model.
type ClaudeConfig struct {
	Mode   string `yaml:"mode"`
	Model  string `yaml:"model"`
	Binary string `yaml:"binary"`
}

// KeysConfig carries API credentials for the provider variants that need
// them. Only read by the stubbed providers today.
type KeysConfig struct {
	Anthropic string `yaml:"anthropic_api_key"`
	Gemini    string `yaml:"gemini_api_key"`
	OpenAI    string `yaml:"openai_api_key"`
}

// HistoryConfig enables the DuckDB invocation log when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Load reads the configuration file at path (skipped when path is empty),
// fills defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets the environment override file values, preserving the
// variable names the original deployment documented.
func (cfg *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.ListenAddr = "0.0.0.0:" + port
	}
	setEnvString(&cfg.Server.FrontendDir, "FRONTEND_DIR")
	if os.Getenv("NO_OPEN") != "" {
		cfg.Server.NoOpen = true
	}
	setEnvString(&cfg.Claude.Mode, "CLAUDE_BACKEND_MODE")
	setEnvString(&cfg.Claude.Model, "CLAUDE_MODEL")
	setEnvString(&cfg.Claude.Binary, "CLAUDE_BINARY")
	setEnvString(&cfg.Keys.Anthropic, "ANTHROPIC_API_KEY")
	setEnvString(&cfg.Keys.Gemini, "GEMINI_API_KEY")
	setEnvString(&cfg.Keys.OpenAI, "OPENAI_API_KEY")
	setEnvString(&cfg.History.Path, "HISTORY_DB")
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.FrontendDir == "" {
		cfg.Server.FrontendDir = DefaultFrontendDir
	}
	if cfg.Claude.Mode == "" {
		cfg.Claude.Mode = ModeCLI
	}
	if cfg.Claude.Model == "" {
		cfg.Claude.Model = DefaultModel
	}
}

func (cfg Config) validate() error {
	if cfg.Claude.Mode != ModeCLI && cfg.Claude.Mode != ModeAPI {
		return fmt.Errorf("claude.mode must be %q or %q, got %q", ModeCLI, ModeAPI, cfg.Claude.Mode)
	}
	return nil
}

func setEnvString(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}
