// Package config loads and persists docktor configuration from
// .docktor/config.yaml, with environment variable overrides applied on
// top of whatever the file provides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all docktor configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM collaborator configuration
	LLM LLMConfig `yaml:"llm"`

	// Analyzer behavior
	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the Gemini analysis collaborator.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// AnalyzerConfig configures report and history behavior.
type AnalyzerConfig struct {
	ReportPath  string `yaml:"report_path"`
	SaveHistory bool   `yaml:"save_history"`
	HistoryDir  string `yaml:"history_dir"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// LoggingConfig controls the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json_format"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Name:    "docktor",
		Version: "1.0.0",
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-3-flash-preview",
			BaseURL:  "https://generativelanguage.googleapis.com/v1beta",
			Timeout:  "2m",
		},
		Analyzer: AnalyzerConfig{
			ReportPath:  "dockerfile_analysis_report.md",
			SaveHistory: true,
			HistoryDir:  ".docktor",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .docktor/config.yaml from the workspace, falling back to
// defaults when the file does not exist, then applies environment
// overrides.
func Load(workspace string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(workspace, ".docktor", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to .docktor/config.yaml in the workspace.
func (c *Config) Save(workspace string) error {
	dir := filepath.Join(workspace, ".docktor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file. GEMINI_API_KEY
// takes precedence over GOOGLE_API_KEY when both are set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("DOCKTOR_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("DOCKTOR_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if os.Getenv("DOCKTOR_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// LLMTimeout parses the configured LLM timeout, defaulting to 2 minutes
// on a missing or malformed value.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// WatchDebounce parses the watch debounce interval, defaulting to 500ms.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
