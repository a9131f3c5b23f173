// Package config loads the localmux configuration: backend definitions,
// routing defaults, discovery settings and model aliases.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/discovery"
)

// Config holds the application configuration.
type Config struct {
	Backends []BackendConfig `yaml:"backends"`
	Scan     ScanSettings    `yaml:"scan"`
	Aliases  *ModelAliases   `yaml:"aliases,omitempty"`
	Defaults DefaultsConfig  `yaml:"defaults"`
}

// ScanSettings mirrors discovery.ScanConfig with pointer fields so an
// explicit zero in the file is distinguishable from an absent key.
// "max_files: 0" disables context attachment; leaving it out keeps the
// default cap.
type ScanSettings struct {
	MaxFiles           *int     `yaml:"max_files,omitempty"`
	MaxDepth           *int     `yaml:"max_depth,omitempty"`
	ExcludeDirs        []string `yaml:"exclude_dirs,omitempty"`
	ExcludeExtensions  []string `yaml:"exclude_extensions,omitempty"`
	PriorityExtensions []string `yaml:"priority_extensions,omitempty"`
}

// ScanConfig resolves the scan settings against the discovery defaults.
func (c *Config) ScanConfig() discovery.ScanConfig {
	out := discovery.DefaultScanConfig()
	if c.Scan.MaxFiles != nil {
		out.MaxFiles = *c.Scan.MaxFiles
	}
	if c.Scan.MaxDepth != nil {
		out.MaxDepth = *c.Scan.MaxDepth
	}
	if c.Scan.ExcludeDirs != nil {
		out.ExcludeDirs = c.Scan.ExcludeDirs
	}
	if c.Scan.ExcludeExtensions != nil {
		out.ExcludeExtensions = c.Scan.ExcludeExtensions
	}
	if c.Scan.PriorityExtensions != nil {
		out.PriorityExtensions = c.Scan.PriorityExtensions
	}
	return out
}

// BackendConfig describes one configured model backend.
type BackendConfig struct {
	Name     string                      `yaml:"name"`
	Kind     string                      `yaml:"kind"` // "ollama" or "openai"
	URL      string                      `yaml:"url"`
	APIKey   string                      `yaml:"api_key,omitempty"`
	Model    string                      `yaml:"model"`
	Profiles []backend.CapabilityProfile `yaml:"profiles"`
}

// identity returns the cache key for a constructed backend. Backends are
// constructed once per configuration and reused.
func (c BackendConfig) identity() string {
	return c.Name + "|" + c.Kind + "|" + c.URL + "|" + c.Model
}

// DefaultsConfig holds request defaults.
type DefaultsConfig struct {
	Domain      string  `yaml:"domain"`
	TaskType    string  `yaml:"task_type"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	ProbeTTLSec int     `yaml:"probe_ttl_seconds"`
}

// Load reads configuration from the given path, falling back to
// ~/.localmux/config.yaml and then to defaults when no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".localmux", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration: a single Ollama backend on
// the standard local port.
func Default() *Config {
	cfg := &Config{
		Backends: []BackendConfig{
			{
				Name:  "ollama",
				Kind:  "ollama",
				URL:   "http://localhost:11434",
				Model: "qwen2.5-coder:7b",
				Profiles: []backend.CapabilityProfile{
					{
						Domain:          "code",
						Tasks:           []string{"generation", "review", "refactor", "explain"},
						LanguageSupport: []string{"python", "go", "javascript", "typescript", "rust"},
					},
				},
			},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Defaults.Domain == "" {
		cfg.Defaults.Domain = "code"
	}
	if cfg.Defaults.TaskType == "" {
		cfg.Defaults.TaskType = "generation"
	}
	if cfg.Defaults.MaxTokens == 0 {
		cfg.Defaults.MaxTokens = 4096
	}
	if cfg.Defaults.ProbeTTLSec == 0 {
		cfg.Defaults.ProbeTTLSec = 30
	}
	if cfg.Aliases == nil {
		cfg.Aliases = DefaultAliases()
	}
}

func validate(cfg *Config) error {
	seen := make(map[string]struct{})
	for _, b := range cfg.Backends {
		if b.Name == "" {
			return fmt.Errorf("backend with empty name")
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("duplicate backend name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		switch b.Kind {
		case "ollama", "openai":
		default:
			return fmt.Errorf("backend %q: unknown kind %q", b.Name, b.Kind)
		}
	}
	return nil
}
