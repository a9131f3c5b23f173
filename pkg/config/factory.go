package config

import (
	"fmt"
	"sync"

	"github.com/zen-systems/localmux/pkg/backend"
)

// Factory constructs backends from configuration, caching them by
// configuration identity so each configured backend is built once.
type Factory struct {
	mu    sync.Mutex
	cache map[string]backend.Backend
}

// NewFactory creates a backend factory.
func NewFactory() *Factory {
	return &Factory{cache: make(map[string]backend.Backend)}
}

// Build returns the backend for a configuration, constructing it on first
// use.
func (f *Factory) Build(cfg BackendConfig) (backend.Backend, error) {
	key := cfg.identity()

	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.cache[key]; ok {
		return b, nil
	}

	var (
		b   backend.Backend
		err error
	)
	switch cfg.Kind {
	case "ollama":
		b = backend.NewOllamaBackend(cfg.Name, cfg.URL, cfg.Model, cfg.Profiles)
	case "openai":
		b, err = backend.NewOpenAICompatBackend(cfg.Name, cfg.URL, cfg.APIKey, cfg.Model, cfg.Profiles)
	default:
		err = fmt.Errorf("unknown backend kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", cfg.Name, err)
	}

	f.cache[key] = b
	return b, nil
}

// BuildAll constructs every configured backend, preserving configuration
// order. Registration order is the router's tie-break, so order matters.
func (f *Factory) BuildAll(cfgs []BackendConfig) ([]backend.Backend, error) {
	backends := make([]backend.Backend, 0, len(cfgs))
	for _, cfg := range cfgs {
		b, err := f.Build(cfg)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}
