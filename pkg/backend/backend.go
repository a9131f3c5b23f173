// Package backend defines the model-backend contract and the concrete
// clients for locally-hosted model servers.
package backend

import (
	"context"

	"github.com/zen-systems/localmux/pkg/artifact"
)

// Options holds per-completion tuning parameters.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Backend is a reachable or unreachable model-serving endpoint exposing
// one or more capability profiles.
type Backend interface {
	// Name returns the backend's configured identifier.
	Name() string

	// Kind returns the backend's protocol family, e.g. "ollama" or
	// "openai".
	Kind() string

	// URL returns the backend's configured endpoint address, empty when
	// the backend has none.
	URL() string

	// Capabilities returns the backend's declared capability profiles.
	// The returned slice must not be mutated by callers.
	Capabilities() []CapabilityProfile

	// IsReachable probes the backend for liveness. The result is volatile:
	// a backend may become unreachable between probe and use.
	IsReachable(ctx context.Context) bool

	// Complete sends a prompt to the model and returns the output as an
	// artifact. An empty model selects the backend's default.
	Complete(ctx context.Context, model, prompt string, opts Options) (*artifact.Artifact, error)

	// DefaultModel returns the model used when none is specified.
	DefaultModel() string
}

// Info holds display metadata about a backend.
type Info struct {
	Name      string              `json:"name"`
	Kind      string              `json:"kind"`
	URL       string              `json:"url"`
	Model     string              `json:"model"`
	Reachable bool                `json:"reachable"`
	Profiles  []CapabilityProfile `json:"profiles"`
}

// Describe probes a backend and returns its display metadata. Every
// surface listing backends goes through this so they cannot drift apart.
func Describe(ctx context.Context, b Backend) Info {
	return Info{
		Name:      b.Name(),
		Kind:      b.Kind(),
		URL:       b.URL(),
		Model:     b.DefaultModel(),
		Reachable: b.IsReachable(ctx),
		Profiles:  b.Capabilities(),
	}
}
