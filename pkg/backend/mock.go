package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/zen-systems/localmux/pkg/artifact"
)

// MockBackend returns deterministic responses for local runs and tests.
type MockBackend struct {
	name            string
	responses       map[string]string
	defaultResponse string
	profiles        []CapabilityProfile

	mu        sync.Mutex
	reachable bool
	probes    int
}

// NewMockBackend creates a reachable mock backend with a default response.
func NewMockBackend(name string, profiles ...CapabilityProfile) *MockBackend {
	return &MockBackend{
		name:            name,
		responses:       make(map[string]string),
		defaultResponse: "mock response:",
		profiles:        profiles,
		reachable:       true,
	}
}

// WithResponse registers a canned response for an exact prompt.
func (b *MockBackend) WithResponse(prompt, response string) *MockBackend {
	b.responses[prompt] = response
	return b
}

// SetReachable flips the backend's simulated liveness.
func (b *MockBackend) SetReachable(reachable bool) {
	b.mu.Lock()
	b.reachable = reachable
	b.mu.Unlock()
}

// ProbeCount returns how many times IsReachable was called.
func (b *MockBackend) ProbeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.probes
}

// Name returns the backend identifier.
func (b *MockBackend) Name() string {
	return b.name
}

// Kind returns the protocol family.
func (b *MockBackend) Kind() string {
	return "mock"
}

// URL returns the empty string; the mock has no endpoint.
func (b *MockBackend) URL() string {
	return ""
}

// Capabilities returns the declared capability profiles.
func (b *MockBackend) Capabilities() []CapabilityProfile {
	return b.profiles
}

// DefaultModel returns the mock model name.
func (b *MockBackend) DefaultModel() string {
	return "mock-1"
}

// IsReachable returns the simulated liveness state.
func (b *MockBackend) IsReachable(_ context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probes++
	return b.reachable
}

// Complete returns a deterministic artifact for the prompt.
func (b *MockBackend) Complete(_ context.Context, model, prompt string, _ Options) (*artifact.Artifact, error) {
	b.mu.Lock()
	reachable := b.reachable
	b.mu.Unlock()
	if !reachable {
		return nil, &BackendError{Backend: b.name, Temporary: true, Err: fmt.Errorf("backend unreachable")}
	}

	if model == "" {
		model = b.DefaultModel()
	}
	if response, ok := b.responses[prompt]; ok {
		return artifact.New(response, b.name, model, prompt), nil
	}
	content := fmt.Sprintf("%s\n%s", b.defaultResponse, prompt)
	return artifact.New(content, b.name, model, prompt), nil
}
