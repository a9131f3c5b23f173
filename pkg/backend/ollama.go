package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"github.com/zen-systems/localmux/pkg/artifact"
)

// OllamaBackend serves completions from a local Ollama daemon.
type OllamaBackend struct {
	name     string
	client   *api.Client
	model    string
	hostURL  string
	profiles []CapabilityProfile
}

// NewOllamaBackend creates a backend for an Ollama server. hostURL is the
// daemon address (e.g. "http://localhost:11434"); an unparseable URL falls
// back to the default address.
func NewOllamaBackend(name, hostURL, model string, profiles []CapabilityProfile) *OllamaBackend {
	parsedURL, err := url.Parse(hostURL)
	if err != nil || parsedURL.Host == "" {
		parsedURL, _ = url.Parse("http://localhost:11434")
	}

	return &OllamaBackend{
		name:     name,
		client:   api.NewClient(parsedURL, http.DefaultClient),
		model:    model,
		hostURL:  hostURL,
		profiles: profiles,
	}
}

// Name returns the backend identifier.
func (b *OllamaBackend) Name() string {
	return b.name
}

// Kind returns the protocol family.
func (b *OllamaBackend) Kind() string {
	return "ollama"
}

// URL returns the configured daemon address.
func (b *OllamaBackend) URL() string {
	return b.hostURL
}

// Capabilities returns the declared capability profiles.
func (b *OllamaBackend) Capabilities() []CapabilityProfile {
	return b.profiles
}

// DefaultModel returns the configured model.
func (b *OllamaBackend) DefaultModel() string {
	return b.model
}

// IsReachable probes the daemon's version endpoint.
func (b *OllamaBackend) IsReachable(ctx context.Context) bool {
	_, err := b.client.Version(ctx)
	return err == nil
}

// Complete sends a single-turn chat request and returns the response.
func (b *OllamaBackend) Complete(ctx context.Context, model, prompt string, opts Options) (*artifact.Artifact, error) {
	if model == "" {
		model = b.model
	}

	stream := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": opts.Temperature,
		},
	}
	if opts.MaxTokens > 0 {
		req.Options["num_predict"] = opts.MaxTokens
	}

	var response api.ChatResponse
	err := b.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		return nil, &BackendError{Backend: b.name, Temporary: true, Err: fmt.Errorf("ollama chat: %w", err)}
	}

	return artifact.New(response.Message.Content, b.name, model, prompt), nil
}
