package backend

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zen-systems/localmux/pkg/artifact"
)

// OpenAICompatBackend serves completions from any server speaking the
// OpenAI chat API, which covers LM Studio, llama.cpp server and vLLM.
type OpenAICompatBackend struct {
	name     string
	client   openai.Client
	model    string
	baseURL  string
	profiles []CapabilityProfile
}

// NewOpenAICompatBackend creates a backend for an OpenAI-compatible local
// server. Local servers typically ignore the API key but some require a
// placeholder, so an empty key is replaced with one.
func NewOpenAICompatBackend(name, baseURL, apiKey, model string, profiles []CapabilityProfile) (*OpenAICompatBackend, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required for openai-compatible backend %q", name)
	}
	if apiKey == "" {
		apiKey = "local"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)
	return &OpenAICompatBackend{
		name:     name,
		client:   client,
		model:    model,
		baseURL:  baseURL,
		profiles: profiles,
	}, nil
}

// Name returns the backend identifier.
func (b *OpenAICompatBackend) Name() string {
	return b.name
}

// Kind returns the protocol family.
func (b *OpenAICompatBackend) Kind() string {
	return "openai"
}

// URL returns the configured base URL.
func (b *OpenAICompatBackend) URL() string {
	return b.baseURL
}

// Capabilities returns the declared capability profiles.
func (b *OpenAICompatBackend) Capabilities() []CapabilityProfile {
	return b.profiles
}

// DefaultModel returns the configured model.
func (b *OpenAICompatBackend) DefaultModel() string {
	return b.model
}

// IsReachable probes the server's model listing endpoint.
func (b *OpenAICompatBackend) IsReachable(ctx context.Context) bool {
	_, err := b.client.Models.List(ctx)
	return err == nil
}

// Complete sends a single-turn chat completion and returns the response.
func (b *OpenAICompatBackend) Complete(ctx context.Context, model, prompt string, opts Options) (*artifact.Artifact, error) {
	if model == "" {
		model = b.model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &BackendError{Backend: b.name, Temporary: true, Err: fmt.Errorf("chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &BackendError{Backend: b.name, Err: fmt.Errorf("server returned no choices")}
	}

	return artifact.New(resp.Choices[0].Message.Content, b.name, model, prompt), nil
}
