// Package handler composes routing, context discovery, prompt rendering
// and output post-processing around a single completion call.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/zen-systems/localmux/pkg/artifact"
	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/config"
	"github.com/zen-systems/localmux/pkg/discovery"
	"github.com/zen-systems/localmux/pkg/prompt"
	"github.com/zen-systems/localmux/pkg/router"
)

// ErrNoSuitableBackend is returned when no backend scores above zero for
// a requirement. Routing returning nothing is a valid outcome of the
// router; this layer translates it into an explicit error for callers.
var ErrNoSuitableBackend = errors.New("no capable backend for task")

// Request is one inbound generation request.
type Request struct {
	Prompt      string  `json:"prompt"`
	Domain      string  `json:"domain,omitempty"`
	TaskType    string  `json:"task_type,omitempty"`
	Language    string  `json:"language,omitempty"`
	SourcePath  string  `json:"source_path,omitempty"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Result is the structured outcome of one generation. The artifact
// carries the parsed output blocks and provenance metadata.
type Result struct {
	Artifact     *artifact.Artifact `json:"artifact"`
	Decision     *router.Decision   `json:"decision"`
	ContextFiles []string           `json:"context_files,omitempty"`
	TestFiles    []string           `json:"test_files,omitempty"`
	DocFiles     []string           `json:"doc_files,omitempty"`
}

// Handler serves generation requests.
type Handler struct {
	router     router.Router
	discoverer *discovery.Discoverer
	renderer   *prompt.Renderer
	backends   []backend.Backend
	aliases    *config.ModelAliases
	defaults   config.DefaultsConfig
	debug      bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithAliases sets the model aliases used to resolve request models.
func WithAliases(aliases *config.ModelAliases) Option {
	return func(h *Handler) {
		h.aliases = aliases
	}
}

// WithDefaults sets the request defaults.
func WithDefaults(d config.DefaultsConfig) Option {
	return func(h *Handler) {
		h.defaults = d
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) Option {
	return func(h *Handler) {
		h.debug = debug
	}
}

// New creates a handler over the given router, discoverer and backends.
func New(r router.Router, d *discovery.Discoverer, backends []backend.Backend, opts ...Option) *Handler {
	h := &Handler{
		router:     r,
		discoverer: d,
		renderer:   prompt.NewRenderer(),
		backends:   backends,
		defaults:   config.DefaultsConfig{Domain: "code", TaskType: "generation", MaxTokens: 4096},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Generate routes the request, optionally attaches discovered context,
// completes against the selected backend and parses the output.
func (h *Handler) Generate(ctx context.Context, req Request) (*Result, error) {
	requirement := h.requirement(req)
	result := &Result{}

	input := prompt.Input(prompt.Text(req.Prompt))
	if req.SourcePath != "" {
		files, err := h.discoverer.ContextFiles(req.SourcePath)
		if err != nil {
			return nil, err
		}
		result.ContextFiles = files
		if tests, err := h.discoverer.TestFiles(req.SourcePath); err == nil {
			result.TestFiles = tests
		}
		if docs, err := h.discoverer.DocFiles(req.SourcePath); err == nil {
			result.DocFiles = docs
		}
		input = prompt.Composite{Text: req.Prompt, Files: files}
	}

	selected, decision := h.router.SelectBackend(ctx, requirement, h.backends)
	result.Decision = decision
	if selected == nil {
		return result, fmt.Errorf("%w: domain=%q task=%q", ErrNoSuitableBackend, requirement.Domain, requirement.TaskType)
	}

	model := h.aliases.Resolve(req.Model)
	opts := backend.Options{MaxTokens: req.MaxTokens, Temperature: req.Temperature}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = h.defaults.MaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = h.defaults.Temperature
	}

	if h.debug {
		log.Printf("[handler] backend=%s model=%q context_files=%d", selected.Name(), model, len(result.ContextFiles))
	}

	art, err := selected.Complete(ctx, model, h.renderer.Render(input), opts)
	if err != nil {
		// A backend that went away after probing surfaces as a backend
		// error; retry and fallback belong to the caller.
		return nil, err
	}

	art = art.WithMetadata("domain", requirement.Domain).
		WithMetadata("task_type", requirement.TaskType)
	if requirement.Language != "" {
		art = art.WithMetadata("language", requirement.Language)
	}
	if req.SourcePath != "" {
		art = art.WithMetadata("context_files", strconv.Itoa(len(result.ContextFiles)))
	}

	result.Artifact = art
	return result, nil
}

// Route returns the routing decision for a request without completing.
func (h *Handler) Route(ctx context.Context, req Request) *router.Decision {
	_, decision := h.router.SelectBackend(ctx, h.requirement(req), h.backends)
	return decision
}

// Backends returns the handler's registered backends.
func (h *Handler) Backends() []backend.Backend {
	return h.backends
}

// Discoverer returns the handler's context discoverer.
func (h *Handler) Discoverer() *discovery.Discoverer {
	return h.discoverer
}

func (h *Handler) requirement(req Request) backend.TaskRequirement {
	r := backend.TaskRequirement{
		Domain:   req.Domain,
		TaskType: req.TaskType,
		Language: req.Language,
	}
	if r.Domain == "" {
		r.Domain = h.defaults.Domain
	}
	if r.TaskType == "" {
		r.TaskType = h.defaults.TaskType
	}
	return r
}
