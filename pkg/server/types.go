package server

import (
	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/blocks"
	"github.com/zen-systems/localmux/pkg/router"
)

// --- MCP tool input/output types ---
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// GenerateInput is the input for the generate tool.
type GenerateInput struct {
	Prompt      string  `json:"prompt" jsonschema:"the task prompt to send to a model"`
	Domain      string  `json:"domain,omitempty" jsonschema:"task domain (default: code)"`
	TaskType    string  `json:"taskType,omitempty" jsonschema:"task type, e.g. generation, review, refactor (default: generation)"`
	Language    string  `json:"language,omitempty" jsonschema:"programming language of the task, if any"`
	SourcePath  string  `json:"sourcePath,omitempty" jsonschema:"source file whose related files are attached as context"`
	Model       string  `json:"model,omitempty" jsonschema:"model name or alias overriding the backend default"`
	MaxTokens   int     `json:"maxTokens,omitempty" jsonschema:"completion token cap"`
	Temperature float64 `json:"temperature,omitempty" jsonschema:"sampling temperature"`
}

// GenerateOutput is the result of the generate tool.
type GenerateOutput struct {
	Content      string           `json:"content"`
	Blocks       []blocks.Block   `json:"blocks"`
	Backend      string           `json:"backend"`
	Model        string           `json:"model"`
	Decision     *router.Decision `json:"decision,omitempty"`
	ContextFiles []string         `json:"contextFiles,omitempty"`
}

// RouteTaskInput is the input for the route_task tool.
type RouteTaskInput struct {
	Domain   string `json:"domain" jsonschema:"task domain to route"`
	TaskType string `json:"taskType" jsonschema:"task type to route"`
	Language string `json:"language,omitempty" jsonschema:"programming language of the task, if any"`
}

// RouteTaskOutput is the result of the route_task tool.
type RouteTaskOutput struct {
	Decision *router.Decision `json:"decision"`
}

// GetContextInput is the input for the get_context tool.
type GetContextInput struct {
	SourcePath string `json:"sourcePath" jsonschema:"source file to discover related files for"`
}

// GetContextOutput is the result of the get_context tool.
type GetContextOutput struct {
	ContextFiles []string `json:"contextFiles"`
	TestFiles    []string `json:"testFiles"`
	DocFiles     []string `json:"docFiles"`
}

// ListBackendsInput is the input for the list_backends tool.
type ListBackendsInput struct{}

// ListBackendsOutput is the result of the list_backends tool.
type ListBackendsOutput struct {
	Backends []backend.Info `json:"backends"`
}
