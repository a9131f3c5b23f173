// Package server exposes routing, generation and context discovery as MCP
// tools over stdio or streamable HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/handler"
)

// version is set by the linker at build time.
var version = "dev"

// Service holds the request handler used by MCP tool handlers.
type Service struct {
	handler *handler.Handler
}

// NewService creates a Service over a request handler.
func NewService(h *handler.Handler) *Service {
	return &Service{handler: h}
}

// Generate routes the prompt to the best backend, optionally attaching
// discovered file context, and returns the parsed output.
func (s *Service) Generate(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
	if input.Prompt == "" {
		return nil, GenerateOutput{}, fmt.Errorf("prompt is required")
	}

	result, err := s.handler.Generate(ctx, handler.Request{
		Prompt:      input.Prompt,
		Domain:      input.Domain,
		TaskType:    input.TaskType,
		Language:    input.Language,
		SourcePath:  input.SourcePath,
		Model:       input.Model,
		MaxTokens:   input.MaxTokens,
		Temperature: input.Temperature,
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		Content:      result.Artifact.Content,
		Blocks:       result.Artifact.Blocks,
		Backend:      result.Artifact.Backend,
		Model:        result.Artifact.Model,
		Decision:     result.Decision,
		ContextFiles: result.ContextFiles,
	}, nil
}

// RouteTask returns the routing decision for a requirement without
// generating anything.
func (s *Service) RouteTask(ctx context.Context, _ *mcp.CallToolRequest, input RouteTaskInput) (*mcp.CallToolResult, RouteTaskOutput, error) {
	if input.Domain == "" || input.TaskType == "" {
		return nil, RouteTaskOutput{}, fmt.Errorf("domain and taskType are required")
	}

	decision := s.handler.Route(ctx, handler.Request{
		Domain:   input.Domain,
		TaskType: input.TaskType,
		Language: input.Language,
	})
	return nil, RouteTaskOutput{Decision: decision}, nil
}

// GetContext discovers related, test and documentation files for a source
// file.
func (s *Service) GetContext(_ context.Context, _ *mcp.CallToolRequest, input GetContextInput) (*mcp.CallToolResult, GetContextOutput, error) {
	if input.SourcePath == "" {
		return nil, GetContextOutput{}, fmt.Errorf("sourcePath is required")
	}

	d := s.handler.Discoverer()
	files, err := d.ContextFiles(input.SourcePath)
	if err != nil {
		return nil, GetContextOutput{}, err
	}
	tests, _ := d.TestFiles(input.SourcePath)
	docs, _ := d.DocFiles(input.SourcePath)

	return nil, GetContextOutput{
		ContextFiles: files,
		TestFiles:    tests,
		DocFiles:     docs,
	}, nil
}

// ListBackends reports every configured backend with its probed
// reachability. Probes fan out concurrently; the first failure does not
// stop the rest since each probe only flips its own flag.
func (s *Service) ListBackends(ctx context.Context, _ *mcp.CallToolRequest, _ ListBackendsInput) (*mcp.CallToolResult, ListBackendsOutput, error) {
	backends := s.handler.Backends()
	infos := make([]backend.Info, len(backends))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range backends {
		g.Go(func() error {
			infos[i] = backend.Describe(gctx, b)
			return nil
		})
	}
	_ = g.Wait()

	return nil, ListBackendsOutput{Backends: infos}, nil
}

// NewMCPServer creates an MCP server with all localmux tools registered.
func NewMCPServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "localmux",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Route a coding or reasoning task to the most capable local model backend and return its output split into text and code blocks. Optionally attaches files related to sourcePath as context.",
	}, svc.Generate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "route_task",
		Description: "Dry-run backend selection for a task requirement. Returns the per-backend capability score breakdown and the winner without generating anything.",
	}, svc.RouteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_context",
		Description: "Discover files related to a source file: resolved imports and scored siblings, plus associated test and documentation files.",
	}, svc.GetContext)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_backends",
		Description: "List configured model backends with their capability profiles and current reachability.",
	}, svc.ListBackends)

	return server
}

// RunStdio serves the MCP tools over stdio until the context is done.
func RunStdio(ctx context.Context, svc *Service) error {
	return NewMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP tools over streamable HTTP.
func RunHTTP(ctx context.Context, svc *Service, addr string) error {
	server := NewMCPServer(svc)

	mcpHandler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mcpHandler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
