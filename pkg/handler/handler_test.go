package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/discovery"
	"github.com/zen-systems/localmux/pkg/router"
)

func newTestHandler(backends ...backend.Backend) *Handler {
	return New(router.NewRouter(), discovery.NewDiscoverer(discovery.DefaultScanConfig()), backends)
}

func TestGenerate_ParsesBlocks(t *testing.T) {
	b := backend.NewMockBackend("local", backend.CapabilityProfile{
		Domain: "code",
		Tasks:  []string{"generation"},
	})
	b.WithResponse("write hello", "Here you go:\n```go\nfunc main() {}\n```")

	h := newTestHandler(b)
	result, err := h.Generate(context.Background(), Request{Prompt: "write hello"})
	require.NoError(t, err)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, "local", result.Artifact.Backend)

	code := result.Artifact.CodeBlocks()
	require.Len(t, code, 1)
	assert.Equal(t, "go", code[0].Language)
	assert.Equal(t, "func main() {}", code[0].Content)
}

func TestGenerate_StampsProvenanceMetadata(t *testing.T) {
	b := backend.NewMockBackend("local", backend.CapabilityProfile{
		Domain:          "code",
		Tasks:           []string{"review"},
		LanguageSupport: []string{"go"},
	})

	h := newTestHandler(b)
	result, err := h.Generate(context.Background(), Request{
		Prompt:   "review this",
		Domain:   "code",
		TaskType: "review",
		Language: "go",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, "code", result.Artifact.Metadata["domain"])
	assert.Equal(t, "review", result.Artifact.Metadata["task_type"])
	assert.Equal(t, "go", result.Artifact.Metadata["language"])
}

func TestGenerate_NoSuitableBackend(t *testing.T) {
	b := backend.NewMockBackend("prose", backend.CapabilityProfile{
		Domain: "writing",
		Tasks:  []string{"summarize"},
	})

	h := newTestHandler(b)
	result, err := h.Generate(context.Background(), Request{Prompt: "x", Domain: "code", TaskType: "generation"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSuitableBackend)
	// The decision is still reported so callers can explain the refusal.
	require.NotNil(t, result)
	require.NotNil(t, result.Decision)
	assert.Empty(t, result.Decision.Selected)
}

func TestGenerate_AllBackendsUnreachable(t *testing.T) {
	b := backend.NewMockBackend("down", backend.CapabilityProfile{
		Domain: "code",
		Tasks:  []string{"generation"},
	})
	b.SetReachable(false)

	h := newTestHandler(b)
	_, err := h.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoSuitableBackend)
}

func TestGenerate_AttachesDiscoveredContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(src, []byte(`const b = require('./b.js');`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte(`module.exports = 1;`), 0o644))

	b := backend.NewMockBackend("local", backend.CapabilityProfile{
		Domain: "code",
		Tasks:  []string{"generation"},
	})

	h := newTestHandler(b)
	result, err := h.Generate(context.Background(), Request{Prompt: "explain", SourcePath: src})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ContextFiles)
	// The rendered prompt reaches the backend with the file inlined, and
	// the artifact records how much context was attached.
	assert.Contains(t, result.Artifact.Prompt, "b.js")
	assert.Equal(t, "1", result.Artifact.Metadata["context_files"])
}

func TestGenerate_MissingSourceIsFatal(t *testing.T) {
	b := backend.NewMockBackend("local", backend.CapabilityProfile{
		Domain: "code",
		Tasks:  []string{"generation"},
	})

	h := newTestHandler(b)
	_, err := h.Generate(context.Background(), Request{
		Prompt:     "explain",
		SourcePath: filepath.Join(t.TempDir(), "absent.js"),
	})
	assert.ErrorIs(t, err, discovery.ErrSourceNotFound)
}

func TestRoute_DryRun(t *testing.T) {
	b := backend.NewMockBackend("local", backend.CapabilityProfile{
		Domain: "code",
		Tasks:  []string{"generation"},
	})

	h := newTestHandler(b)
	decision := h.Route(context.Background(), Request{Domain: "code", TaskType: "generation"})
	require.NotNil(t, decision)
	assert.Equal(t, "local", decision.Selected)
	assert.Equal(t, 20.0, decision.BestScore)
}
