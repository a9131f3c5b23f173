package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingPathUsesDefaults(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.Backends, 1)
	assert.Equal(t, "ollama", cfg.Backends[0].Kind)
	assert.Equal(t, 10, cfg.ScanConfig().MaxFiles)
	assert.Equal(t, "code", cfg.Defaults.Domain)
	assert.NotNil(t, cfg.Aliases)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - name: studio
    kind: openai
    url: http://localhost:1234/v1
    model: qwen2.5-coder-14b
    profiles:
      - domain: code
        tasks: [generation]
        language_support: [python]
        performance_metrics:
          accuracy: 0.85
scan:
  max_files: 5
defaults:
  task_type: review
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Backends, 1)
	assert.Equal(t, "studio", cfg.Backends[0].Name)
	assert.Equal(t, 0.85, cfg.Backends[0].Profiles[0].Accuracy())
	scan := cfg.ScanConfig()
	assert.Equal(t, 5, scan.MaxFiles)
	// Unset fields still get defaults.
	assert.Equal(t, 3, scan.MaxDepth)
	assert.Equal(t, "review", cfg.Defaults.TaskType)
	assert.Equal(t, "code", cfg.Defaults.Domain)
}

func TestLoad_ExplicitZeroMaxFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - name: local
    kind: ollama
    url: http://localhost:11434
    model: m
scan:
  max_files: 0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	// Zero disables context attachment; it must not be treated as unset.
	assert.Equal(t, 0, cfg.ScanConfig().MaxFiles)
}

func TestLoad_RejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - name: bad
    kind: carrier-pigeon
    url: http://localhost:1
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - name: twin
    kind: ollama
    url: http://localhost:11434
  - name: twin
    kind: ollama
    url: http://localhost:11435
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFactory_CachesByIdentity(t *testing.T) {
	f := NewFactory()
	cfg := BackendConfig{Name: "local", Kind: "ollama", URL: "http://localhost:11434", Model: "m"}

	b1, err := f.Build(cfg)
	require.NoError(t, err)
	b2, err := f.Build(cfg)
	require.NoError(t, err)
	assert.Same(t, b1, b2)

	changed := cfg
	changed.Model = "other"
	b3, err := f.Build(changed)
	require.NoError(t, err)
	assert.NotSame(t, b1, b3)
}

func TestFactory_BuildAllPreservesOrder(t *testing.T) {
	f := NewFactory()
	backends, err := f.BuildAll([]BackendConfig{
		{Name: "a", Kind: "ollama", URL: "http://localhost:11434", Model: "m"},
		{Name: "b", Kind: "openai", URL: "http://localhost:1234/v1", Model: "m"},
	})
	require.NoError(t, err)
	require.Len(t, backends, 2)
	assert.Equal(t, "a", backends[0].Name())
	assert.Equal(t, "b", backends[1].Name())
}

func TestAliases_Resolve(t *testing.T) {
	aliases := DefaultAliases()
	assert.Equal(t, "qwen2.5-coder:7b", aliases.Resolve("code"))
	assert.Equal(t, "unknown-model", aliases.Resolve("unknown-model"))
	assert.True(t, aliases.IsAlias("fast"))
	assert.False(t, aliases.IsAlias("qwen2.5-coder:7b"))
}
