package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	text, files := Resolve(Text("hello"))
	assert.Equal(t, "hello", text)
	assert.Nil(t, files)

	text, files = Resolve(Composite{Text: "hello", Files: []string{"a.go"}})
	assert.Equal(t, "hello", text)
	assert.Equal(t, []string{"a.go"}, files)
}

func TestRender_TextPassthrough(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "just text", r.Render(Text("just text")))
}

func TestRender_AttachesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "util.go")
	require.NoError(t, os.WriteFile(path, []byte("package util"), 0o644))

	r := NewRenderer()
	out := r.Render(Composite{Text: "fix the bug", Files: []string{path}})
	assert.Contains(t, out, "fix the bug")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "package util")
}

func TestRender_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.go")
	require.NoError(t, os.WriteFile(good, []byte("package good"), 0o644))
	missing := filepath.Join(dir, "gone.go")

	r := NewRenderer()
	out := r.Render(Composite{Text: "prompt", Files: []string{missing, good}})
	assert.Contains(t, out, "package good")
	assert.NotContains(t, out, "gone.go")
}

func TestRender_SkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, make([]byte, 64), 0o644))

	r := NewRenderer(WithMaxFileBytes(16))
	out := r.Render(Composite{Text: "prompt", Files: []string{big}})
	assert.NotContains(t, out, "big.txt")
}
