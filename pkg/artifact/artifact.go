// Package artifact wraps model output in an immutable, hashed record that
// carries routing provenance and the output parsed into blocks.
package artifact

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/zen-systems/localmux/pkg/blocks"
)

// Artifact is one completion result. Content is the raw model output;
// Blocks is the same output split into text and code sections. Metadata
// carries routing provenance (domain, task type, attached context) set by
// the request handler.
type Artifact struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Blocks    []blocks.Block    `json:"blocks,omitempty"`
	Backend   string            `json:"backend"`
	Model     string            `json:"model"`
	Prompt    string            `json:"prompt"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Hash      string            `json:"hash"`
}

// New creates an artifact for a completion, parsing the content into
// blocks and computing the content hash.
func New(content, backend, model, prompt string) *Artifact {
	a := &Artifact{
		ID:        newID(backend, model),
		Content:   content,
		Blocks:    blocks.Parse(content),
		Backend:   backend,
		Model:     model,
		Prompt:    prompt,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now().UTC(),
	}
	a.Hash = a.computeHash()
	return a
}

// WithMetadata returns a copy of the artifact with an additional metadata
// entry. The receiver is never mutated; the hash is unchanged since it
// covers content and provenance only.
func (a *Artifact) WithMetadata(key, value string) *Artifact {
	clone := *a
	clone.Metadata = make(map[string]string, len(a.Metadata)+1)
	for k, v := range a.Metadata {
		clone.Metadata[k] = v
	}
	clone.Metadata[key] = value
	return &clone
}

// CodeBlocks returns only the code blocks of the parsed output.
func (a *Artifact) CodeBlocks() []blocks.Block {
	return blocks.CodeBlocks(a.Blocks)
}

// FirstCode returns the first code block's content, or the empty string
// when the output contained no code.
func (a *Artifact) FirstCode() string {
	return blocks.FirstCode(a.Blocks)
}

func (a *Artifact) computeHash() string {
	h := sha256.New()
	h.Write([]byte(a.Content))
	h.Write([]byte(a.Backend))
	h.Write([]byte(a.Model))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func newID(backend, model string) string {
	h := sha256.New()
	h.Write([]byte(backend))
	h.Write([]byte(model))
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(time.Now().UnixNano()))
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))[:12]
}
