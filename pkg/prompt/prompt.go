// Package prompt models prompt input as a tagged variant and renders
// discovered context files into the final prompt text.
package prompt

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Input is either plain Text or a Composite of text plus context files.
// The variant is resolved once at the call boundary.
type Input interface {
	isInput()
}

// Text is a prompt with no attached context.
type Text string

func (Text) isInput() {}

// Composite is a prompt with discovered context files attached.
type Composite struct {
	Text  string
	Files []string
}

func (Composite) isInput() {}

// Resolve normalizes an input into its text and file list.
func Resolve(in Input) (text string, files []string) {
	switch v := in.(type) {
	case Text:
		return string(v), nil
	case Composite:
		return v.Text, v.Files
	default:
		return "", nil
	}
}

// defaultMaxFileBytes caps how much of each context file is inlined.
const defaultMaxFileBytes = 1 << 20

// Renderer builds the final prompt from an input variant.
type Renderer struct {
	maxFileBytes int64
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithMaxFileBytes sets the per-file inline size cap.
func WithMaxFileBytes(n int64) RendererOption {
	return func(r *Renderer) {
		r.maxFileBytes = n
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{maxFileBytes: defaultMaxFileBytes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the prompt text. Context files that cannot be read are
// logged and skipped; a partially-broken tree never fails the render.
func (r *Renderer) Render(in Input) string {
	text, files := Resolve(in)
	if len(files) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\nRelevant project files:\n")
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil || info.Size() > r.maxFileBytes {
			if err != nil {
				log.Printf("[prompt] skipping context file %s: %v", path, err)
			}
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[prompt] skipping context file %s: %v", path, err)
			continue
		}
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", path, content)
	}
	return b.String()
}
