// Package blocks splits raw model output into structured text and code
// blocks so callers can address code separately from surrounding prose.
package blocks

import "strings"

// Kind identifies the type of a parsed block.
type Kind string

const (
	// KindText is prose outside any code fence.
	KindText Kind = "text"
	// KindCode is the contents of a fenced code block.
	KindCode Kind = "code"
)

// Block is one contiguous section of model output.
type Block struct {
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// Parse splits model output on triple-backtick fences. An unterminated
// fence runs to the end of input and is still treated as code. Fences must
// start at the beginning of a line; inline backticks are left alone.
func Parse(text string) []Block {
	var out []Block
	lines := strings.Split(text, "\n")

	var buf []string
	inCode := false
	lang := ""

	flush := func(kind Kind, language string) {
		content := strings.Join(buf, "\n")
		buf = buf[:0]
		if kind == KindText && strings.TrimSpace(content) == "" {
			return
		}
		out = append(out, Block{Kind: kind, Language: language, Content: content})
	}

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				flush(KindCode, lang)
				inCode = false
				lang = ""
			} else {
				flush(KindText, "")
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			}
			continue
		}
		buf = append(buf, line)
	}

	if inCode {
		flush(KindCode, lang)
	} else {
		flush(KindText, "")
	}

	return out
}

// CodeBlocks returns only the code blocks from parsed output.
func CodeBlocks(bs []Block) []Block {
	var code []Block
	for _, b := range bs {
		if b.Kind == KindCode {
			code = append(code, b)
		}
	}
	return code
}

// FirstCode returns the first code block's content, or the empty string.
func FirstCode(bs []Block) string {
	for _, b := range bs {
		if b.Kind == KindCode {
			return b.Content
		}
	}
	return ""
}
