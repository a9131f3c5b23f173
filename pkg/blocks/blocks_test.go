package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "plain text",
			in:   "just prose",
			want: []Block{{Kind: KindText, Content: "just prose"}},
		},
		{
			name: "single code block with language",
			in:   "intro\n```go\nfunc main() {}\n```\noutro",
			want: []Block{
				{Kind: KindText, Content: "intro"},
				{Kind: KindCode, Language: "go", Content: "func main() {}"},
				{Kind: KindText, Content: "outro"},
			},
		},
		{
			name: "unterminated fence runs to end",
			in:   "```python\nprint('hi')",
			want: []Block{
				{Kind: KindCode, Language: "python", Content: "print('hi')"},
			},
		},
		{
			name: "fence without language",
			in:   "```\nraw\n```",
			want: []Block{{Kind: KindCode, Content: "raw"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "inline backticks are not fences",
			in:   "use `fmt.Println` here",
			want: []Block{{Kind: KindText, Content: "use `fmt.Println` here"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestCodeBlocks(t *testing.T) {
	parsed := Parse("a\n```js\n1\n```\nb\n```js\n2\n```")
	code := CodeBlocks(parsed)
	require.Len(t, code, 2)
	assert.Equal(t, "1", code[0].Content)
	assert.Equal(t, "2", code[1].Content)
}

func TestFirstCode(t *testing.T) {
	parsed := Parse("prose\n```sh\necho hi\n```")
	assert.Equal(t, "echo hi", FirstCode(parsed))
	assert.Equal(t, "", FirstCode(Parse("no code")))
}
