package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Heading", input: "# Hello", expected: "<h1 id=\"hello\">Hello</h1>"},
		{name: "GFM Table", input: "| A | B |\n|---|---|\n| 1 | 2 |", expected: "<table>"},
		{name: "GFM Task List", input: "- [ ] Task 1\n- [x] Task 2", expected: "<input disabled=\"\" type=\"checkbox\""},
		{name: "GFM Strikethrough", input: "~~deleted~~", expected: "<del>deleted</del>"},
		{name: "Highlighted code", input: "```go\nfunc main() {}\n```", expected: "class=\"chroma\""},
		{name: "Empty", input: "", expected: ""},
	}

	r := NewMarkdownRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render([]byte(tt.input))
			require.NoError(t, err)
			if tt.expected == "" {
				assert.Empty(t, strings.TrimSpace(string(out)))
				return
			}
			assert.Contains(t, string(out), tt.expected)
		})
	}
}

func TestMarkdownRenderer_DropsRawHTML(t *testing.T) {
	out, err := NewMarkdownRenderer().Render([]byte("<script>alert(1)</script>\n\nhello"))
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "raw HTML omitted")
	assert.Contains(t, string(out), "hello")
}
