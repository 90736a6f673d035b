package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind NodeKind
		text string
	}{
		{"numbered heading", "3. Foo", MainHeading, "3. Foo"},
		{"multi digit heading", "12. Conclusioni", MainHeading, "12. Conclusioni"},
		{"lettered subheading", "B. Bar", SubHeading, "B. Bar"},
		{"plain text", "Just text", Paragraph, "Just text"},
		{"whitespace only", "   \t  ", Blank, ""},
		{"empty", "", Blank, ""},
		{"multi letter prefix", "Re. Subject", Paragraph, "Re. Subject"},
		{"lowercase letter prefix", "a. minore", Paragraph, "a. minore"},
		{"number without space", "1.NoSpace", Paragraph, "1.NoSpace"},
		{"indented heading", "   2. Indentata", MainHeading, "2. Indentata"},
		{"indented text", "    solo testo", Paragraph, "solo testo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.line)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.kind, nodes[0].Kind)
			assert.Equal(t, tt.text, nodes[0].Text)
		})
	}
}

func TestParsePreservesLengthAndOrder(t *testing.T) {
	content := "1. Titolo\n\nA. Sezione\nTesto del paragrafo.\n   \nAltro testo."
	nodes := Parse(content)

	require.Len(t, nodes, 6, "one node per input line")
	assert.Equal(t, []NodeKind{MainHeading, Blank, SubHeading, Paragraph, Blank, Paragraph},
		[]NodeKind{nodes[0].Kind, nodes[1].Kind, nodes[2].Kind, nodes[3].Kind, nodes[4].Kind, nodes[5].Kind})
}

func TestParseIsDeterministic(t *testing.T) {
	content := "1. Uno\nA. Due\n\nTre"
	assert.Equal(t, Parse(content), Parse(content))
}

func TestParseNeverFailsOnMalformedStructure(t *testing.T) {
	// Degenerate AI output still renders as paragraphs, never as an error.
	content := "```\n### markdown heading\n- bullet\n999.no space"
	nodes := Parse(content)
	require.Len(t, nodes, 4)
	for _, n := range nodes {
		assert.Equal(t, Paragraph, n.Kind)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"first heading wins", "1. Hello World\nSome text", "Hello World"},
		{"heading after preamble", "Premessa libera\n\n2. Il Vero Titolo\ntesto", "Il Vero Titolo"},
		{"no heading", "Solo testo\nA. Sottotitolo", FallbackTitle},
		{"empty content", "", FallbackTitle},
		{"indented heading", "  4. Con Spazi  \n", "Con Spazi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.content))
		})
	}
}

func TestExtractTitleNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, ExtractTitle(""))
	assert.NotEmpty(t, ExtractTitle("\n\n\n"))
}
