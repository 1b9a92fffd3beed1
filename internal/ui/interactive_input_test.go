package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiline_NormalInput(t *testing.T) {
	input := strings.NewReader("## Summary\n**Ticket:** {{TICKET_OR_SKIP}}\n## Notes\n\x04") // \x04 is Ctrl+D
	output := &bytes.Buffer{}

	p := NewPrompter(input, output)
	result, err := p.Multiline(MultilinePrompt{
		Prompt: "Template structure:",
		Hint:   "Finish with Ctrl+D or a line containing a single dot (.)",
		Examples: []string{
			"**What was done:**",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "## Summary\n**Ticket:** {{TICKET_OR_SKIP}}\n## Notes", result)

	outputStr := output.String()
	assert.Contains(t, outputStr, "Template structure:")
	assert.Contains(t, outputStr, "single dot")
	assert.Contains(t, outputStr, "**What was done:**")
}

func TestMultiline_Terminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dot line", input: "first\nsecond\n.\nignored\n", want: "first\nsecond"},
		{name: "dot line with spaces", input: "first\n  .  \n", want: "first"},
		{name: "eof", input: "first\nsecond", want: "first\nsecond"},
		{name: "ctrl+d mid line", input: "first\nsec\x04ond\n", want: "first\nsec"},
		{name: "keeps inner blank lines", input: "a\n\nb\n.\n", want: "a\n\nb"},
		{name: "windows line endings", input: "a\r\nb\r\n.\r\n", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
			result, err := p.Multiline(MultilinePrompt{Prompt: "Structure:"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestMultiline_EmptyInput(t *testing.T) {
	for _, input := range []string{"\x04", "", "\n\n.\n", "   \n"} {
		p := NewPrompter(strings.NewReader(input), &bytes.Buffer{})
		result, err := p.Multiline(MultilinePrompt{Prompt: "Structure:"})
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", input)
		assert.Empty(t, result)
	}
}

func TestMultiline_LeavesFollowingLines(t *testing.T) {
	input := strings.NewReader("body line\n.\nnext answer\n")
	p := NewPrompter(input, &bytes.Buffer{})

	body, err := p.Multiline(MultilinePrompt{Prompt: "Structure:"})
	require.NoError(t, err)
	assert.Equal(t, "body line", body)

	next, err := p.Input("Ticket:", "")
	require.NoError(t, err)
	assert.Equal(t, "next answer", next)
}
