package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamPrinter_StatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *StreamPrinter) error
		want  string
	}{
		{name: "progress", print: func(p *StreamPrinter) error { return p.PrintProgress("Generating diff...") }, want: "⏳ Generating diff..."},
		{name: "info", print: func(p *StreamPrinter) error { return p.PrintInfo("📍 Current branch: feature") }, want: "📍 Current branch: feature"},
		{name: "success", print: func(p *StreamPrinter) error { return p.PrintSuccess("Copied to clipboard!") }, want: "✓ Copied to clipboard!"},
		{name: "warning", print: func(p *StreamPrinter) error { return p.PrintWarning("No changes detected") }, want: "⚠️  No changes detected"},
		{name: "error", print: func(p *StreamPrinter) error { return p.PrintError("something went wrong") }, want: "❌ something went wrong"},
		{name: "dim", print: func(p *StreamPrinter) error { return p.PrintDim(" a.go | 2 +-") }, want: " a.go | 2 +-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer := NewStreamPrinter(&buf, WithColor(false))

			require.NoError(t, tt.print(printer))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestStreamPrinter_PrintDiffStat(t *testing.T) {
	stat := " api/users.go | 3 ++-\n 1 file changed, 2 insertions(+), 1 deletion(-)\n"

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewStreamPrinter(&buf, WithColor(false))
		require.NoError(t, printer.PrintDiffStat(stat))
		assert.Equal(t, " api/users.go | 3 ++-\n 1 file changed, 2 insertions(+), 1 deletion(-)\n", buf.String())
	})

	t.Run("colored keeps text", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewStreamPrinter(&buf, WithColor(true))
		require.NoError(t, printer.PrintDiffStat(stat))
		assert.Contains(t, buf.String(), "api/users.go |")
		assert.Contains(t, buf.String(), "1 file changed")
	})
}

func TestStreamPrinter_PrintStats(t *testing.T) {
	start := time.Now()
	stats := &GenerationStats{
		StartTime:        start,
		EndTime:          start.Add(1500 * time.Millisecond),
		PromptTokens:     100,
		CompletionTokens: 50,
		TotalTokens:      150,
	}
	assert.Equal(t, 1500*time.Millisecond, stats.Duration())

	t.Run("verbose shows tokens", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewStreamPrinter(&buf, WithColor(false), WithVerbose(true))
		require.NoError(t, printer.PrintStats(stats))
		assert.Contains(t, buf.String(), "150 tokens (prompt: 100, completion: 50)")
		assert.Contains(t, buf.String(), "1.50s")
	})

	t.Run("quiet shows time only", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewStreamPrinter(&buf, WithColor(false))
		require.NoError(t, printer.PrintStats(stats))
		assert.NotContains(t, buf.String(), "tokens")
		assert.Contains(t, buf.String(), "1.50s")
	})

	t.Run("nil stats", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewStreamPrinter(&buf).PrintStats(nil))
		assert.Empty(t, buf.String())
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 250 * time.Millisecond, want: "250ms"},
		{in: 999 * time.Millisecond, want: "999ms"},
		{in: 2 * time.Second, want: "2.00s"},
		{in: 12500 * time.Millisecond, want: "12.50s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestStreamPrinter_Newline(t *testing.T) {
	var buf bytes.Buffer
	printer := NewStreamPrinter(&buf, WithColor(false))
	require.NoError(t, printer.PrintInfo("📍 Current branch: feature"))
	require.NoError(t, printer.Newline())
	assert.Equal(t, "📍 Current branch: feature\n\n", buf.String())
}
