package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// GenerationStats describes one completion call
type GenerationStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the time the call took
func (s *GenerationStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// StreamPrinterOption is a functional option for StreamPrinter
type StreamPrinterOption func(*StreamPrinter)

// WithColor enables or disables color output
func WithColor(enabled bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.colorEnabled = enabled
	}
}

// WithVerbose shows token counts in stats
func WithVerbose(verbose bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.verbose = verbose
	}
}

// StreamPrinter writes the status lines of a run
type StreamPrinter struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewStreamPrinter creates a new StreamPrinter
func NewStreamPrinter(writer io.Writer, opts ...StreamPrinterOption) *StreamPrinter {
	p := &StreamPrinter{
		writer:       writer,
		colorEnabled: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type statusKind int

const (
	statusProgress statusKind = iota
	statusInfo
	statusSuccess
	statusWarning
	statusError
	statusDim
)

var statusStyles = map[statusKind]struct {
	prefix string
	attr   color.Attribute
}{
	statusProgress: {"⏳ ", color.FgHiBlack},
	statusInfo:     {"", color.FgBlue},
	statusSuccess:  {"✓ ", color.FgGreen},
	statusWarning:  {"⚠️  ", color.FgYellow},
	statusError:    {"❌ ", color.FgRed},
	statusDim:      {"", color.FgHiBlack},
}

func (p *StreamPrinter) colorize(attr color.Attribute, s string) string {
	if !p.colorEnabled {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (p *StreamPrinter) status(kind statusKind, message string) error {
	style := statusStyles[kind]
	_, err := fmt.Fprintln(p.writer, p.colorize(style.attr, style.prefix+message))
	return err
}

// PrintProgress prints a step that is under way
func (p *StreamPrinter) PrintProgress(message string) error {
	return p.status(statusProgress, message)
}

// PrintInfo prints an info message
func (p *StreamPrinter) PrintInfo(message string) error {
	return p.status(statusInfo, message)
}

// PrintSuccess prints a success message
func (p *StreamPrinter) PrintSuccess(message string) error {
	return p.status(statusSuccess, message)
}

// PrintWarning prints a warning message
func (p *StreamPrinter) PrintWarning(message string) error {
	return p.status(statusWarning, message)
}

// PrintError prints an error message
func (p *StreamPrinter) PrintError(message string) error {
	return p.status(statusError, message)
}

// PrintDim prints secondary text such as hints
func (p *StreamPrinter) PrintDim(message string) error {
	return p.status(statusDim, message)
}

// PrintDiffStat prints `git diff --stat` output with the +/- bars colored
func (p *StreamPrinter) PrintDiffStat(stat string) error {
	for _, line := range strings.Split(strings.TrimRight(stat, "\n"), "\n") {
		bar := strings.LastIndex(line, "|")
		if bar < 0 || !p.colorEnabled {
			if _, err := fmt.Fprintln(p.writer, p.colorize(color.FgHiBlack, line)); err != nil {
				return err
			}
			continue
		}

		var b strings.Builder
		b.WriteString(line[:bar+1])
		for _, r := range line[bar+1:] {
			switch r {
			case '+':
				b.WriteString(color.New(color.FgGreen).Sprint("+"))
			case '-':
				b.WriteString(color.New(color.FgRed).Sprint("-"))
			default:
				b.WriteRune(r)
			}
		}
		if _, err := fmt.Fprintln(p.writer, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintStats prints how long a generation took. Token counts are shown
// only in verbose mode.
func (p *StreamPrinter) PrintStats(stats *GenerationStats) error {
	if stats == nil {
		return nil
	}

	line := fmt.Sprintf("📊 Time: %s", formatDuration(stats.Duration()))
	if p.verbose && stats.TotalTokens > 0 {
		line = fmt.Sprintf("📊 Stats: %d tokens (prompt: %d, completion: %d) | Time: %s",
			stats.TotalTokens, stats.PromptTokens, stats.CompletionTokens, formatDuration(stats.Duration()))
	}
	return p.status(statusDim, line)
}

// Newline prints a newline
func (p *StreamPrinter) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

// formatDuration formats a duration in a human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
