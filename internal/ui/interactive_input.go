package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// endOfInputLine ends multi-line input when typed on its own
const endOfInputLine = "."

// MultilinePrompt represents a multi-line input prompt with hints and examples
type MultilinePrompt struct {
	Prompt   string   // The main prompt message
	Hint     string   // Hint text shown to help users
	Examples []string // Example inputs to show users
}

// Multiline displays the prompt and collects lines until EOF (Ctrl+D), a
// Ctrl+D character, or a line holding a single dot. Blank input yields
// ErrEmptyInput.
func (p *Prompter) Multiline(mp MultilinePrompt) (string, error) {
	if err := mp.display(p.out); err != nil {
		return "", err
	}

	var (
		lines []string
		err   error
	)
	if p.tty {
		lines, err = p.readLinesWithReadline()
	} else {
		lines, err = collectLines(p.readLine)
	}
	if err != nil {
		return "", err
	}

	result := strings.Join(lines, "\n")
	if strings.TrimSpace(result) == "" {
		return "", ErrEmptyInput
	}
	return result, nil
}

// display shows the prompt, hint, and examples
func (mp MultilinePrompt) display(output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	if _, err := bold.Fprintf(output, "\n%s\n", mp.Prompt); err != nil {
		return err
	}

	if mp.Hint != "" {
		if _, err := dim.Fprintf(output, "   %s\n", mp.Hint); err != nil {
			return err
		}
	}

	if len(mp.Examples) > 0 {
		if _, err := cyan.Fprintln(output); err != nil {
			return err
		}
		for _, example := range mp.Examples {
			if _, err := green.Fprintf(output, "   • %s\n", example); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprint(output, "\n> ")
	return err
}

// collectLines pulls lines from next until EOF, a Ctrl+D character or the
// end-of-input line
func collectLines(next func() (string, error)) ([]string, error) {
	var lines []string
	for {
		line, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}

		if i := strings.IndexByte(line, '\x04'); i >= 0 {
			if line[:i] != "" {
				lines = append(lines, line[:i])
			}
			return lines, nil
		}
		if strings.TrimSpace(line) == endOfInputLine {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// readLinesWithReadline uses readline for line editing on a terminal
func (p *Prompter) readLinesWithReadline() ([]string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
	})
	if err != nil {
		return collectLines(p.readLine)
	}
	defer rl.Close()

	lines, err := collectLines(rl.Readline)
	if errors.Is(err, readline.ErrInterrupt) {
		return nil, ErrInterrupted
	}
	return lines, err
}
