package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	// ErrEmptyInput is returned when the user provides no input
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted is returned when the user interrupts input with Ctrl+C
	ErrInterrupted = errors.New("input interrupted")

	// ErrNoOptions is returned when a menu has nothing to choose from
	ErrNoOptions = errors.New("no options to select from")
)

// Prompter asks questions on one input stream. All prompts share a single
// buffered reader so scripted input is consumed line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// tty enables readline and the fuzzy finder
	tty bool
}

// NewPrompter creates a Prompter. Terminal features are enabled when both
// streams are terminals.
func NewPrompter(input io.Reader, output io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(input),
		out: output,
		tty: IsTerminal(input) && IsTerminal(output),
	}
}

// Output returns the writer prompts are printed to
func (p *Prompter) Output() io.Writer {
	return p.out
}

// readLine reads one line without its terminator. A final line without a
// newline is returned as is; io.EOF is returned only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Select shows a numbered menu and returns the chosen index.
// Empty input picks defaultIndex; invalid input asks again.
func (p *Prompter) Select(message string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintf(p.out, "\n%s\n", message); err != nil {
		return -1, err
	}
	for i, option := range options {
		marker := " "
		if i == defaultIndex {
			marker = ">"
		}
		if _, err := fmt.Fprintf(p.out, "%s %s %s\n", marker, cyan.Sprintf("%d)", i+1), option); err != nil {
			return -1, err
		}
	}

	for {
		if _, err := fmt.Fprintf(p.out, "[1-%d, default %d]: ", len(options), defaultIndex+1); err != nil {
			return -1, err
		}

		line, err := p.readLine()
		if err != nil {
			return -1, err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return defaultIndex, nil
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}

		if _, err := fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return -1, err
		}
	}
}

// Choose picks from options with the fuzzy finder on a terminal and the
// numbered menu otherwise
func (p *Prompter) Choose(message string, options []string, defaultIndex int) (int, error) {
	if p.tty {
		return FuzzySelect(message, options)
	}
	return p.Select(message, options, defaultIndex)
}

// Input asks for one line of text. Empty input returns defaultValue.
func (p *Prompter) Input(message, defaultValue string) (string, error) {
	prompt := message + " "
	if defaultValue != "" {
		prompt = fmt.Sprintf("%s (%s) ", message, defaultValue)
	}
	if _, err := color.New(color.Bold).Fprint(p.out, prompt); err != nil {
		return "", err
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Only the given yes tokens confirm;
// anything else, including empty input and EOF, means no.
func (p *Prompter) Confirm(message, hint string, yesTokens []string) (bool, error) {
	if _, err := color.New(color.FgYellow).Fprintf(p.out, "%s %s: ", message, hint); err != nil {
		return false, err
	}

	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	for _, token := range yesTokens {
		if answer == token {
			return true, nil
		}
	}
	return false, nil
}
