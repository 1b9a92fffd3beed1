package ui

import (
	"errors"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"
)

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether the stream is attached to a terminal
func IsTerminal(stream any) bool {
	f, ok := stream.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// FuzzySelect lets the user filter and pick one of options
func FuzzySelect(message string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}

	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string {
			return options[i]
		},
		fuzzyfinder.WithPromptString("> "),
		fuzzyfinder.WithHeader(message),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, ErrInterrupted
		}
		return -1, err
	}
	return idx, nil
}
