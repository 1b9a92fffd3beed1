package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#06B6D4")
	colorBorder  = lipgloss.Color("#374151")
	colorMuted   = lipgloss.Color("#9CA3AF")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	draftTitleStyle = lipgloss.NewStyle().
			Bold(true)

	draftBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// ShowBanner prints the application title and an optional subtitle
func ShowBanner(title, subtitle string, output io.Writer) error {
	if _, err := fmt.Fprintf(output, "\n%s\n", bannerStyle.Render(title)); err != nil {
		return err
	}
	if subtitle != "" {
		if _, err := fmt.Fprintln(output, subtitleStyle.Render(subtitle)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(output)
	return err
}

// ShowDraft displays a PR description inside a frame
func ShowDraft(title, draft string, output io.Writer) error {
	if _, err := fmt.Fprintf(output, "\n%s\n", draftTitleStyle.Render(title)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(output, draftBoxStyle.Render(draft))
	return err
}
