// Package prompt assembles the instruction and content blocks sent to the model.
package prompt

import (
	"strings"

	"github.com/huimingz/prgen/internal/templates"
)

// TicketPlaceholder is the token replaced by the ticket reference
const TicketPlaceholder = templates.TicketPlaceholder

// MaxDiffChars is the number of characters of diff content sent to the model
const MaxDiffChars = 8000

// RenderTemplate fills the ticket placeholder of a template structure.
//
// With a non-blank ticket the first placeholder is replaced by the trimmed
// ticket. Otherwise the first line holding the placeholder is dropped together
// with its line break, whatever label precedes the token. Lines holding any
// further placeholder are dropped as well, so the token never survives. A
// structure without the token is returned unchanged.
func RenderTemplate(structure, ticket string) string {
	if !strings.Contains(structure, TicketPlaceholder) {
		return structure
	}

	ticket = strings.TrimSpace(ticket)
	lines := strings.SplitAfter(structure, "\n")
	out := make([]string, 0, len(lines))
	filled := false
	for _, line := range lines {
		if !strings.Contains(line, TicketPlaceholder) {
			out = append(out, line)
			continue
		}
		if !filled && ticket != "" {
			line = strings.Replace(line, TicketPlaceholder, ticket, 1)
			out = append(out, strings.ReplaceAll(line, TicketPlaceholder, ""))
		}
		filled = true
	}
	return strings.Join(out, "")
}

// truncateRunes cuts s to at most limit characters, without a marker
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
