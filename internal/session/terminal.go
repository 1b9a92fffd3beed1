package session

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/huimingz/prgen/internal/ui"
	"github.com/huimingz/prgen/pkg/lang"
)

// TerminalReviewer runs the review loop on a terminal with localized labels
type TerminalReviewer struct {
	prompter *ui.Prompter
	printer  *ui.StreamPrinter
	msgs     lang.Messages
}

// NewTerminalReviewer creates a reviewer for the locale
func NewTerminalReviewer(prompter *ui.Prompter, printer *ui.StreamPrinter, locale lang.Locale) *TerminalReviewer {
	return &TerminalReviewer{
		prompter: prompter,
		printer:  printer,
		msgs:     lang.MessagesFor(locale),
	}
}

// ShowDraft displays the current draft
func (r *TerminalReviewer) ShowDraft(draft string) error {
	return ui.ShowDraft(r.msgs.GeneratedDescription, draft, r.prompter.Output())
}

// ChooseAction asks what to do with the draft
func (r *TerminalReviewer) ChooseAction() (Action, error) {
	actions := Actions()
	labels := map[Action]string{
		ActionCopy:   r.msgs.CopyToClipboard,
		ActionSave:   r.msgs.SaveToFile,
		ActionAdjust: r.msgs.RequestAdjustments,
		ActionFinish: r.msgs.Finish,
	}

	options := make([]string, 0, len(actions))
	for _, a := range actions {
		options = append(options, labels[a])
	}

	idx, err := r.prompter.Select(r.msgs.WhatWouldYouLikeToDo, options, 0)
	if err != nil {
		return "", err
	}
	return actions[idx], nil
}

// AskAdjustment asks for a free-form adjustment request. It may be empty.
func (r *TerminalReviewer) AskAdjustment() (string, error) {
	return r.prompter.Input(r.msgs.AdjustmentPrompt, "")
}

// AskFilename asks where to save the draft
func (r *TerminalReviewer) AskFilename(defaultName string) (string, error) {
	return r.prompter.Input(r.msgs.EnterFilename, defaultName)
}

// Notify prints a localized status line
func (r *TerminalReviewer) Notify(event Event, detail string) {
	switch event {
	case EventGenerating:
		_ = r.printer.PrintProgress(r.msgs.GeneratingDescription)
	case EventCopied:
		_ = r.printer.PrintSuccess(r.msgs.CopiedToClipboard)
	case EventSaved:
		_ = r.printer.PrintSuccess(fmt.Sprintf(r.msgs.SavedToFile, detail))
	case EventAdjusting:
		_ = r.printer.PrintProgress(r.msgs.AdjustingDescription)
	case EventAdjusted:
		_ = r.printer.PrintSuccess(r.msgs.DescriptionUpdated)
	case EventFinished:
		_ = r.printer.PrintSuccess(r.msgs.Done)
	}
}

// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// SystemEffects sends drafts to the real clipboard, files and a writer
type SystemEffects struct {
	Clipboard Clipboard
	Out       io.Writer
}

// NewSystemEffects creates effects bound to the system clipboard and out
func NewSystemEffects(out io.Writer) *SystemEffects {
	return &SystemEffects{Clipboard: systemClipboard{}, Out: out}
}

// CopyToClipboard copies text to the clipboard
func (e *SystemEffects) CopyToClipboard(text string) error {
	return e.Clipboard.WriteAll(text)
}

// SaveToFile writes text to path
func (e *SystemEffects) SaveToFile(path, text string) error {
	return os.WriteFile(path, []byte(text), 0644)
}

// Print writes text to the output
func (e *SystemEffects) Print(text string) error {
	_, err := fmt.Fprintln(e.Out, strings.TrimRight(text, "\n"))
	return err
}
