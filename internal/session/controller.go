// Package session drives one PR description from the first draft through
// review to a final output.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/prompt"
)

// State of a session
type State int

const (
	StateAwaitingFirstDraft State = iota
	StateReviewing
	StateTerminated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateAwaitingFirstDraft:
		return "AwaitingFirstDraft"
	case StateReviewing:
		return "Reviewing"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Action is one review menu choice
type Action string

const (
	ActionCopy   Action = "copy"
	ActionSave   Action = "save"
	ActionAdjust Action = "adjust"
	ActionFinish Action = "finish"
)

// Actions returns the review actions in menu order
func Actions() []Action {
	return []Action{ActionCopy, ActionSave, ActionAdjust, ActionFinish}
}

// OutputMode selects where a direct-mode draft goes
type OutputMode string

const (
	OutputClipboard OutputMode = "clipboard"
	OutputFile      OutputMode = "file"
	OutputConsole   OutputMode = "console"
)

// ParseOutputMode parses an output mode name
func ParseOutputMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case OutputClipboard, OutputFile, OutputConsole:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported output mode: %q (expected clipboard, file or console)", s)
	}
}

// OutputSelector picks exactly one direct-mode output
type OutputSelector struct {
	Mode     OutputMode
	Filename string
}

var (
	// ErrInvalidState is returned when an operation does not fit the current state
	ErrInvalidState = errors.New("invalid session state")
)

// Generator produces and refines descriptions
type Generator interface {
	GenerateDescription(ctx context.Context, p prompt.Prompt) (string, error)
	AdjustDescription(ctx context.Context, p prompt.Prompt) (string, error)
}

// Reviewer is the interactive side of the review loop
type Reviewer interface {
	ShowDraft(draft string) error
	ChooseAction() (Action, error)
	AskAdjustment() (string, error)
	AskFilename(defaultName string) (string, error)
	Notify(event Event, detail string)
}

// Effects are the side effects a draft can be sent to
type Effects interface {
	CopyToClipboard(text string) error
	SaveToFile(path, text string) error
	Print(text string) error
}

// Event is something the reviewer is told about
type Event int

const (
	EventGenerating Event = iota
	EventGenerated
	EventCopied
	EventSaved
	EventAdjusting
	EventAdjusted
	EventFinished
)

// Controller owns the draft of one session. Calls must be sequential.
type Controller struct {
	generator       Generator
	assembler       *prompt.Assembler
	reviewer        Reviewer
	effects         Effects
	defaultFilename string

	state State
	draft string
}

// Config holds the collaborators of a Controller
type Config struct {
	Generator Generator
	Assembler *prompt.Assembler
	Reviewer  Reviewer
	Effects   Effects

	// DefaultFilename is offered when saving to a file
	DefaultFilename string
}

// NewController creates a controller awaiting its first draft
func NewController(cfg Config) *Controller {
	return &Controller{
		generator:       cfg.Generator,
		assembler:       cfg.Assembler,
		reviewer:        cfg.Reviewer,
		effects:         cfg.Effects,
		defaultFilename: cfg.DefaultFilename,
		state:           StateAwaitingFirstDraft,
	}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Draft returns the current draft
func (c *Controller) Draft() string {
	return c.draft
}

func (c *Controller) notify(event Event, detail string) {
	if c.reviewer != nil {
		c.reviewer.Notify(event, detail)
	}
}

// Start generates the first draft. Any failure terminates the session.
func (c *Controller) Start(ctx context.Context, req prompt.GenerationRequest) error {
	if c.state != StateAwaitingFirstDraft {
		return fmt.Errorf("%w: start in state %s", ErrInvalidState, c.state)
	}

	c.notify(EventGenerating, "")
	draft, err := c.generator.GenerateDescription(ctx, c.assembler.Generation(req))
	if err != nil {
		c.state = StateTerminated
		return err
	}

	c.draft = draft
	c.state = StateReviewing
	c.notify(EventGenerated, "")
	log.Debug("Session state: %s", c.state)
	return nil
}

// Review runs the interactive loop until the user finishes
func (c *Controller) Review(ctx context.Context) error {
	if c.state != StateReviewing {
		return fmt.Errorf("%w: review in state %s", ErrInvalidState, c.state)
	}

	for c.state == StateReviewing {
		if err := c.reviewer.ShowDraft(c.draft); err != nil {
			c.state = StateTerminated
			return err
		}

		action, err := c.reviewer.ChooseAction()
		if err != nil {
			c.state = StateTerminated
			return err
		}
		log.Debug("Review action: %s", action)

		if err := c.apply(ctx, action); err != nil {
			c.state = StateTerminated
			return err
		}
	}
	return nil
}

func (c *Controller) apply(ctx context.Context, action Action) error {
	switch action {
	case ActionCopy:
		if err := c.effects.CopyToClipboard(c.draft); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notify(EventCopied, "")

	case ActionSave:
		filename, err := c.reviewer.AskFilename(c.defaultFilename)
		if err != nil {
			return err
		}
		if err := c.effects.SaveToFile(filename, c.draft); err != nil {
			return fmt.Errorf("failed to save to %s: %w", filename, err)
		}
		c.notify(EventSaved, filename)

	case ActionAdjust:
		request, err := c.reviewer.AskAdjustment()
		if err != nil {
			return err
		}
		return c.Adjust(ctx, request)

	case ActionFinish:
		c.state = StateTerminated
		c.notify(EventFinished, "")

	default:
		return fmt.Errorf("unknown action: %q", action)
	}
	return nil
}

// Adjust replaces the draft with a refined version. A failure terminates the session.
func (c *Controller) Adjust(ctx context.Context, request string) error {
	if c.state != StateReviewing {
		return fmt.Errorf("%w: adjust in state %s", ErrInvalidState, c.state)
	}

	c.notify(EventAdjusting, "")
	draft, err := c.generator.AdjustDescription(ctx, c.assembler.Adjustment(c.draft, request))
	if err != nil {
		c.state = StateTerminated
		return err
	}

	c.draft = draft
	c.notify(EventAdjusted, "")
	return nil
}

// Direct sends the draft to exactly one output and terminates
func (c *Controller) Direct(ctx context.Context, sel OutputSelector) error {
	if c.state != StateReviewing {
		return fmt.Errorf("%w: direct output in state %s", ErrInvalidState, c.state)
	}
	defer func() { c.state = StateTerminated }()

	switch sel.Mode {
	case OutputClipboard:
		if err := c.effects.CopyToClipboard(c.draft); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notify(EventCopied, "")

	case OutputFile:
		filename := strings.TrimSpace(sel.Filename)
		if filename == "" {
			filename = c.defaultFilename
		}
		if err := c.effects.SaveToFile(filename, c.draft); err != nil {
			return fmt.Errorf("failed to save to %s: %w", filename, err)
		}
		c.notify(EventSaved, filename)

	case OutputConsole:
		if err := c.effects.Print(c.draft); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unsupported output mode: %q", sel.Mode)
	}
	return nil
}
