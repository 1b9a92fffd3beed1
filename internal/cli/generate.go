package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huimingz/prgen/internal/git"
	"github.com/huimingz/prgen/internal/llm"
	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/prompt"
	"github.com/huimingz/prgen/internal/session"
	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/internal/ui"
)

// runOptions are the per-run choices taken from flags and arguments
type runOptions struct {
	Target       string
	Template     string
	Ticket       string
	TicketSet    bool
	Output       string
	File         string
	APIKey       string
	Instructions string
}

// interactive reports whether the run ends in the review loop
func (o runOptions) interactive() bool {
	return strings.TrimSpace(o.Output) == ""
}

// generate runs one PR description from credentials to the final output
func (a *app) generate(ctx context.Context, opts runOptions) error {
	interactive := opts.interactive()

	var selector session.OutputSelector
	if !interactive {
		mode, err := session.ParseOutputMode(opts.Output)
		if err != nil {
			return err
		}
		selector = session.OutputSelector{Mode: mode, Filename: opts.File}

		// keep stdout clean for --output console
		a.printer = ui.NewStreamPrinter(a.errOut, ui.WithColor(ui.IsTerminal(a.errOut)), ui.WithVerbose(log.IsDebugMode()))
	} else if err := ui.ShowBanner(a.msgs.AppTitle, a.msgs.PoweredBy, a.out); err != nil {
		return err
	}

	if !a.git.IsRepository(ctx) {
		return fmt.Errorf("%w: run prgen inside the repository to describe", git.ErrNotRepository)
	}

	client := llm.NewClient(llm.ClientOptions{
		Provider:          a.provider,
		ValidateKeyFormat: a.cfg.ValidateKeyFormat,
	})
	if err := a.initializeClient(ctx, client, opts.APIKey, interactive); err != nil {
		return err
	}

	current, err := a.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	_ = a.printer.PrintInfo(fmt.Sprintf("%s %s", a.msgs.CurrentBranch, current))
	_ = a.printer.PrintInfo(fmt.Sprintf("%s %s", a.msgs.TargetBranch, opts.Target))

	_ = a.printer.PrintProgress(a.msgs.GeneratingDiff)
	diff, err := a.git.Diff(ctx, opts.Target)
	if err != nil {
		return err
	}

	if !diff.HasChanges() {
		_ = a.printer.PrintWarning(a.msgs.NoChangesDetected)
		return nil
	}

	_ = a.printer.PrintSuccess(a.msgs.DiffGenerated)
	_ = a.printer.PrintDim(a.msgs.DiffStatistics)
	_ = a.printer.PrintDiffStat(diff.DiffStat)
	_ = a.printer.Newline()

	tpl, err := a.chooseTemplate(opts.Template, interactive)
	if err != nil {
		return err
	}

	ticketText, err := a.askTicket(opts, interactive)
	if err != nil {
		return err
	}

	ctrl := session.NewController(session.Config{
		Generator:       client,
		Assembler:       prompt.NewAssembler(a.locale),
		Reviewer:        session.NewTerminalReviewer(a.prompter, a.printer, a.locale),
		Effects:         a.effects,
		DefaultFilename: a.defaultFilename(),
	})

	startTime := time.Now()
	err = ctrl.Start(ctx, prompt.GenerationRequest{
		Diff:              *diff,
		Template:          tpl,
		Ticket:            ticketText,
		ExtraInstructions: opts.Instructions,
	})
	if err != nil {
		return err
	}
	log.Debug("First draft ready (%d chars)", len(ctrl.Draft()))

	usage := client.LastUsage()
	_ = a.printer.PrintStats(&ui.GenerationStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	})

	if !interactive {
		return ctrl.Direct(ctx, selector)
	}
	return ctrl.Review(ctx)
}

// chooseTemplate resolves the requested template. In interactive mode an
// unknown or missing id falls back to the template menu; otherwise the
// custom template is used when none was requested.
func (a *app) chooseTemplate(id string, interactive bool) (templates.Template, error) {
	if id = strings.TrimSpace(id); id != "" {
		tpl, err := a.registry.Resolve(id, a.locale)
		if err == nil {
			_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.UsingTemplate, tpl.Name))
			return tpl, nil
		}
		if !interactive || !errors.Is(err, templates.ErrTemplateNotFound) {
			return templates.Template{}, err
		}
		_ = a.printer.PrintWarning(fmt.Sprintf(a.msgs.TemplateNotFound, id))
	}

	if !interactive {
		tpl, err := a.registry.Resolve(templates.Custom, a.locale)
		if err != nil {
			return templates.Template{}, err
		}
		_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.UsingTemplate, tpl.Name))
		return tpl, nil
	}

	for {
		choices := a.registry.ListAvailable(a.locale)
		labels := make([]string, 0, len(choices))
		for _, c := range choices {
			labels = append(labels, c.DisplayName)
		}

		idx, err := a.prompter.Choose(a.msgs.SelectTemplate, labels, 0)
		if err != nil {
			return templates.Template{}, err
		}

		if choices[idx].ID != templates.CreateNewID {
			tpl, err := a.registry.Resolve(choices[idx].ID, a.locale)
			if err != nil {
				return templates.Template{}, err
			}
			_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.UsingTemplate, tpl.Name))
			return tpl, nil
		}

		tpl, err := a.createTemplate()
		if err == nil {
			_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.CustomTemplateCreated, tpl.Name))
			return tpl, nil
		}
		if !errors.Is(err, templates.ErrInvalidTemplate) && !errors.Is(err, templates.ErrDuplicateName) {
			return templates.Template{}, err
		}
		_ = a.printer.PrintError(err.Error())
	}
}

// createTemplate asks for a name and a multi-line structure and saves the
// new user template. An empty structure takes the localized default.
func (a *app) createTemplate() (templates.Template, error) {
	name, err := a.prompter.Input(a.msgs.TemplateNamePrompt, "")
	if err != nil {
		return templates.Template{}, err
	}

	structure, err := a.prompter.Multiline(ui.MultilinePrompt{
		Prompt:   a.msgs.TemplateStructurePrompt,
		Hint:     a.msgs.TemplateStructureHint,
		Examples: a.msgs.StructureExamples,
	})
	if errors.Is(err, ui.ErrEmptyInput) {
		structure = a.msgs.TemplateStructureDefault
	} else if err != nil {
		return templates.Template{}, err
	}

	return a.registry.Create(name, structure)
}

// askTicket returns the ticket from --ticket, or asks for one in
// interactive mode. An empty answer means no ticket.
func (a *app) askTicket(opts runOptions, interactive bool) (string, error) {
	var answer string
	switch {
	case opts.TicketSet:
		answer = opts.Ticket
	case interactive:
		_ = a.printer.PrintInfo(a.msgs.TicketPrompt)
		_ = a.printer.PrintDim(a.msgs.TicketExamples)

		var err error
		answer, err = a.prompter.Input(a.msgs.TicketInput, "")
		if err != nil {
			return "", err
		}
	}

	answer = strings.TrimSpace(answer)
	if answer != "" {
		_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.TicketConfirmed, answer))
	} else if interactive {
		_ = a.printer.PrintDim(a.msgs.NoTicketProvided)
	}
	return answer, nil
}
