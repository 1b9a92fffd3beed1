package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/internal/ui"
)

var (
	templatesLanguage string
	templateAddFile   string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage PR templates",
	Long:  `Commands for listing, showing, adding and deleting PR templates.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and user templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromCommand(cmd, templatesLanguage)
		if err != nil {
			return err
		}
		return a.listTemplates()
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the structure of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromCommand(cmd, templatesLanguage)
		if err != nil {
			return err
		}
		return a.showTemplate(args[0])
	},
}

var templatesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a user template",
	Long: `Add a user template. The structure is read from --file, or typed in
when no file is given. Use {{TICKET_OR_SKIP}} at most once where the ticket
goes; its line is dropped when no ticket is provided.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromCommand(cmd, templatesLanguage)
		if err != nil {
			return err
		}
		return a.addTemplate(args[0], templateAddFile)
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a user template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromCommand(cmd, templatesLanguage)
		if err != nil {
			return err
		}
		return a.deleteTemplate(args[0])
	},
}

func init() {
	templatesCmd.PersistentFlags().StringVarP(&templatesLanguage, "language", "l", "", "Language of built-in templates (es, en)")
	templatesAddCmd.Flags().StringVarP(&templateAddFile, "file", "f", "", "Read the template structure from a file")

	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesAddCmd, templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}

func (a *app) listTemplates() error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(a.out, "Built-in templates:")
	for _, c := range a.registry.ListAvailable(a.locale) {
		if !templates.IsBuiltin(c.ID) {
			continue
		}
		fmt.Fprintf(a.out, "  %s  %s\n", cyan.Sprintf("%-10s", c.ID), c.DisplayName)
	}

	fmt.Fprintln(a.out)
	bold.Fprintln(a.out, "User templates:")
	users := a.registry.UserTemplates()
	if len(users) == 0 {
		fmt.Fprintf(a.out, "  %s\n", a.msgs.NoUserTemplates)
		return nil
	}
	for _, t := range users {
		fmt.Fprintf(a.out, "  ✨ %s\n", t.Name)
	}
	return nil
}

func (a *app) showTemplate(name string) error {
	tpl, err := a.registry.Resolve(strings.TrimSpace(name), a.locale)
	if err != nil {
		return err
	}
	return ui.ShowDraft(tpl.Name, tpl.Structure, a.out)
}

func (a *app) addTemplate(name, file string) error {
	var structure string
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}
		structure = string(data)
	} else {
		var err error
		structure, err = a.prompter.Multiline(ui.MultilinePrompt{
			Prompt:   a.msgs.TemplateStructurePrompt,
			Hint:     a.msgs.TemplateStructureHint,
			Examples: a.msgs.StructureExamples,
		})
		if err != nil {
			if errors.Is(err, ui.ErrEmptyInput) || errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty structure", templates.ErrInvalidTemplate)
			}
			return err
		}
	}

	tpl, err := a.registry.Create(name, structure)
	if err != nil {
		return err
	}
	_ = a.printer.PrintSuccess(fmt.Sprintf("%s: %s", a.msgs.UserTemplateSuffix, tpl.Name))
	return nil
}

func (a *app) deleteTemplate(name string) error {
	name = strings.TrimSpace(name)
	if templates.IsBuiltin(name) {
		return fmt.Errorf("%w: %q is a built-in template", templates.ErrInvalidTemplate, name)
	}

	found := false
	for _, t := range a.registry.UserTemplates() {
		if t.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", templates.ErrTemplateNotFound, name)
	}

	if err := a.registry.Delete(name); err != nil {
		return err
	}
	_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.TemplateDeleted, name))
	return nil
}
