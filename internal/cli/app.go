package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huimingz/prgen/internal/config"
	"github.com/huimingz/prgen/internal/git"
	"github.com/huimingz/prgen/internal/llm"
	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/prefs"
	"github.com/huimingz/prgen/internal/session"
	"github.com/huimingz/prgen/internal/store"
	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/internal/ui"
	"github.com/huimingz/prgen/pkg/lang"
)

// app bundles the collaborators of one invocation
type app struct {
	cfg      *config.Config
	prefs    *prefs.Manager
	registry *templates.Registry
	git      git.Executor
	provider llm.Provider
	prompter *ui.Prompter
	printer  *ui.StreamPrinter
	effects  session.Effects
	getenv   func(string) string

	out    io.Writer
	errOut io.Writer

	locale lang.Locale
	msgs   lang.Messages
}

// newApp wires the file-backed stores, the git executor in the working
// directory and the Gemini provider from cfg
func newApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) (*app, error) {
	prefPath, err := cfg.PreferencePath()
	if err != nil {
		return nil, err
	}
	templatesPath, err := cfg.TemplatesPath()
	if err != nil {
		return nil, err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	log.Debug("Preference file: %s", prefPath)
	log.Debug("Templates file: %s", templatesPath)

	return &app{
		cfg:      cfg,
		prefs:    prefs.NewManager(store.NewFileStore(prefPath)),
		registry: templates.NewRegistry(store.NewFileStore(templatesPath), templates.WithPolicy(cfg.Policy())),
		git:      git.NewExecutor(workDir),
		provider: llm.NewGeminiProvider(cfg.Model),
		prompter: ui.NewPrompter(in, out),
		printer:  ui.NewStreamPrinter(out, ui.WithColor(ui.IsTerminal(out)), ui.WithVerbose(log.IsDebugMode())),
		effects:  session.NewSystemEffects(out),
		getenv:   os.Getenv,
		out:      out,
		errOut:   errOut,
		locale:   lang.DefaultLocale(),
		msgs:     lang.MessagesFor(lang.DefaultLocale()),
	}, nil
}

// appFromCommand loads the configuration and builds the app on the
// command's streams with the locale resolved from localeFlag
func appFromCommand(cmd *cobra.Command, localeFlag string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log.DebugConfig("Configuration", cfg)

	a, err := newApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if err := a.setLocale(localeFlag); err != nil {
		return nil, err
	}
	return a, nil
}

// loadPreference returns the saved preference. A broken document is
// reported and treated as empty.
func (a *app) loadPreference() prefs.Preference {
	pref, err := a.prefs.Load()
	if err != nil {
		log.Warn("Could not read saved preferences: %v", err)
	}
	return pref
}

// resolveLocale picks the locale by precedence: flag, saved preference,
// config file, default
func resolveLocale(flag string, saved lang.Locale, cfg *config.Config) (lang.Locale, error) {
	if strings.TrimSpace(flag) != "" {
		l, ok := lang.ParseLocale(flag)
		if !ok {
			return "", fmt.Errorf("unsupported language: %q (expected es or en)", flag)
		}
		return l, nil
	}
	if saved.IsValid() {
		return saved, nil
	}
	if l, ok := cfg.Locale(); ok {
		return l, nil
	}
	return lang.DefaultLocale(), nil
}

// setLocale resolves and applies the locale for this run
func (a *app) setLocale(flag string) error {
	l, err := resolveLocale(flag, a.loadPreference().Locale, a.cfg)
	if err != nil {
		return err
	}
	a.useLocale(l)
	log.Debug("Using language: %s", l)
	return nil
}

func (a *app) useLocale(l lang.Locale) {
	a.locale = l
	a.msgs = lang.MessagesFor(l)
}

// defaultFilename is offered when saving a draft
func (a *app) defaultFilename() string {
	if a.cfg.OutputFile != "" {
		return a.cfg.OutputFile
	}
	return a.msgs.FilenameDefault
}

// showHelp prints the localized help followed by the flag reference
func (a *app) showHelp(cmd *cobra.Command) error {
	if err := ui.ShowBanner(a.msgs.AppTitle, a.msgs.Description, a.out); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.out, "\n%s\n\n", a.msgs.Help); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "Flags:\n%s", cmd.Flags().FlagUsages())
	return err
}
