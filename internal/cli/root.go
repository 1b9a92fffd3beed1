package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huimingz/prgen/internal/config"
	"github.com/huimingz/prgen/internal/log"
)

var (
	// Global flags
	debugMode  bool
	configFile string

	// Generation flags
	templateID   string
	ticket       string
	language     string
	outputMode   string
	outputFile   string
	apiKey       string
	instructions string

	// Maintenance flags
	setAPIKey      bool
	clearAPIKey    bool
	changeLanguage bool

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd generates a PR description for the current branch against a target branch
var rootCmd = &cobra.Command{
	Use:   "prgen [target-branch]",
	Short: "Generate Pull Request descriptions from git diffs with Gemini",
	Long: `prgen compares the current branch with a target branch, fills a PR
template from the diff with Google Gemini and lets you refine the result
before copying or saving it.

Without --output the review loop is interactive. With --output the draft
goes straight to the clipboard, a file or the console.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
		return config.LoadDotEnv("")
	},
	RunE: runRoot,
}

// Execute runs the root command and reports a failure on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Error("%v", err)
	}
	return err
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.prgen.yaml or ~/.prgen.yaml)")

	flags := rootCmd.Flags()
	flags.StringVarP(&templateID, "template", "t", "", "Template to use (frontend, backend, custom or a user template name)")
	flags.StringVarP(&ticket, "ticket", "k", "", "Ticket number and title")
	flags.StringVarP(&language, "language", "l", "", "Language for this run (es, en)")
	flags.StringVarP(&outputMode, "output", "o", "", "Skip the review loop and send the draft to clipboard, file or console")
	flags.StringVarP(&outputFile, "file", "f", "", "Output filename for --output file")
	flags.StringVar(&apiKey, "api-key", "", "Gemini API key for this run")
	flags.StringVarP(&instructions, "instructions", "x", "", "Extra instructions appended to the prompt")
	flags.BoolVar(&setAPIKey, "set-api-key", false, "Set or update the saved Gemini API key")
	flags.BoolVar(&clearAPIKey, "clear-api-key", false, "Remove the saved Gemini API key")
	flags.BoolVar(&changeLanguage, "change-language", false, "Select and save the interface language")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx, stop := withInterrupt(cmd.Context(), cmd.ErrOrStderr())
	defer stop()

	a, err := appFromCommand(cmd, language)
	if err != nil {
		return err
	}

	switch {
	case setAPIKey:
		return a.setAPIKey(ctx)
	case clearAPIKey:
		return a.clearAPIKey()
	case changeLanguage:
		return a.changeLanguage()
	}

	if len(args) == 0 {
		return a.showHelp(cmd)
	}

	return a.generate(ctx, runOptions{
		Target:       args[0],
		Template:     templateID,
		Ticket:       ticket,
		TicketSet:    cmd.Flags().Changed("ticket"),
		Output:       outputMode,
		File:         outputFile,
		APIKey:       apiKey,
		Instructions: instructions,
	})
}
