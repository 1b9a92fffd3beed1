package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huimingz/prgen/internal/config"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize prgen configuration",
	Long: `Create a default configuration file (~/.prgen.yaml).

The file documents every setting with its default. prgen works without it;
edit it to change the model, the fallback language or where saved keys and
user templates are stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.HomeConfigPath()
		if err != nil {
			return err
		}

		if err := config.WriteInitFile(configPath, initForce); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Save your Gemini API key with 'prgen --set-api-key' or export GEMINI_API_KEY")
		fmt.Fprintln(out, "  2. Adjust language and template_policy if needed")
		fmt.Fprintln(out, "  3. Run 'prgen <target-branch>' from your feature branch")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
