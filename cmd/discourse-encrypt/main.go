package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	forumURL string
	apiKey   string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "discourse-encrypt",
	Short: "Manage end-to-end encryption keys for a Discourse account",
	Long: `discourse-encrypt manages the key material behind Discourse's encrypted
private messages: the account identity key pair, per-device activation,
and recovery paper keys.

The forum URL and user API key can be passed as flags or through the
DISCOURSE_URL and DISCOURSE_API_KEY environment variables (a .env file
in the working directory is read automatically).

Run 'discourse-encrypt help <command>' for details on a specific command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; flags and the environment still apply.
		_ = godotenv.Load()

		if forumURL == "" {
			forumURL = os.Getenv("DISCOURSE_URL")
		}
		if apiKey == "" {
			apiKey = os.Getenv("DISCOURSE_API_KEY")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&forumURL, "url", "", "Discourse instance base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "user API key")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(paperKeyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
