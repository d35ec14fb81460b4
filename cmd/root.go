package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sabores",
		Short: "African recipe catalog with AI-generated recipe detail",
		Long: `Sabores serves a curated catalog of African dishes with premium recipes
behind a simulated payment flow.

Recipe detail (ingredients, preparation steps, cultural history, and
citation sources) is generated on demand by a configurable generative-AI
backend, along with a decorative hero image at startup.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}
