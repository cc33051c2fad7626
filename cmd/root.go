package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shelfscan",
		Short: "Identify books on a shelf photo and track them against your reading lists",
		Long: `Shelfscan reads the spines on a photo of your bookshelf, matches them
against your "to read" and "read" lists, and looks up the rest on
OpenLibrary and Google Books.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(newScanCmd(&configPath))
	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newListCmd(&configPath))
	cmd.AddCommand(newWatchCmd(&configPath))

	return cmd
}
