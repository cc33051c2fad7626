package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shelfscan/shelfscan/internal/models"
)

func newScanCmd(configPath *string) *cobra.Command {
	var format string
	var addUnknown bool

	cmd := &cobra.Command{
		Use:   "scan <photo>",
		Short: "Detect the books on a shelf photo",
		Long: `Runs the photo through text detection, matches the result against your
reading lists, and looks the unmatched spines up on the configured
catalogs.`,
		Example: `  # Scan a photo and print the books as JSON
  shelfscan scan shelf.jpg

  # Scan and add every new book to the to-read list
  shelfscan scan shelf.jpg --add`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}

			books, err := app.scanner.Scan(cmd.Context(), image)
			if err != nil {
				return err
			}

			if addUnknown {
				for _, detected := range books {
					if detected.InReadingList {
						continue
					}
					added, err := app.library.AddToRead(cmd.Context(), detected.Book)
					if err != nil {
						return err
					}
					slog.Info("added to to-read list", "title", added.Title, "author", added.Author)
				}
			}

			return printBooks(books, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&addUnknown, "add", false, "Add books not already on a list to the to-read list")

	return cmd
}

func printBooks(books []models.DetectedBook, format string) error {
	if books == nil {
		books = []models.DetectedBook{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(books)
	default:
		return fmt.Errorf("unknown format %q (supported: json, yaml)", format)
	}
}
