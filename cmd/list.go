package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfscan/shelfscan/internal/library"
	"github.com/shelfscan/shelfscan/internal/models"
)

func newListCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the to-read and read lists",
	}

	cmd.AddCommand(newListShowCmd(configPath))
	cmd.AddCommand(newListAddCmd(configPath))
	cmd.AddCommand(newListDoneCmd(configPath))
	cmd.AddCommand(newListRemoveCmd(configPath))
	cmd.AddCommand(newListImportCmd(configPath))

	return cmd
}

func newListShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print both reading lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			lists := app.library.Lists()
			printList(cmd, "To read", lists.ToRead)
			printList(cmd, "Read", lists.Read)
			return nil
		},
	}
}

func printList(cmd *cobra.Command, heading string, books []models.Book) {
	cmd.Printf("%s (%d)\n", heading, len(books))
	for _, book := range books {
		line := fmt.Sprintf("  %s  %s", book.ID, book.Title)
		if book.Author != "" {
			line += " - " + book.Author
		}
		cmd.Println(line)
	}
}

func newListAddCmd(configPath *string) *cobra.Command {
	var author, isbn string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a book to the to-read list",
		Long: `Adds a book by title, or by ISBN with metadata fetched from the
configured catalogs.`,
		Example: `  shelfscan list add "Le Montespan" --author "Jean Teulé"
  shelfscan list add --isbn 9782260016885`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			var book models.Book
			switch {
			case isbn != "":
				found := app.search.FindISBN(cmd.Context(), isbn)
				if found == nil {
					return fmt.Errorf("no book found for ISBN %s", isbn)
				}
				book = *found
			case len(args) == 1:
				book = models.Book{Title: args[0], Author: author}
			default:
				return fmt.Errorf("a title or --isbn is required")
			}

			added, err := app.library.AddToRead(cmd.Context(), book)
			if err != nil {
				return err
			}
			cmd.Printf("Added %q (%s)\n", added.Title, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Author of the book")
	cmd.Flags().StringVar(&isbn, "isbn", "", "Look the book up by ISBN instead of title")

	return cmd
}

func newListDoneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Move a book from to-read to read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			book, err := app.library.MarkRead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Marked %q as read\n", book.Title)
			return nil
		},
	}
}

func newListRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a book from whichever list holds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return app.library.Remove(cmd.Context(), args[0])
		},
	}
}

func newListImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-import books into the to-read list",
		Long:  `Imports books from a .csv (title,author[,isbn] header) or .parquet file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			books, err := library.ReadBookFile(args[0])
			if err != nil {
				return err
			}
			n, err := app.library.ImportToRead(cmd.Context(), books)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d books\n", n)
			return nil
		},
	}
}
