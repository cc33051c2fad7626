package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// Uploads from phones arrive in several writes, so a new file only gets
// scanned after it has been quiet for a moment.
const settleDelay = 500 * time.Millisecond

func newWatchCmd(configPath *string) *cobra.Command {
	var addUnknown bool

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Scan every photo dropped into a directory",
		Long: `Watches a directory and scans each new photo as it appears. Handy
together with a phone sync folder: photograph a shelf and the books show
up in your lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(args[0]); err != nil {
				return err
			}
			slog.Info("watching for photos", "dir", args[0])

			pending := map[string]time.Time{}
			ticker := time.NewTicker(250 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
						continue
					}
					if !isImage(ev.Name) {
						continue
					}
					pending[ev.Name] = time.Now()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					slog.Error("watch error", "err", err)
				case <-ticker.C:
					now := time.Now()
					for path, seen := range pending {
						if now.Sub(seen) < settleDelay {
							continue
						}
						delete(pending, path)
						scanFile(cmd, app, path, addUnknown)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&addUnknown, "add", false, "Add books not already on a list to the to-read list")

	return cmd
}

func scanFile(cmd *cobra.Command, app *app, path string, addUnknown bool) {
	slog.Info("scanning photo", "path", path)

	image, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read photo", "path", path, "err", err)
		return
	}

	books, err := app.scanner.Scan(cmd.Context(), image)
	if err != nil {
		slog.Error("scan failed", "path", path, "err", err)
		return
	}

	for _, detected := range books {
		if detected.InReadingList {
			slog.Info("already on a list", "title", detected.Title, "read", detected.IsRead)
			continue
		}
		if !addUnknown {
			slog.Info("detected", "title", detected.Title, "author", detected.Author)
			continue
		}
		added, err := app.library.AddToRead(cmd.Context(), detected.Book)
		if err != nil {
			slog.Error("failed to add book", "title", detected.Title, "err", err)
			continue
		}
		slog.Info("added to to-read list", "title", added.Title, "author", added.Author)
	}
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".tiff", ".bmp":
		return true
	}
	return false
}
