package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

type favoritesListOptions struct {
	jsonOutput bool
}

type favoritesClearOptions struct {
	force bool
}

func newFavoritesCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite images",
	}

	cmd.AddCommand(newFavoritesListCmd(flags))
	cmd.AddCommand(newFavoritesRemoveCmd(flags))
	cmd.AddCommand(newFavoritesClearCmd(flags))
	cmd.AddCommand(newFavoritesShareCmd(flags))

	return cmd
}

func newFavoritesListCmd(flags *rootFlags) *cobra.Command {
	opts := &favoritesListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite images in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			records := app.Favorites.List()
			if opts.jsonOutput {
				return renderImagesJSON(cmd.OutOrStdout(), imagesJSONPayload{}, records, app.Favorites)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				fmt.Fprintln(cmd.OutOrStdout(), "\nPress space on an image in 'mosaic browse' to add one.")
				return nil
			}
			return renderImagesTable(cmd.OutOrStdout(), records, app.Favorites)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func newFavoritesRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <image-id>",
		Short: "Remove an image from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return newCommandError("remove favorite", "validating image ID", errors.New("image ID cannot be empty"), "Provide the image ID you wish to remove.")
			}

			app, err := newAppContext(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			removed, err := app.Favorites.Remove(id)
			if err != nil {
				return newCommandError("remove favorite", fmt.Sprintf("saving favorites without %q", id), err, "Check disk space and file permissions, then retry.")
			}
			if !removed {
				return newCommandError("remove favorite", fmt.Sprintf("looking up %q", id), errors.New("image is not a favorite"), "Run 'mosaic favorites list' to view favorite images.")
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed '%s' from favorites\n", id)
			return nil
		},
	}
}

func newFavoritesClearCmd(flags *rootFlags) *cobra.Command {
	opts := &favoritesClearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			count := app.Favorites.Len()
			if count == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No favorites to clear.")
				return nil
			}

			if !opts.force {
				confirmed, err := confirmClear(cmd, count)
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Favorites.Clear(); err != nil {
				return newCommandError("clear favorites", "saving favorites", err, "Check disk space and file permissions, then retry.")
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d favorites\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Clear without confirmation")

	return cmd
}

type favoritesShareOptions struct {
	open bool
}

// openURL is swapped in tests to keep the browser closed.
var openURL = browser.OpenURL

func newFavoritesShareCmd(flags *rootFlags) *cobra.Command {
	opts := &favoritesShareOptions{}

	cmd := &cobra.Command{
		Use:       "share <image-id> <facebook|twitter|pinterest>",
		Short:     "Print the share link of a favorite image",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(gallery.Facebook), string(gallery.Twitter), string(gallery.Pinterest)},
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := gallery.ParsePlatform(args[1])
			if err != nil {
				return newCommandError("share favorite", "reading the platform", err, "Use facebook, twitter or pinterest.")
			}

			app, err := newAppContext(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			id := strings.TrimSpace(args[0])
			record, ok := findFavorite(app.Favorites, id)
			if !ok {
				return newCommandError("share favorite", fmt.Sprintf("looking up %q", id), errors.New("image is not a favorite"), "Run 'mosaic favorites list' to view favorite images.")
			}

			link, err := gallery.ShareURL(platform, record.URL)
			if err != nil {
				return newCommandError("share favorite", fmt.Sprintf("building the %s link", platform), err, "Remove and re-add the favorite from 'mosaic browse'.")
			}

			if opts.open {
				if err := openURL(link); err != nil {
					return newCommandError("share favorite", "opening the browser", err, "Copy the link printed above into your browser.")
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.open, "open", false, "Open the link in the default browser")

	return cmd
}

func findFavorite(favorites *gallery.Favorites, id string) (gallery.ImageRecord, bool) {
	for _, r := range favorites.List() {
		if r.ID == id {
			return r, true
		}
	}
	return gallery.ImageRecord{}, false
}

func confirmClear(cmd *cobra.Command, count int) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("clear favorites", "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Remove all %d favorites? [y/N]: ", count)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

var isTerminal = func(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
