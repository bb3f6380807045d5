package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/preferences"
	tui "github.com/alexisbeaulieu97/mosaic/internal/tui/gallery"
)

// runProgram is swapped in tests to avoid taking over the terminal.
var runProgram = func(cmd *cobra.Command, model tea.Model) error {
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := program.Run()
	return err
}

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [query]",
		Short: "Open the interactive gallery",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, strings.Join(args, " "))
		},
	}
}

func runBrowse(cmd *cobra.Command, flags *rootFlags, query string) error {
	app, err := newAppContext(cmd, flags, appOptions{fileLogging: true})
	if err != nil {
		return err
	}
	defer app.Close()

	client, err := app.Source("browse")
	if err != nil {
		return err
	}

	cfg := app.Config
	session := gallery.NewSession(gallery.SessionOptions{
		PerPage:      cfg.API.PerPage,
		Heights:      cfg.Grid.Heights,
		Seed:         uint64(time.Now().UnixNano()),
		DefaultQuery: cfg.Search.DefaultQuery,
		Debounce:     cfg.Search.Debounce,
		Logger:       app.Logger,
	}, app.Favorites, app.Theme)

	var changes <-chan struct{}
	if watcher, ok := app.Store.(preferences.Watcher); ok {
		changes, err = watcher.Watch()
		if err != nil {
			app.Logger.Error(err, "preference watch unavailable")
		}
	}

	model := tui.NewModel(tui.Options{
		Context:      cmd.Context(),
		Session:      session,
		Source:       client,
		Downloader:   client,
		Changes:      changes,
		DownloadDir:  cfg.Downloads.Dir,
		InitialQuery: strings.TrimSpace(query),
		Logger:       app.Logger,
	})

	app.Logger.Info("gallery started")
	if err := runProgram(cmd, model); err != nil {
		return newCommandError("browse", "running the gallery", err, "Run with --verbose and inspect the log file.")
	}
	return nil
}
