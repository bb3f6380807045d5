package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/mosaic/internal/config"
	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
	"github.com/alexisbeaulieu97/mosaic/internal/preferences"
	"github.com/alexisbeaulieu97/mosaic/internal/unsplash"
)

// AppContext bundles long-lived services created for one command.
type AppContext struct {
	Config    *config.Config
	Logger    *logger.Logger
	Store     preferences.Store
	Favorites *gallery.Favorites
	Theme     *gallery.Theme

	logCloser io.Closer
}

type appOptions struct {
	// fileLogging sends logs to the log file instead of stderr, for the TUI.
	fileLogging bool
}

func newAppContext(cmd *cobra.Command, flags *rootFlags, opts appOptions) (*AppContext, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "loading configuration", err, "Fix the configuration file or pass --config with a valid path.")
	}

	app := &AppContext{Config: cfg}

	log, closer, err := buildLogger(cmd, flags, cfg, opts)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "creating logger", err, "Check the log level and that the log file is writable.")
	}
	app.Logger = log
	app.logCloser = closer

	store, err := preferences.Open(cfg.Store, log)
	if err != nil {
		app.Close()
		return nil, newCommandError(cmd.Name(), "opening preference store", err, "Check permissions on "+cfg.Store.Path+".")
	}
	app.Store = store

	favorites, err := gallery.LoadFavorites(store, log)
	if err != nil {
		app.Close()
		return nil, newCommandError(cmd.Name(), "loading favorites", err, "Check permissions on "+cfg.Store.Path+".")
	}
	app.Favorites = favorites

	theme, err := gallery.LoadTheme(store, log)
	if err != nil {
		app.Close()
		return nil, newCommandError(cmd.Name(), "loading theme", err, "Check permissions on "+cfg.Store.Path+".")
	}
	app.Theme = theme

	return app, nil
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("determine state directory: %w", err)
	}

	path := flags.configPath
	required := path != ""
	if !required {
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, fmt.Errorf("determine config path: %w", err)
		}
	}
	return config.Load(path, dir, required)
}

func buildLogger(cmd *cobra.Command, flags *rootFlags, cfg *config.Config, opts appOptions) (*logger.Logger, io.Closer, error) {
	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	fields := map[string]any{"session_id": uuid.NewString()}

	if !opts.fileLogging {
		log, err := logger.New(logger.Options{
			Level:         level,
			HumanReadable: true,
			Writer:        cmd.ErrOrStderr(),
			Fields:        fields,
		})
		return log, nil, err
	}

	path := cfg.Log.File
	if flags.logFile != "" {
		path = flags.logFile
	}
	if path == "" {
		log, err := logger.New(logger.Options{Level: level, Writer: io.Discard})
		return log, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := logger.New(logger.Options{Level: level, Writer: file, Fields: fields})
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return log, file, nil
}

// Source returns the Unsplash client, failing when no access key is set.
func (a *AppContext) Source(operation string) (*unsplash.Client, error) {
	if a.Config.API.AccessKey == "" {
		return nil, newCommandError(operation, "preparing the image source", unsplash.ErrMissingAccessKey,
			"Set "+config.EnvAccessKey+" in your environment or .env file, or api.access_key in the configuration.")
	}
	client, err := unsplash.NewClient(unsplash.Options{
		Endpoint:  a.Config.API.Endpoint,
		AccessKey: a.Config.API.AccessKey,
		Timeout:   a.Config.API.Timeout,
		Logger:    a.Logger,
	})
	if err != nil {
		return nil, newCommandError(operation, "preparing the image source", err, "Check api.endpoint in the configuration.")
	}
	return client, nil
}

// Close releases the store and log file.
func (a *AppContext) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
