// Package cli provides the command-line interface for skillref.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillref/internal/config"
	"github.com/klauern/skillref/internal/logging"
	"github.com/klauern/skillref/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// loadedConfig holds the configuration resolved in the Before hook.
// The CLI is single-threaded, so plain package state is fine here.
var loadedConfig *config.Config

func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "skillref",
		Usage:   "Discover, validate, and render Agent Skills",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a skillref config file",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := loadConfig(cmd); err != nil {
				return ctx, err
			}
			configureColors(cmd)
			return ctx, configureLogging(cmd)
		},
		Commands: []*cli.Command{
			validateCommand(),
			listCommand(),
			countCommand(),
			toPromptCommand(),
			readPropertiesCommand(),
			newCommand(),
			browseCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// loadConfig resolves the configuration file for this invocation.
func loadConfig(cmd *cli.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	loadedConfig = cfg
	return nil
}

// configureColors sets up color output based on flags and config.
func configureColors(cmd *cli.Command) {
	switch {
	case cmd.Bool("no-color"), currentConfig().Output.Color == "never":
		ui.DisableColors()
	case currentConfig().Output.Color == "always":
		ui.EnableColors()
	}
}

// configureLogging sets up the logging level based on flags and config.
func configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()

	switch {
	case cmd.Bool("debug"):
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	case cmd.Bool("verbose"), currentConfig().Output.Verbose:
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
