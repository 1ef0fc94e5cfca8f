package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/juliexu77/babyrhythm/internal/cli"
	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/errors"
	"github.com/juliexu77/babyrhythm/internal/keyring"
	"github.com/juliexu77/babyrhythm/internal/logger"
	"github.com/juliexu77/babyrhythm/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"SQLite file path, PostgreSQL connection string, or \"keyring\" to read a stored connection string. PostgreSQL credentials must NOT be embedded; store them with 'babyrhythm settings --connection-string'." default:"${config_path}"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize babyrhythm storage."`
	Log      cli.LogCmd      `cmd:"" help:"Log a care event."`
	Events   cli.EventsCmd   `cmd:"" help:"List recent events."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Check whether a habitual activity looks forgotten."`
	Dismiss  cli.DismissCmd  `cmd:"" help:"Dismiss today's suggestion for a sub-pattern."`
	Accept   cli.AcceptCmd   `cmd:"" help:"Mark a suggestion as acted on."`
	Predict  cli.PredictCmd  `cmd:"" help:"Predict today's nap schedule."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show learned pattern statistics."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the periodic missed-activity watcher."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Infant-care logger that learns the routine and nudges when something looks forgotten"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	store, err := selectStore(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store.GetConfigPath()),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{Store: store, Debug: CLI.Debug}

	// Load the store before running the command; init handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}
}

func selectStore(config string) (storage.Provider, error) {
	if config == "keyring" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("no connection string in keyring, store one with 'babyrhythm settings --connection-string': %w", err)
		}
		config = connStr
	}

	if storage.IsPostgresConnString(config) {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; store credentials in the OS keyring with 'babyrhythm settings --connection-string', or use .pgpass / environment variables")
		}
		return storage.NewPostgresStore(config), nil
	}
	return storage.NewSQLiteStore(config), nil
}

func configDir(storePath string) string {
	if storage.IsPostgresConnString(storePath) || storePath == ":memory:" {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, constants.AppName)
		}
		return "."
	}
	return filepath.Dir(storePath)
}
