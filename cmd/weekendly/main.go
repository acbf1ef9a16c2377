package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/cli/backups"
	catalogcmd "github.com/julianstephens/weekendly/internal/cli/catalog"
	"github.com/julianstephens/weekendly/internal/cli/planner"
	"github.com/julianstephens/weekendly/internal/cli/plans"
	"github.com/julianstephens/weekendly/internal/cli/schedule"
	"github.com/julianstephens/weekendly/internal/cli/system"
	"github.com/julianstephens/weekendly/internal/config"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/errors"
	"github.com/julianstephens/weekendly/internal/keyring"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/storage"
	"github.com/julianstephens/weekendly/internal/storage/postgres"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, logs, backups and file stores." type:"string" default:"~/.config/weekendly" name:"config-dir"`
	Backend   string `help:"Storage backend: diskv, sqlite, postgres or memory. Overrides config.yaml."`
	Store     string `help:"Store path, or PostgreSQL connection string without embedded credentials. Passwords belong in the OS keyring, the environment, or .pgpass."`
	Debug     bool   `help:"Log to stderr at debug level."`

	Init system.InitCmd `cmd:"" help:"Initialize weekendly storage."`

	Catalog struct {
		List   catalogcmd.ListCmd   `cmd:"" help:"List catalog activities." default:"1"`
		Search catalogcmd.SearchCmd `cmd:"" help:"Search activities by name or description."`
	} `cmd:"" help:"Browse the activity catalog."`

	Slots    schedule.SlotsCmd    `cmd:"" help:"Show start times for an activity on a day."`
	Add      schedule.AddCmd      `cmd:"" help:"Schedule an activity."`
	Remove   schedule.RemoveCmd   `cmd:"" help:"Remove a scheduled activity."`
	Reorder  schedule.ReorderCmd  `cmd:"" help:"Set the order of a day's activities."`
	Move     schedule.MoveCmd     `cmd:"" help:"Move an activity to another position on the same day."`
	Transfer schedule.TransferCmd `cmd:"" help:"Move an activity to the other day."`
	Mood     schedule.MoodCmd     `cmd:"" help:"Tag an activity with a mood."`
	Notes    schedule.NotesCmd    `cmd:"" help:"Attach or clear an activity note."`

	Show   planner.ShowCmd   `cmd:"" help:"Show the working draft." default:"1"`
	Theme  planner.ThemeCmd  `cmd:"" help:"Set the weekend theme."`
	Name   planner.NameCmd   `cmd:"" help:"Rename the working draft."`
	Reset  planner.ResetCmd  `cmd:"" help:"Clear the working draft."`
	Export planner.ExportCmd `cmd:"" help:"Render the working draft as Markdown."`

	Plans struct {
		Save   plans.SaveCmd   `cmd:"" help:"Save the working draft as a named plan."`
		List   plans.ListCmd   `cmd:"" help:"List saved plans." default:"1"`
		Show   plans.ShowCmd   `cmd:"" help:"Show a saved plan."`
		Load   plans.LoadCmd   `cmd:"" help:"Copy a saved plan into the working draft."`
		Delete plans.DeleteCmd `cmd:"" help:"Delete a saved plan."`
	} `cmd:"" help:"Manage saved plans."`

	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

// needsStore reports whether the selected command reads or writes plans.
func needsStore(command string) bool {
	for _, prefix := range []string{"keyring", "catalog"} {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

// resolveLocation returns the backend location. Postgres connection strings
// from the flag must carry no password; otherwise the environment and the
// keyring are consulted.
func resolveLocation(cfg *config.Config, fromFlag bool) (string, error) {
	if cfg.Backend != constants.BackendPostgres {
		return cfg.StorePath, nil
	}
	if fromFlag {
		if _, err := postgres.ValidateConnString(cfg.StorePath); err != nil {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use 'weekendly keyring set' or %s", constants.EnvDBConnection)
			}
			return "", err
		}
		return cfg.StorePath, nil
	}
	if cfg.StorePath != "" {
		return cfg.StorePath, nil
	}
	connStr, source, err := keyring.ResolveConnectionString()
	if err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	logger.Debug("Using PostgreSQL connection string", "source", source, "conn", keyring.MaskPassword(connStr))
	return connStr, nil
}

// openStore attaches backend to appCtx and loads the draft. On failure the
// backend is closed and appCtx.Store is left nil.
func openStore(appCtx *cli.Context, backend storage.Backend, command string) error {
	appCtx.Store = storage.New(backend)
	// init prepares the backend itself
	if command == "init" {
		return nil
	}
	err := backend.Load()
	if err == nil {
		err = appCtx.Open()
	}
	if err != nil {
		_ = appCtx.Store.Close()
		appCtx.Store = nil
		return err
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFile(cfg.CatalogPath)
	}
	return catalog.Default()
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekend planner: pick activities, schedule them across Saturday and Sunday, save the plans you like."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		errors.Fatal(err)
	}
	if err := cfg.Override(CLI.Backend, CLI.Store, CLI.Debug); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir, Level: cfg.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to load activity catalog: %w", err))
	}

	command := ctx.Command()
	appCtx := cli.NewContext(cfg, nil, cat)

	if needsStore(command) {
		location, err := resolveLocation(cfg, CLI.Store != "")
		if err != nil {
			errors.Fatal(err)
		}
		backend, err := storage.NewBackend(cfg.Backend, location)
		if err != nil {
			errors.Fatal(err)
		}
		if err := openStore(appCtx, backend, command); err != nil {
			errors.Fatal(err)
		}
		defer appCtx.Store.Close()
	}

	logger.Debug("Running command", "command", command, "backend", cfg.Backend)
	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			_ = appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}
