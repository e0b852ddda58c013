// Package cli provides the command-line interface for incidents.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/config"
	"github.com/opsdesk/incidents/internal/version"
	"github.com/opsdesk/incidents/storage"
	"github.com/opsdesk/incidents/tui"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Store     storage.Store
	Presenter tui.Presenter
	Paths     *config.Paths
}

// NewApp creates a new App rendering table output to w.
func NewApp(cfg *config.Config, w io.Writer) *App {
	paths := config.ResolvePaths()
	if globalFlags.ConfigPath != "" {
		paths.ConfigFile = globalFlags.ConfigPath
	}
	paths.DatabaseFile = cfg.GetDatabasePath()

	app := &App{
		Config: cfg,
		Paths:  paths,
	}
	app.SetFormat(tui.FormatTable, w)
	return app
}

// SetFormat replaces the presenter with one rendering format to w.
func (a *App) SetFormat(format tui.Format, w io.Writer) {
	a.Presenter = tui.NewPresenter(format, tui.PresenterOptions{
		Writer:    w,
		UseColors: a.Config.ShouldUseColors(),
	})
}

// Colorizer returns a colorizer honoring the display settings.
func (a *App) Colorizer() *tui.Colorizer {
	return tui.NewColorizer(a.Config.ShouldUseColors())
}

// InitStore opens the configured backend and initializes its schema.
func (a *App) InitStore(ctx context.Context) error {
	level, err := storage.ParseSQLLogLevel(a.Config.Logging.SQL)
	if err != nil {
		return err
	}
	opts := []storage.Option{storage.WithSQLLogLevel(level)}

	var store *storage.SQLStore
	switch a.Config.Storage.Driver {
	case config.DriverPostgres:
		store, err = storage.NewPostgresStore(a.Config.Storage.DSN, opts...)
	default:
		store, err = storage.NewSQLiteStore(a.Config.GetDatabasePath(), opts...)
	}
	if err != nil {
		return err
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return err
	}

	a.Store = store
	return nil
}

// Close closes the application resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// GlobalFlags holds the global command flags.
type GlobalFlags struct {
	ConfigPath string
	NoColor    bool
}

var globalFlags GlobalFlags

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "incidents",
		Short: "Incident register with a CRUD walkthrough",
		Long: `Incidents keeps a register of operational incidents.

Running it without a subcommand performs the CRUD walkthrough against the
configured database: create, read, filter, update, bulk update and delete.`,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle NO_COLOR environment variable
			if os.Getenv("NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			if os.Getenv("INCIDENTS_NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			setupInternalLogger()

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkthrough(cmd, walkthroughFlags{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(
		NewDemoCmd(),
		NewCreateCmd(),
		NewGetCmd(),
		NewListCmd(),
		NewUpdateCmd(),
		NewDeleteCmd(),
		NewBrowseCmd(),
		NewStatusCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupInternalLogger sets up the DRY logger
func setupInternalLogger() {
	// Always skip the stdout logger since we are running in a CLI context
	// with our own output.
	_ = os.Setenv("APP_LOG_SKIP_STDOUT_LOGGER", "true")

	log.Init("incidents", "cli")
}

// loadApp loads the application with configuration. An explicit config
// path that does not exist yet selects the defaults.
func loadApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		if globalFlags.ConfigPath == "" || !isMissingFile(globalFlags.ConfigPath) {
			return nil, ErrConfig("invalid configuration", err)
		}
		cfg = config.Default()
	}

	// Override with flags
	if globalFlags.NoColor {
		cfg.Display.Colors = config.ColorNever
	}

	return NewApp(cfg, cmd.OutOrStdout()), nil
}

// openApp loads the configuration, opens the store and applies format.
// The caller must close the returned app.
func openApp(ctx context.Context, cmd *cobra.Command, format string) (*App, error) {
	f, err := tui.ParseFormat(format)
	if err != nil {
		return nil, ErrValidation("invalid --format", err)
	}

	app, err := loadApp(cmd)
	if err != nil {
		return nil, err
	}
	app.SetFormat(f, cmd.OutOrStdout())

	if err := app.InitStore(ctx); err != nil {
		return nil, ErrDatabase("failed to open database", err)
	}
	return app, nil
}

func closeApp(app *App) {
	if err := app.Close(); err != nil {
		log.Errorf("failed to close app: %v", err)
	}
}

func isMissingFile(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
