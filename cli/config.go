package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/config"
	"github.com/opsdesk/incidents/tui"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify configuration",
		Long: `View or modify configuration.

Subcommands allow viewing and modifying configuration values. Values are
validated before they are written, so an invalid setting never reaches
the config file.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
	)

	return cmd
}

// configFile returns the config file the config subcommands operate on.
func configFile() string {
	if globalFlags.ConfigPath != "" {
		return globalFlags.ConfigPath
	}
	return config.ResolvePaths().ConfigFile
}

func openManager() (*config.Manager, error) {
	mgr, err := config.NewManager(configFile())
	if err != nil {
		return nil, ErrConfig("failed to read configuration", err)
	}
	return mgr, nil
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tui.ParseFormat(format)
			if err != nil {
				return ErrValidation("invalid --format", err)
			}

			mgr, err := openManager()
			if err != nil {
				return err
			}

			presenter := tui.NewPresenter(f, tui.PresenterOptions{
				Writer:    cmd.OutOrStdout(),
				UseColors: !globalFlags.NoColor && tui.IsWriterTerminal(cmd.OutOrStdout()),
			})

			return presenter.RenderConfig(&tui.ConfigView{
				Location: mgr.ConfigPath(),
				Values:   mgr.AllSettings(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <key>",
		Short:   "Get specific config value",
		Example: `  incidents config get storage.driver`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager()
			if err != nil {
				return err
			}

			value := mgr.Get(args[0])
			if value == nil {
				return ErrConfig(fmt.Sprintf("key not found: %s", args[0]), nil)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set config value",
		Example: `  incidents config set display.timezone utc
  incidents config set walkthrough.list_limit 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			mgr, err := openManager()
			if err != nil {
				return err
			}

			value := config.ParseValue(args[1])
			if err := mgr.Set(key, value); err != nil {
				if errors.Is(err, config.ErrUnknownKey) {
					return ErrConfig(fmt.Sprintf("unknown key: %s (valid keys: %s)",
						key, strings.Join(mgr.Keys(), ", ")), nil)
				}
				return ErrConfig(fmt.Sprintf("cannot set %s", key), err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return nil
		},
	}

	return cmd
}

func newConfigResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager()
			if err != nil {
				return err
			}

			if err := mgr.Reset(); err != nil {
				return ErrConfig("failed to reset configuration", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
			return nil
		},
	}

	return cmd
}
