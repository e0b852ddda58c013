package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/internal/version"
	"github.com/opsdesk/incidents/storage"
	"github.com/opsdesk/incidents/tui"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database and configuration status",
		Long: `Show database and configuration status.

Displays the current status of the tool including:
- Tool version
- Database backend, location, size and record counts
- Configuration settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := openApp(ctx, cmd, format)
			if err != nil {
				return err
			}
			defer closeApp(app)

			info, err := tui.RunWithSpinner("Collecting database statistics...", func() (*storage.DatabaseInfo, error) {
				return app.Store.Info(ctx)
			}, tui.WithWriter(cmd.ErrOrStderr()))
			if err != nil {
				return storeError("failed to read database status", err)
			}

			loc := app.Config.Location()
			view := &tui.StatusView{
				Version: version.Version,
				Database: tui.DatabaseView{
					Driver:        info.Driver,
					Location:      info.Location,
					SizeBytes:     info.SizeBytes,
					SizeHuman:     tui.FormatBytes(info.SizeBytes),
					IncidentCount: info.IncidentCount,
					ActiveCount:   info.ActiveCount,
				},
				Config: tui.ConfigStatusView{
					Location:    app.Paths.ConfigFile,
					SQLLogLevel: app.Config.Logging.SQL,
					Timezone:    string(app.Config.Display.Timezone),
				},
			}

			if !info.OldestIncident.IsZero() {
				view.Database.OldestIncident = info.OldestIncident.In(loc)
				view.Database.NewestIncident = info.NewestIncident.In(loc)
			}

			for _, s := range incident.Statuses() {
				view.Database.StatusCounts = append(view.Database.StatusCounts, tui.StatusCountView{
					Status: s.String(),
					Count:  info.StatusCounts[s],
				})
			}

			return app.Presenter.RenderStatus(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
