package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/tui"
)

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := openApp(ctx, cmd, format)
			if err != nil {
				return err
			}
			defer closeApp(app)

			inc, err := app.Store.Get(ctx, id)
			if err != nil {
				return storeError("lookup failed", err)
			}

			return app.Presenter.RenderIncident(tui.NewIncidentDetailView(inc, app.Config.Location()))
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
