package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var (
		date        string
		kind        string
		description string
		status      string
		responsible string
		active      bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of one incident",
		Long: `Change fields of one incident.

Only the flags given on the command line are written. The incident is
loaded, modified and saved, which also refreshes its updated_at stamp.`,
		Example: `  incidents update 12 --status resolved
  incidents update 12 --responsible "Ana Soto" --active=false`,
		Args: cobra.ExactArgs(1),
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

			loc := app.Config.Location()
			flags := cmd.Flags()
			changes := incident.NewChanges()

			if flags.Changed("date") {
				d, err := parseDate(date, loc)
				if err != nil {
					return ErrValidation("invalid --date", err)
				}
				changes.SetDate(d)
			}
			if flags.Changed("type") {
				t, err := incident.ParseType(kind)
				if err != nil {
					return ErrValidation("invalid --type", err)
				}
				changes.SetType(t)
			}
			if flags.Changed("description") {
				changes.SetDescription(description)
			}
			if flags.Changed("status") {
				s, err := incident.ParseStatus(status)
				if err != nil {
					return ErrValidation("invalid --status", err)
				}
				changes.SetStatus(s)
			}
			if flags.Changed("responsible") {
				changes.SetResponsible(responsible)
			}
			if flags.Changed("active") {
				changes.SetActive(active)
			}

			if changes.IsEmpty() {
				return ErrValidation("nothing to update: pass at least one field flag", nil)
			}
			if err := changes.Validate(); err != nil {
				return storeError("invalid update", err)
			}

			inc, err := app.Store.Get(ctx, id)
			if err != nil {
				return storeError("lookup failed", err)
			}

			changes.ApplyTo(inc)
			if err := app.Store.Save(ctx, inc, changes.Fields()...); err != nil {
				return storeError("failed to update incident", err)
			}

			return app.Presenter.RenderIncident(tui.NewIncidentDetailView(inc, loc))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "new date")
	cmd.Flags().StringVar(&kind, "type", "", "new type: failure, security, operation, other")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status: open, in_progress, resolved, closed")
	cmd.Flags().StringVarP(&responsible, "responsible", "r", "", "new responsible")
	cmd.Flags().BoolVar(&active, "active", true, "set the active flag")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
