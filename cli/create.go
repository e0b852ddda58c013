package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui"
)

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	var (
		date        string
		kind        string
		description string
		status      string
		responsible string
		inactive    bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new incident",
		Long: `Register a new incident.

Date defaults to now, type to OTHER and status to OPEN. The combination of
date, type and responsible must be unique.`,
		Example: `  incidents create --description "Conveyor stopped" --responsible "Ana Soto"
  incidents create --type security --status in_progress --date "2026-03-01 08:30" \
    --description "Badge reader bypassed" --responsible "Juan Pérez"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := openApp(ctx, cmd, format)
			if err != nil {
				return err
			}
			defer closeApp(app)

			loc := app.Config.Location()
			in := incident.Input{
				Description: description,
				Responsible: responsible,
			}

			if date != "" {
				in.Date, err = parseDate(date, loc)
				if err != nil {
					return ErrValidation("invalid --date", err)
				}
			}
			if kind != "" {
				if in.Type, err = incident.ParseType(kind); err != nil {
					return ErrValidation("invalid --type", err)
				}
			}
			if status != "" {
				if in.Status, err = incident.ParseStatus(status); err != nil {
					return ErrValidation("invalid --status", err)
				}
			}
			if inactive {
				active := false
				in.IsActive = &active
			}

			inc, err := app.Store.Create(ctx, in)
			if err != nil {
				return storeError("failed to create incident", err)
			}

			return app.Presenter.RenderIncident(tui.NewIncidentDetailView(inc, loc))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date of the incident (default now)")
	cmd.Flags().StringVar(&kind, "type", "", "incident type: failure, security, operation, other")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what happened")
	cmd.Flags().StringVar(&status, "status", "", "status: open, in_progress, resolved, closed")
	cmd.Flags().StringVarP(&responsible, "responsible", "r", "", "person in charge")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the incident already deactivated")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
