package cli

import (
	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui"
)

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	var (
		filters filterFlags
		all     bool
		soft    bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete incidents by id or by filter",
		Long: `Delete incidents by id or by filter.

Rows are removed permanently unless --soft is given, in which case they are
only marked inactive. Deleting without an id or a filter flag requires
--all.`,
		Example: `  incidents delete 12
  incidents delete --status closed --until 2025-01-01
  incidents delete --active false --soft`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				filter *incident.Filter
				byID   int64
			)
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				byID = id
			}

			app, err := openApp(ctx, cmd, format)
			if err != nil {
				return err
			}
			defer closeApp(app)

			if byID != 0 {
				filter = incident.ByID(byID)
			} else {
				filter, err = filters.build(app.Config.Location())
				if err != nil {
					return err
				}
				if filter.IsEmpty() && !all {
					return ErrValidation("refusing to delete every incident: pass a filter or --all", nil)
				}
			}

			action := "Deleted"
			var n int
			if soft {
				action = "Deactivated"
				n, err = app.Store.Update(ctx, filter, incident.NewChanges().SetActive(false))
			} else {
				n, err = app.Store.Delete(ctx, filter)
			}
			if err != nil {
				return storeError("failed to delete incidents", err)
			}

			log.Infof("%s %d incident(s)", action, n)

			if byID != 0 && n == 0 {
				return ErrNotFound(byID)
			}

			return app.Presenter.RenderAffected(&tui.AffectedView{Action: action, Count: n})
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "allow deleting every incident when no filter is given")
	cmd.Flags().BoolVar(&soft, "soft", false, "mark matching incidents inactive instead of removing them")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
