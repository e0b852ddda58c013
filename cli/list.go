package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		filters filterFlags
		order   string
		limit   int
		offset  int
		count   bool
		format  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List incidents with filters",
		Long: `List incidents with filters.

Results are ordered by date, newest first, unless --order is given.
--order takes a comma-separated list of fields, each optionally prefixed
with "-" for descending order.`,
		Example: `  incidents list --status open
  incidents list --type failure --type security --active true
  incidents list --search pump --order -date,responsible --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := openApp(ctx, cmd, format)
			if err != nil {
				return err
			}
			defer closeApp(app)

			loc := app.Config.Location()
			filter, err := filters.build(loc)
			if err != nil {
				return err
			}

			if order != "" {
				terms, err := incident.ParseOrder(order)
				if err != nil {
					return ErrValidation("invalid --order", err)
				}
				filter = filter.WithOrder(terms...)
			}

			query := app.Store.Filter(filter.WithLimit(limit).WithOffset(offset))

			// Handle count-only mode
			if count {
				n, err := query.Count(ctx)
				if err != nil {
					return storeError("failed to count incidents", err)
				}
				return app.Presenter.RenderMessage(tui.FormatNumber(n) + " incidents")
			}

			incidents, err := query.All(ctx)
			if err != nil {
				return storeError("failed to list incidents", err)
			}

			return app.Presenter.RenderIncidents(tui.NewIncidentViews(incidents, loc))
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&order, "order", "", "ordering, e.g. -date,id")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum results (0 for no limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip first n results")
	cmd.Flags().BoolVar(&count, "count", false, "show count only")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, jsonl, csv")

	return cmd
}
