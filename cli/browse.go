package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui/component/browse"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	var (
		search   string
		types    []string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and administer incidents interactively",
		Long: `Browse and administer incidents interactively.

Opens a full-screen list of incidents. From there incidents can be
filtered by status, deactivated, moved to the next status or deleted.
Press ? inside the browser for the key bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := openApp(ctx, cmd, "table")
			if err != nil {
				return err
			}
			defer closeApp(app)

			opts := browse.Options{
				Store:    app.Store,
				Search:   search,
				PageSize: pageSize,
				Location: app.Config.Location(),
			}
			for _, s := range types {
				t, err := incident.ParseType(s)
				if err != nil {
					return ErrValidation("invalid --type", err)
				}
				opts.Types = append(opts.Types, t)
			}

			prog := tea.NewProgram(browse.New(opts),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "only show incidents matching this text")
	cmd.Flags().StringArrayVar(&types, "type", nil, "only show incidents of this type (repeatable)")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "incidents per page")

	return cmd
}
