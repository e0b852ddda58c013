package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/walkthrough"
)

type walkthroughFlags struct {
	description string
	responsible string
	listLimit   int
}

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	var flags walkthroughFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the CRUD walkthrough",
		Long: `Run the CRUD walkthrough.

Creates an incident, reads it back, lists the open incidents, updates its
status, marks it inactive with a bulk update and finally deletes it. The
first failing step aborts the run with a non-zero exit code.`,
		Example: `  incidents demo
  incidents demo --responsible "Ana Soto" --list-limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkthrough(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.description, "description", "", "description of the walkthrough incident")
	cmd.Flags().StringVar(&flags.responsible, "responsible", "", "responsible of the walkthrough incident")
	cmd.Flags().IntVar(&flags.listLimit, "list-limit", 0, "maximum open incidents listed")

	return cmd
}

func runWalkthrough(cmd *cobra.Command, flags walkthroughFlags) error {
	app, err := openApp(cmd.Context(), cmd, "table")
	if err != nil {
		return err
	}
	defer closeApp(app)

	opts := walkthrough.Options{
		Description: app.Config.Walkthrough.Description,
		Responsible: app.Config.Walkthrough.Responsible,
		ListLimit:   app.Config.Walkthrough.ListLimit,
		Location:    app.Config.Location(),
		Highlight:   app.Colorizer().Success,
	}
	if flags.description != "" {
		opts.Description = flags.description
	}
	if flags.responsible != "" {
		opts.Responsible = flags.responsible
	}
	if flags.listLimit > 0 {
		opts.ListLimit = flags.listLimit
	}

	if _, err := walkthrough.Run(cmd.Context(), app.Store, cmd.OutOrStdout(), opts); err != nil {
		return storeError("walkthrough failed", err)
	}
	return nil
}
