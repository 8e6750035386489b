package cli

import (
	"fmt"

	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <contract.pdf|analysis.json>",
		Short: "Export notice deadlines as an iCalendar file",
		Long: `Derive a deadline for every notice clause and write them to
project_deadlines.ics in the output directory. Each event carries a
reminder one day before it is due.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd, app); err != nil {
				return err
			}

			analysis, err := app.loadAnalysis(cmd.Context(), args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if analysis.IsEmpty() {
				return fmt.Errorf("no notice clauses in %s", args[0])
			}

			path, events, err := app.exportCalendar(analysis.Clauses, outputDir(cmd, app))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatDeadlines(events, app.now()))
			fmt.Fprint(out, formatter.FormatSaved("Calendar events saved", path))
			return nil
		},
	}
}
