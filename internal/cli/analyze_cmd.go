package cli

import (
	"fmt"

	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "analyze <contract.pdf>",
		Short: "Extract notice clauses from a contract",
		Long: `Extract project details and notice clauses from a contract PDF and
print the notification matrix. With --json the analysis is also saved so
calendar and draft can reuse it without another model call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd, app); err != nil {
				return err
			}

			analysis, err := app.loadAnalysis(cmd.Context(), args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatProjectHeader(analysis.Metadata))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatMatrix(analysis.Clauses, app.now()))

			if jsonPath != "" {
				path, err := writeAnalysisFile(jsonPath, analysis)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatSaved("Analysis saved", path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json", "", "Save the analysis as JSON to this path")

	return cmd
}
