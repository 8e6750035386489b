package cli

import (
	"io"
	"os"
	"time"

	"github.com/alexanderramin/noticepilot/internal/auth"
	"github.com/alexanderramin/noticepilot/internal/calendar"
	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/alexanderramin/noticepilot/internal/intelligence"
	"github.com/alexanderramin/noticepilot/internal/pdftext"
	"github.com/spf13/cobra"
)

// App holds the collaborators used by CLI commands.
type App struct {
	Extractor pdftext.Extractor
	Analysis  intelligence.ExtractionService
	Drafting  intelligence.DraftingService
	Calendar  calendar.Exporter
	Gate      *auth.Gate
	OutputDir string

	// ModelErr is the model client initialisation failure, shown once when
	// an interactive session starts. Model calls still go through the
	// degraded client and fail individually.
	ModelErr error

	Now           func() time.Time
	IsInteractive func() bool

	// prompt drives the interactive session; huh forms when nil.
	prompt prompter
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) prompter() prompter {
	if a.prompt != nil {
		return a.prompt
	}
	return huhPrompter{}
}

// spin shows a spinner on w for interactive runs. The returned func stops it.
func (a *App) spin(w io.Writer, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(w, message)
}

// NewRootCmd creates the top-level "noticepilot" command. Without a
// subcommand it starts an interactive session on a terminal and prints help
// otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "noticepilot",
		Short: formatter.AppTitle,
		Long: formatter.AppTitle + `

Reads a construction contract, lists the clauses that require written
notice, exports their deadlines to a calendar file and drafts notice
letters.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runInteractive(cmd, app, "")
		},
	}

	root.PersistentFlags().StringP("password", "p", "", "access password (default $"+passwordEnv+")")
	root.PersistentFlags().StringP("out", "o", "", "output directory for calendar and letter files")

	root.AddCommand(
		newRunCmd(app),
		newAnalyzeCmd(app),
		newCalendarCmd(app),
		newDraftCmd(app),
	)

	return root
}

// outputDir resolves --out against the configured directory.
func outputDir(cmd *cobra.Command, app *App) string {
	if dir, _ := cmd.Flags().GetString("out"); dir != "" {
		return dir
	}
	if app.OutputDir != "" {
		return app.OutputDir
	}
	return "."
}

// passwordEnv supplies the access password to non-interactive runs.
const passwordEnv = "NOTICEPILOT_PASSWORD"

func passwordAttempt(cmd *cobra.Command) string {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw
	}
	return os.Getenv(passwordEnv)
}
