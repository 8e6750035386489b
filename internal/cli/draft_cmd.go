package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/noticepilot/internal/artifact"
	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/alexanderramin/noticepilot/internal/logging"
	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/alexanderramin/noticepilot/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type draftFlags struct {
	clauseID  string
	date      string
	cause     string
	effect    string
	owner     string
	recipient string
	project   string
	contract  string
}

func newDraftCmd(app *App) *cobra.Command {
	var f draftFlags

	cmd := &cobra.Command{
		Use:   "draft <contract.pdf|analysis.json>",
		Short: "Draft a notice letter for one clause",
		Long: `Draft a formal notice letter for the clause given by --clause.
Addressing defaults to the extracted project details; any of them can be
overridden. The letter is printed and saved as Notice_<clause>.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd, app); err != nil {
				return err
			}

			eventDate := app.now()
			if f.date != "" {
				d, err := time.Parse(dateLayout, f.date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", f.date)
				}
				eventDate = d
			}

			ctx := cmd.Context()
			analysis, err := app.loadAnalysis(ctx, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sess, err := session.New().WithAnalysis(analysis).SelectByID(f.clauseID)
			if err != nil {
				return fmt.Errorf("clause %q: %w", f.clauseID, err)
			}
			c, _ := sess.Selected()

			to := applyRecipientFlags(cmd.Flags(), f, sess.Recipient())
			in := notice.NoticeInputs{EventDate: eventDate, Cause: f.cause, Effect: f.effect}

			ctx = logging.WithClause(logging.WithSession(ctx, sess.ID), c.ClauseID)
			stop := app.spin(cmd.ErrOrStderr(), "Drafting letter...")
			d, err := app.Drafting.Draft(ctx, c, to, in)
			stop()
			if err != nil {
				return err
			}
			if _, err := sess.WithDraft(d); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatDraft(d))

			path, err := artifact.Write(outputDir(cmd, app), artifact.Letter(d))
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatSaved("Notice saved", path))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.clauseID, "clause", "", "Clause ID to draft for (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "Date of the event, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.cause, "cause", "", "What happened on site")
	cmd.Flags().StringVar(&f.effect, "effect", "", "Impact on the work, time or cost")
	cmd.Flags().StringVar(&f.owner, "owner", "", "Owner organization (default from contract)")
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "Attention line (default \""+notice.DefaultRecipient+"\")")
	cmd.Flags().StringVar(&f.project, "project", "", "Project name (default from contract)")
	cmd.Flags().StringVar(&f.contract, "contract", "", "Contract number (default from contract)")
	_ = cmd.MarkFlagRequired("clause")

	return cmd
}

// applyRecipientFlags overrides the defaults with every addressing flag the
// user set explicitly, including ones set to an empty string.
func applyRecipientFlags(flags *pflag.FlagSet, f draftFlags, to notice.RecipientInfo) notice.RecipientInfo {
	if flags.Changed("owner") {
		to.Owner = f.owner
	}
	if flags.Changed("recipient") {
		to.Recipient = f.recipient
	}
	if flags.Changed("project") {
		to.Project = f.project
	}
	if flags.Changed("contract") {
		to.ContractNum = f.contract
	}
	return to
}
