package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/noticepilot/internal/artifact"
	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/alexanderramin/noticepilot/internal/intelligence"
	"github.com/alexanderramin/noticepilot/internal/logging"
	"github.com/alexanderramin/noticepilot/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run [contract.pdf]",
		Short: "Start an interactive session",
		Long: `Start an interactive session: analyze a contract, browse the
notification matrix, export deadlines and draft notices.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runInteractive(cmd, app, path)
		},
	}
}

func runInteractive(cmd *cobra.Command, app *App, path string) error {
	if err := unlock(cmd, app); err != nil {
		return ignoreAbort(err)
	}
	r := &sessionRunner{
		app:    app,
		prompt: app.prompter(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		dir:    outputDir(cmd, app),
	}
	return ignoreAbort(r.run(cmd.Context(), path))
}

// sessionRunner drives one interactive session. Every failure inside a step
// is reported and the session continues; only the user ends it.
type sessionRunner struct {
	app    *App
	prompt prompter
	out    io.Writer
	errOut io.Writer
	dir    string
}

func (r *sessionRunner) run(ctx context.Context, path string) error {
	sess := session.New()
	ctx = logging.WithSession(ctx, sess.ID)
	log := logging.FromContext(ctx)
	log.Debug("session started")
	defer log.Debug("session ended")

	fmt.Fprint(r.out, formatter.FormatTitle())
	if r.app.ModelErr != nil {
		fmt.Fprintln(r.out, formatter.Errorf("Authentication Failed: %v", r.app.ModelErr))
	}

	for {
		if path == "" {
			p, err := r.prompt.ContractPath(ctx)
			if err != nil {
				return err
			}
			path = p
		}

		analysis, err := r.app.loadAnalysis(ctx, path, r.errOut)
		path = ""
		switch {
		case errors.Is(err, intelligence.ErrAnalysisFailed):
			fmt.Fprintln(r.out, formatter.Errorf("AI Analysis Failed: %v", err))
			sess = sess.WithAnalysis(analysis)
		case err != nil:
			fmt.Fprintln(r.out, formatter.Errorf("Error reading PDF: %v", err))
			continue
		default:
			fmt.Fprintln(r.out, formatter.StyleGreen.Render("Extraction Complete!"))
			sess = sess.WithAnalysis(analysis)
		}

		next, reload, err := r.matrix(ctx, sess)
		if err != nil {
			return err
		}
		if !reload {
			return nil
		}
		sess = next
	}
}

// matrix loops on the clause picker until the user quits or asks for a new
// contract.
func (r *sessionRunner) matrix(ctx context.Context, sess session.Session) (session.Session, bool, error) {
	for {
		choice, err := r.prompt.PickClause(ctx, sess, r.app.now())
		if err != nil {
			return sess, false, err
		}

		switch choice.action {
		case actionQuit:
			return sess, false, nil
		case actionReload:
			return sess, true, nil
		case actionCalendar:
			r.exportCalendar(sess)
		case actionDraft:
			sess, err = r.draft(ctx, sess, choice.index)
			if err != nil {
				return sess, false, err
			}
		}
	}
}

func (r *sessionRunner) exportCalendar(sess session.Session) {
	path, events, err := r.app.exportCalendar(sess.Analysis().Clauses, r.dir)
	if err != nil {
		fmt.Fprintln(r.out, formatter.Errorf("Calendar export failed: %v", err))
		return
	}
	fmt.Fprint(r.out, "\n"+formatter.Header("📅 Risk Management")+"\n")
	fmt.Fprint(r.out, formatter.FormatDeadlines(events, r.app.now()))
	fmt.Fprint(r.out, formatter.FormatSaved("Calendar events saved", path))
}

// draft runs the notice form and the drafting stage for clause i. Drafting
// failures are shown and leave the session as it was; only an error that
// should end the session is returned.
func (r *sessionRunner) draft(ctx context.Context, sess session.Session, i int) (session.Session, error) {
	selected, err := sess.Select(i)
	if err != nil {
		fmt.Fprintln(r.out, formatter.Errorf("%v", err))
		return sess, nil
	}
	sess = selected
	c, _ := sess.Selected()
	ctx = logging.WithClause(ctx, c.ClauseID)
	log := logging.FromContext(ctx)

	fmt.Fprint(r.out, "\n"+formatter.Header("3. Draft Notice: "+c.ClauseID)+"\n")
	fmt.Fprint(r.out, formatter.FormatClauseDetail(c))

	to, in, err := r.prompt.NoticeDetails(ctx, c, sess.Recipient(), r.app.now())
	if err != nil {
		if isAbort(err) {
			return sess, nil
		}
		return sess, err
	}

	stop := r.app.spin(r.errOut, "Drafting letter...")
	d, err := r.app.Drafting.Draft(ctx, c, to, in)
	stop()
	if err != nil {
		log.Warn("drafting failed", "error", err)
		fmt.Fprintln(r.out, formatter.Errorf("Drafting failed: %v", err))
		return sess, nil
	}
	log.Debug("notice drafted", "chars", len(d.Text))

	sess, err = sess.WithDraft(d)
	if err != nil {
		return sess, err
	}

	fmt.Fprint(r.out, "\n"+formatter.Header("4. Final Output")+"\n")
	fmt.Fprintln(r.out, formatter.FormatDraft(d))

	letter := artifact.Letter(d)
	save, err := r.prompt.ConfirmSave(ctx, letter.Filename)
	if err != nil {
		if isAbort(err) {
			return sess, nil
		}
		return sess, err
	}
	if !save {
		return sess, nil
	}
	path, err := artifact.Write(r.dir, letter)
	if err != nil {
		fmt.Fprintln(r.out, formatter.Errorf("Saving letter failed: %v", err))
		return sess, nil
	}
	fmt.Fprint(r.out, formatter.FormatSaved("Notice saved", path))
	return sess, nil
}

// isAbort reports whether err means the user backed out of a prompt.
func isAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, context.Canceled)
}

func ignoreAbort(err error) error {
	if isAbort(err) {
		return nil
	}
	return err
}
