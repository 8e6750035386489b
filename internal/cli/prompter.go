package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/alexanderramin/noticepilot/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// prompter collects everything the interactive session asks the user.
type prompter interface {
	// Password asks for the access secret; wrong is set after a rejection.
	Password(ctx context.Context, wrong bool) (string, error)
	ContractPath(ctx context.Context) (string, error)
	PickClause(ctx context.Context, s session.Session, now time.Time) (matrixChoice, error)
	NoticeDetails(ctx context.Context, c notice.Clause, defaults notice.RecipientInfo, today time.Time) (notice.RecipientInfo, notice.NoticeInputs, error)
	ConfirmSave(ctx context.Context, filename string) (bool, error)
}

// huhPrompter asks with huh forms and the clause matrix view.
type huhPrompter struct{}

func runForm(ctx context.Context, groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithTheme(noticeHuhTheme()).
		WithShowHelp(false).
		RunWithContext(ctx)
}

func (huhPrompter) Password(ctx context.Context, wrong bool) (string, error) {
	var pw string
	input := huh.NewInput().
		Title("🔒 Please enter the Password to access this tool:").
		EchoMode(huh.EchoModePassword).
		Value(&pw)
	if wrong {
		input = input.Description("😕 Password incorrect. Please ask the administrator.")
	}
	err := runForm(ctx, huh.NewGroup(input))
	return pw, err
}

func (huhPrompter) ContractPath(ctx context.Context) (string, error) {
	var path string
	err := runForm(ctx, huh.NewGroup(
		huh.NewInput().
			Title("Upload Contract (PDF)").
			Description("Path to the contract PDF, or an analysis saved with analyze --json").
			Placeholder("contract.pdf").
			Value(&path).
			Validate(validateContractPath),
	).Title("1. Project Ingestion"))
	return strings.TrimSpace(path), err
}

func (huhPrompter) PickClause(ctx context.Context, s session.Session, now time.Time) (matrixChoice, error) {
	final, err := tea.NewProgram(newClauseMatrixView(s.Analysis(), now), tea.WithContext(ctx)).Run()
	if err != nil {
		return matrixChoice{}, err
	}
	return final.(*clauseMatrixView).choice, nil
}

func (huhPrompter) NoticeDetails(ctx context.Context, c notice.Clause, defaults notice.RecipientInfo, today time.Time) (notice.RecipientInfo, notice.NoticeInputs, error) {
	to := defaults
	date := today.Format(dateLayout)
	var cause, effect string

	err := runForm(ctx,
		huh.NewGroup(
			huh.NewInput().Title("To (Owner Organization)").Value(&to.Owner),
			huh.NewInput().Title("Attention (Recipient Name)").Value(&to.Recipient),
			huh.NewInput().Title("Project Name").Value(&to.Project),
			huh.NewInput().Title("Contract #").Value(&to.ContractNum),
		).Title("Step 1: Confirm Details"),
		huh.NewGroup(
			huh.NewInput().
				Title("Date of Event").
				Placeholder(dateLayout).
				Value(&date).
				Validate(validateDate),
			huh.NewText().
				Title("CAUSE (The Facts)").
				Description("What happened on site?").
				Value(&cause),
			huh.NewText().
				Title("EFFECT (Impact)").
				Description("Is work stopped? Is it costing money?").
				Value(&effect),
		).Title("Step 2: Describe the Event"),
	)
	if err != nil {
		return notice.RecipientInfo{}, notice.NoticeInputs{}, err
	}

	eventDate, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return notice.RecipientInfo{}, notice.NoticeInputs{}, fmt.Errorf("event date: %w", err)
	}
	return to, notice.NoticeInputs{EventDate: eventDate, Cause: cause, Effect: effect}, nil
}

func (huhPrompter) ConfirmSave(ctx context.Context, filename string) (bool, error) {
	save := true
	err := runForm(ctx, huh.NewGroup(
		huh.NewConfirm().
			Title("📄 Save draft as " + filename + "?").
			Affirmative("Save").
			Negative("Discard").
			Value(&save),
	))
	return save, err
}
