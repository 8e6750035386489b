package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/noticepilot/internal/deadline"
	"github.com/alexanderramin/noticepilot/internal/notice"
)

// AppTitle is shown at the top of every interactive session.
const AppTitle = "Construction Claims Notification Copilot"

// FormatTitle renders the application banner.
func FormatTitle() string {
	return "\n" + Header(AppTitle) + "\n"
}

// FormatProjectHeader renders the extracted metadata block.
func FormatProjectHeader(m notice.ProjectMetadata) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("📂 Project: ") + Bold(m.DisplayProject()) + "\n")
	b.WriteString(Dim(fmt.Sprintf("Owner: %s | Contract #: %s", m.DisplayOwner(), m.DisplayContract())) + "\n")
	return b.String()
}

// FormatMatrix renders the notification matrix: one row per clause with its
// derived due date relative to now.
func FormatMatrix(clauses []notice.Clause, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Notification Matrix") + "\n")

	if len(clauses) == 0 {
		b.WriteString(Dim("No notice clauses found.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(clauses))
	for i, c := range clauses {
		due := Dim("—")
		if strings.TrimSpace(c.TimeLimit) != "" {
			due = DueInStyled(deadline.DueDate(c.TimeLimit, now), now)
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			StyleGreen.Render(c.ClauseID),
			c.Topic,
			c.TimeLimit,
			RiskIndicator(c.RiskLevel),
			due,
		})
	}
	b.WriteString(RenderTable([]string{"#", "CLAUSE", "TOPIC", "TIME LIMIT", "RISK", "DUE"}, rows))
	return b.String()
}

// FormatClauseDetail renders one clause the way the matrix expands it.
func FormatClauseDetail(c notice.Clause) string {
	var b strings.Builder
	b.WriteString(RiskColor(c.RiskLevel).Render("⚠️ "+c.Label()) + "\n")
	b.WriteString(Bold("Trigger: ") + c.TriggerEvent + "\n")
	return b.String()
}

// FormatDraft renders a finished letter for review.
func FormatDraft(d notice.Draft) string {
	return RenderBox("Draft Notice: "+d.ClauseID, d.Text)
}

// FormatDeadlines lists exported calendar events.
func FormatDeadlines(events []notice.DeadlineEvent, now time.Time) string {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			StyleGreen.Render(ev.ClauseID),
			ev.DueDate.Format("2006-01-02"),
			DueInStyled(ev.DueDate, now),
			Dim(ev.ReminderAt().Format("2006-01-02 15:04")),
		})
	}
	return RenderTable([]string{"CLAUSE", "DUE", "", "REMINDER"}, rows)
}

// FormatSaved confirms an artifact was written.
func FormatSaved(label, path string) string {
	return StyleGreen.Render("✔ "+label) + " " + Dim(path) + "\n"
}
