// Package deadline turns a clause's free-text time limit into a due date.
//
// The mapping is a keyword heuristic, not a duration parser. Tokens are
// checked in a fixed order and the first one contained in the folded text
// wins: "within 10 days of GC 5.3" resolves to 10 because "10" is checked
// before "5" and "3". Changing the order or the table changes computed legal
// deadlines.
package deadline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/noticepilot/internal/notice"
	"golang.org/x/text/cases"
)

// ErrMissingField indicates a clause lacks the id or time limit needed to
// derive a deadline.
var ErrMissingField = errors.New("clause is missing a field required for deadline derivation")

// DefaultOffsetDays applies when no token matches.
const DefaultOffsetDays = 7

// ReminderOffset is how long before the due date the reminder fires.
const ReminderOffset = 24 * time.Hour

type rule struct {
	token string
	days  int
}

// rules are evaluated top to bottom; first match wins.
var rules = []rule{
	{token: "10", days: 10},
	{token: "5", days: 5},
	{token: "3", days: 3},
	{token: "24", days: 1},
	{token: "immediately", days: 0},
}

// OffsetDays returns the number of days from now until the notice is due.
func OffsetDays(timeLimit string) int {
	// Casers carry state, so one is built per call.
	text := cases.Fold().String(timeLimit)
	for _, r := range rules {
		if strings.Contains(text, r.token) {
			return r.days
		}
	}
	return DefaultOffsetDays
}

// DueDate returns now shifted by the clause's offset in whole days.
func DueDate(timeLimit string, now time.Time) time.Time {
	return now.AddDate(0, 0, OffsetDays(timeLimit))
}

// Derive builds the deadline event for a clause relative to now.
func Derive(c notice.Clause, now time.Time) (notice.DeadlineEvent, error) {
	if strings.TrimSpace(c.ClauseID) == "" {
		return notice.DeadlineEvent{}, fmt.Errorf("%w: clause_id", ErrMissingField)
	}
	if strings.TrimSpace(c.TimeLimit) == "" {
		return notice.DeadlineEvent{}, fmt.Errorf("%w: time_limit on %s", ErrMissingField, c.ClauseID)
	}

	return notice.DeadlineEvent{
		ClauseID:       c.ClauseID,
		Title:          Title(c),
		DueDate:        DueDate(c.TimeLimit, now),
		ReminderOffset: ReminderOffset,
		Description:    Description(c),
	}, nil
}

// Title is the calendar summary line for a clause.
func Title(c notice.Clause) string {
	return fmt.Sprintf("⚠️ NOTICE DUE: %s (%s)", c.Topic, c.ClauseID)
}

// CallToAction closes every deadline description.
const CallToAction = "Draft and submit notice immediately to preserve claim entitlement."

// Description is the multi-line calendar body for a clause.
func Description(c notice.Clause) string {
	var b strings.Builder
	b.WriteString("PROJECT NOTICE DEADLINE\n")
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "Topic: %s\n", c.Topic)
	fmt.Fprintf(&b, "Clause: %s\n", c.ClauseID)
	fmt.Fprintf(&b, "Trigger: %s\n", c.TriggerEvent)
	fmt.Fprintf(&b, "Exact Rule: %s\n", c.TimeLimit)
	b.WriteString("\nACTION REQUIRED:\n")
	b.WriteString(CallToAction)
	return b.String()
}
