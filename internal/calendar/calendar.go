// Package calendar builds the iCalendar export of notice deadlines.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/noticepilot/internal/deadline"
	"github.com/alexanderramin/noticepilot/internal/notice"
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const (
	// Filename is the name the export is offered under.
	Filename = "project_deadlines.ics"
	// ContentType is the MIME type of the export.
	ContentType = "text/calendar"

	productID = "-//noticepilot//Construction Claims Notification Copilot//EN"

	// reminderTrigger is ReminderOffset as an RFC 5545 duration.
	reminderTrigger = "-PT24H"
	reminderText    = "Notice deadline tomorrow"
)

// ErrIncompleteClause indicates a clause lacks a field the export needs.
// Incomplete clauses fail the whole export rather than being skipped.
var ErrIncompleteClause = errors.New("clause is missing fields required for calendar export")

// Events derives one deadline event per clause, preserving clause order.
func Events(clauses []notice.Clause, now time.Time) ([]notice.DeadlineEvent, error) {
	events := make([]notice.DeadlineEvent, 0, len(clauses))
	for i, c := range clauses {
		if missing := c.MissingFields(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: clause %d (%q) missing %s",
				ErrIncompleteClause, i+1, c.ClauseID, strings.Join(missing, ", "))
		}
		ev, err := deadline.Derive(c, now)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Exporter serialises deadline events. The zero value is ready to use.
type Exporter struct {
	// NewUID generates event UIDs; random UUIDs when nil.
	NewUID func() string
}

// Export derives and serialises events for clauses in one step.
func (x Exporter) Export(clauses []notice.Clause, now time.Time) ([]byte, error) {
	events, err := Events(clauses, now)
	if err != nil {
		return nil, err
	}
	return x.Render(events, now), nil
}

// Render serialises already-derived events, in order, each with a single
// display alarm a day before its start.
func (x Exporter) Render(events []notice.DeadlineEvent, stamp time.Time) []byte {
	newUID := x.NewUID
	if newUID == nil {
		newUID = func() string { return uuid.NewString() + "@noticepilot" }
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		e := cal.AddEvent(newUID())
		e.SetDtStampTime(stamp.UTC())
		e.SetCreatedTime(stamp.UTC())
		e.SetStartAt(ev.DueDate.UTC())
		e.SetSummary(ev.Title)
		e.SetDescription(ev.Description)

		alarm := e.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger(reminderTrigger)
		alarm.SetProperty(ics.ComponentPropertyDescription, reminderText)
	}

	return []byte(cal.Serialize())
}

// Export uses a zero Exporter.
func Export(clauses []notice.Clause, now time.Time) ([]byte, error) {
	return Exporter{}.Export(clauses, now)
}
