package deadline

import (
	"testing"
	"time"

	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetDays_TokenTable(t *testing.T) {
	cases := []struct {
		timeLimit string
		want      int
	}{
		{"10 Working Days", 10},
		{"10 Calendar Days", 10},
		{"within 10 days of GC 5.3", 10},
		{"5 Working Days", 5},
		{"15 days", 5},
		{"3 days", 3},
		{"30 days", 3},
		{"24 hours", 1},
		{"Within 24 Hours", 1},
		{"Immediately", 0},
		{"IMMEDIATELY upon discovery", 0},
		{"immediately", 0},
		{"Without Delay", 7},
		{"promptly", 7},
		{"", 7},
		{"48 hours", 7},
		{"2 weeks", 7},
	}

	for _, tc := range cases {
		t.Run(tc.timeLimit, func(t *testing.T) {
			assert.Equal(t, tc.want, OffsetDays(tc.timeLimit))
		})
	}
}

func TestOffsetDays_PriorityOrder(t *testing.T) {
	// "3" sits above "24" in the table.
	assert.Equal(t, 3, OffsetDays("3 days, or 24 hours if urgent"))
	// A digit token outranks the "immediately" keyword.
	assert.Equal(t, 5, OffsetDays("immediately, and in writing within 5 days"))
	// "10" wins over everything even when it appears last.
	assert.Equal(t, 10, OffsetDays("5 days notice, 3 days particulars, 10 days claim"))
}

func TestDueDate_AddsWholeDays(t *testing.T) {
	now := time.Date(2026, 10, 17, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 27, 14, 30, 0, 0, time.UTC), DueDate("10 Working Days", now))
	assert.Equal(t, now, DueDate("Immediately", now))
	assert.Equal(t, time.Date(2026, 10, 24, 14, 30, 0, 0, time.UTC), DueDate("Without Delay", now))
}

func TestDerive_BuildsEvent(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	c := notice.Clause{
		ClauseID:     "GC 6.5.1",
		Topic:        "Delays",
		TriggerEvent: "Delay by Owner",
		TimeLimit:    "10 Working Days",
		RiskLevel:    notice.RiskHigh,
	}

	ev, err := Derive(c, now)
	require.NoError(t, err)

	assert.Equal(t, "GC 6.5.1", ev.ClauseID)
	assert.Equal(t, "⚠️ NOTICE DUE: Delays (GC 6.5.1)", ev.Title)
	assert.Equal(t, now.AddDate(0, 0, 10), ev.DueDate)
	assert.Equal(t, 24*time.Hour, ev.ReminderOffset)
	assert.Equal(t, now.AddDate(0, 0, 9), ev.ReminderAt())
	assert.Contains(t, ev.Description, "Topic: Delays")
	assert.Contains(t, ev.Description, "Clause: GC 6.5.1")
	assert.Contains(t, ev.Description, "Trigger: Delay by Owner")
	assert.Contains(t, ev.Description, "Exact Rule: 10 Working Days")
	assert.Contains(t, ev.Description, CallToAction)
}

func TestDerive_MissingClauseID(t *testing.T) {
	_, err := Derive(notice.Clause{TimeLimit: "5 days"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "clause_id")
}

func TestDerive_MissingTimeLimit(t *testing.T) {
	_, err := Derive(notice.Clause{ClauseID: "GC 8.2"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "GC 8.2")
}

func TestDescription_Layout(t *testing.T) {
	c := notice.Clause{ClauseID: "GC 6.6", Topic: "Claims", TriggerEvent: "Change in work", TimeLimit: "Immediately"}
	want := "PROJECT NOTICE DEADLINE\n" +
		"-----------------------\n" +
		"Topic: Claims\n" +
		"Clause: GC 6.6\n" +
		"Trigger: Change in work\n" +
		"Exact Rule: Immediately\n" +
		"\nACTION REQUIRED:\n" +
		"Draft and submit notice immediately to preserve claim entitlement."
	assert.Equal(t, want, Description(c))
}
