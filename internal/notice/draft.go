package notice

import "time"

// NoticeInputs are the facts a user supplies for one drafting attempt.
type NoticeInputs struct {
	EventDate time.Time
	Cause     string
	Effect    string
}

// DateString formats the event date the way it appears in the letter.
func (in NoticeInputs) DateString() string {
	return in.EventDate.Format("2006-01-02")
}

// DefaultRecipient is the attention line used until the user overrides it.
const DefaultRecipient = "Project Manager"

// RecipientInfo is the addressing block of a notice letter.
type RecipientInfo struct {
	Owner       string
	Recipient   string
	Project     string
	ContractNum string
}

// RecipientFromMetadata pre-fills the addressing block from extracted metadata.
func RecipientFromMetadata(m ProjectMetadata) RecipientInfo {
	return RecipientInfo{
		Owner:       m.OwnerName,
		Recipient:   DefaultRecipient,
		Project:     m.ProjectName,
		ContractNum: m.ContractNumber,
	}
}

// Draft is a generated notice letter for exactly one clause.
type Draft struct {
	ClauseID string
	Text     string
}

// DeadlineEvent is a calendar entry derived from a clause's time limit.
type DeadlineEvent struct {
	ClauseID       string
	Title          string
	DueDate        time.Time
	ReminderOffset time.Duration
	Description    string
}

// ReminderAt returns the instant the reminder fires.
func (e DeadlineEvent) ReminderAt() time.Time {
	return e.DueDate.Add(-e.ReminderOffset)
}
