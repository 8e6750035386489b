// Package session holds the state of one interactive run as an immutable
// value. Each transition returns a new Session; nothing is shared between
// runs.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/google/uuid"
)

var (
	// ErrNoSuchClause is returned when a selection does not name a clause in
	// the current analysis.
	ErrNoSuchClause = errors.New("no such clause")

	// ErrNoSelection is returned when a draft is attached with no clause
	// selected.
	ErrNoSelection = errors.New("no clause selected")

	// ErrDraftMismatch is returned when a draft belongs to a clause other
	// than the selected one.
	ErrDraftMismatch = errors.New("draft does not belong to the selected clause")
)

// Session is the state threaded between pipeline steps.
type Session struct {
	ID       string
	analysis notice.Analysis
	selected int
	draft    *notice.Draft
}

// New starts a session with an empty analysis and nothing selected.
func New() Session {
	return Session{
		ID:       uuid.NewString(),
		analysis: notice.EmptyAnalysis(),
		selected: -1,
	}
}

// Analysis returns the current extraction result.
func (s Session) Analysis() notice.Analysis {
	return s.analysis
}

// WithAnalysis replaces the analysis wholesale. Selection and draft are
// cleared because they referred to the old clause list.
func (s Session) WithAnalysis(a notice.Analysis) Session {
	clauses := slices.Clone(a.Clauses)
	if clauses == nil {
		clauses = []notice.Clause{}
	}
	return Session{
		ID:       s.ID,
		analysis: notice.Analysis{Metadata: a.Metadata, Clauses: clauses},
		selected: -1,
	}
}

// Select picks the clause at index i. Picking a different clause drops any
// draft for the previous one.
func (s Session) Select(i int) (Session, error) {
	if i < 0 || i >= len(s.analysis.Clauses) {
		return s, fmt.Errorf("%w: index %d of %d", ErrNoSuchClause, i, len(s.analysis.Clauses))
	}
	next := s
	if i != s.selected {
		next.draft = nil
	}
	next.selected = i
	return next, nil
}

// SelectByID picks the first clause whose id matches.
func (s Session) SelectByID(clauseID string) (Session, error) {
	i, ok := s.analysis.FindClause(clauseID)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrNoSuchClause, clauseID)
	}
	return s.Select(i)
}

// Selected returns the selected clause, if any.
func (s Session) Selected() (notice.Clause, bool) {
	if s.selected < 0 {
		return notice.Clause{}, false
	}
	return s.analysis.Clauses[s.selected], true
}

// SelectedIndex returns the selected clause index, or -1.
func (s Session) SelectedIndex() int {
	return s.selected
}

// WithDraft attaches d, which must be for the selected clause.
func (s Session) WithDraft(d notice.Draft) (Session, error) {
	c, ok := s.Selected()
	if !ok {
		return s, ErrNoSelection
	}
	if d.ClauseID != c.ClauseID {
		return s, fmt.Errorf("%w: draft for %q, selected %q", ErrDraftMismatch, d.ClauseID, c.ClauseID)
	}
	next := s
	next.draft = &d
	return next, nil
}

// Draft returns the current draft, if any.
func (s Session) Draft() (notice.Draft, bool) {
	if s.draft == nil {
		return notice.Draft{}, false
	}
	return *s.draft, true
}

// Recipient returns the addressing defaults for the current analysis.
func (s Session) Recipient() notice.RecipientInfo {
	return notice.RecipientFromMetadata(s.analysis.Metadata)
}
