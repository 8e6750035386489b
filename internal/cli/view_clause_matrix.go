package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/noticepilot/internal/cli/formatter"
	"github.com/alexanderramin/noticepilot/internal/deadline"
	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// matrixAction is what the user chose in the clause matrix.
type matrixAction int

const (
	actionQuit matrixAction = iota
	actionDraft
	actionCalendar
	actionReload
)

type matrixChoice struct {
	action matrixAction
	index  int
}

type matrixKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Expand   key.Binding
	Draft    key.Binding
	Calendar key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func defaultMatrixKeys() matrixKeyMap {
	return matrixKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "details")),
		Draft:    key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "draft notice")),
		Calendar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "export deadlines")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new contract")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k matrixKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draft, k.Expand, k.Calendar, k.Reload, k.Quit}
}

// clauseMatrixView lists extracted clauses and lets the user pick one to
// draft a notice for. It quits as soon as an action is chosen; the caller
// reads choice from the final model.
type clauseMatrixView struct {
	analysis notice.Analysis
	now      time.Time
	keys     matrixKeyMap
	cursor   int
	expanded bool
	choice   matrixChoice
}

func newClauseMatrixView(a notice.Analysis, now time.Time) *clauseMatrixView {
	return &clauseMatrixView{
		analysis: a,
		now:      now,
		keys:     defaultMatrixKeys(),
		choice:   matrixChoice{action: actionQuit},
	}
}

func (v *clauseMatrixView) Init() tea.Cmd { return nil }

func (v *clauseMatrixView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	n := len(v.analysis.Clauses)
	switch {
	case key.Matches(keyMsg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, v.keys.Down):
		if v.cursor < n-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, v.keys.Expand):
		v.expanded = !v.expanded
	case key.Matches(keyMsg, v.keys.Draft):
		if n == 0 {
			return v, nil
		}
		return v.choose(actionDraft)
	case key.Matches(keyMsg, v.keys.Calendar):
		if n == 0 {
			return v, nil
		}
		return v.choose(actionCalendar)
	case key.Matches(keyMsg, v.keys.Reload):
		return v.choose(actionReload)
	case key.Matches(keyMsg, v.keys.Quit):
		return v.choose(actionQuit)
	}
	return v, nil
}

func (v *clauseMatrixView) choose(a matrixAction) (tea.Model, tea.Cmd) {
	v.choice = matrixChoice{action: a, index: v.cursor}
	return v, tea.Quit
}

func (v *clauseMatrixView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatProjectHeader(v.analysis.Metadata))
	b.WriteString("\n")
	b.WriteString(formatter.Header("2. Notification Matrix"))
	b.WriteString("\n")

	if len(v.analysis.Clauses) == 0 {
		b.WriteString("  " + formatter.Dim("No notice clauses found. Press r to load another contract.") + "\n")
	}

	for i, c := range v.analysis.Clauses {
		cursor := "  "
		labelStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			labelStyle = formatter.StyleBold
		}

		due := formatter.Dim("—")
		if strings.TrimSpace(c.TimeLimit) != "" {
			due = formatter.DueInStyled(deadline.DueDate(c.TimeLimit, v.now), v.now)
		}

		fmt.Fprintf(&b, "%s%s %s  %s\n",
			cursor,
			formatter.RiskColor(c.RiskLevel).Render("⚠️"),
			labelStyle.Render(c.Label()),
			due,
		)
		if i == v.cursor && v.expanded {
			fmt.Fprintf(&b, "     %s %s\n", formatter.Bold("Trigger:"), c.TriggerEvent)
			fmt.Fprintf(&b, "     %s %s\n", formatter.Bold("Risk:"), formatter.RiskIndicator(c.RiskLevel))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.helpLine())
	b.WriteString("\n")
	return b.String()
}

func (v *clauseMatrixView) helpLine() string {
	parts := make([]string, 0, len(v.keys.ShortHelp()))
	for _, k := range v.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, formatter.StyleYellow.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return "  " + strings.Join(parts, formatter.Dim(" · "))
}
