// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs each returned Cmd inline, so a
// test sees the model's state after every key without starting a
// tea.Program or a terminal.
package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained Cmds a single Send will follow.
const maxDepth = 50

// Driver feeds messages to a tea.Model and records whether it asked to quit.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set once the model returns tea.Quit. Later sends are ignored,
	// as they would be by a real program.
	Quit bool
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.run(model.Init(), 0)
	return d
}

// Send dispatches msg through Update and runs the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.run(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: stopped after %d chained commands", maxDepth)
		return
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
		d.Quit = true
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
	default:
		next, cmd := d.Model.Update(msg)
		d.Model = next
		d.run(cmd, depth+1)
	}
}
