// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd inline until
// the model goes quiet, so tests can type into a model and inspect its View
// without a tea.Program or a terminal. Cmds that block (cursor blinking) are
// abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth caps how many Cmd generations one Send may run.
const maxDepth = 100

// cmdTimeout separates message factories, which return at once, from timer
// Cmds such as cursor blinks, which block for half a second.
const cmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a model and runs the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg.
	Quitting bool

	// seen holds the type name of every message a Cmd produced, including
	// runtime messages the model itself ignores.
	seen []string
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg, and drains what it returns, before the
// test starts.
func WithSize(w, h int) Option {
	return func(d *Driver) { d.Resize(w, h) }
}

// New wraps model. Call Start to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs the model's Init command.
func (d *Driver) Start() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and runs every Cmd that follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

// Resize delivers a terminal size change.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// Key sends a special key such as tea.KeyEnter or tea.KeyEsc.
func (d *Driver) Key(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Line types s and presses Enter.
func (d *Driver) Line(s string) {
	d.T.Helper()
	d.Type(s)
	d.Key(tea.KeyEnter)
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Saw reports whether a Cmd produced a message whose type name contains
// name, e.g. "enterAltScreenMsg".
func (d *Driver) Saw(name string) bool {
	for _, s := range d.seen {
		if strings.Contains(s, name) {
			return true
		}
	}
	return false
}

// Forget clears the record Saw consults.
func (d *Driver) Forget() {
	d.seen = nil
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: stopped after %d Cmd generations", maxDepth)
		return
	}

	msg, ok := call(cmd)
	if !ok || msg == nil {
		return
	}
	name := fmt.Sprintf("%T", msg)
	if strings.Contains(strings.ToLower(name), "blink") {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			d.run(c, depth+1)
		}
		return
	case tea.QuitMsg:
		d.seen = append(d.seen, name)
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}

	d.seen = append(d.seen, name)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.run(next, depth+1)
}

// call runs cmd, giving up after cmdTimeout.
func call(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
