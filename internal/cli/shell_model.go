package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// shellMode tracks which interaction mode the shell is in.
type shellMode int

const (
	modePrompt  shellMode = iota // Normal command input.
	modeWizard                   // huh form is active.
	modeConfirm                  // Awaiting y/n for a destructive command.
)

// maxOutputLines bounds the scrollback kept in the output pane.
const maxOutputLines = 1000

// destructiveCommands lists the subcommands that ask for confirmation in
// the shell unless --yes is given.
var destructiveCommands = map[string]map[string]bool{
	"project": {"rm": true, "remove": true},
	"note":    {"rm": true, "remove": true},
	"step":    {"rm": true, "remove": true},
}

// shellModel is the bubbletea Model for the interactive shell.
type shellModel struct {
	ctx context.Context
	app *App

	input  textinput.Model
	output viewport.Model
	lines  []string
	form   *huh.Form

	// window
	surface   *terminalSurface
	attached  bool
	altScreen bool
	width     int
	height    int

	// windowOverride replaces the saved window mode for this session.
	windowOverride *domain.WindowMode

	activeProjectID   string
	activeProjectName string
	projectRefs       []string

	mode           shellMode
	wizardDone     func(m *shellModel) string
	pendingConfirm []string

	history    []string
	historyIdx int

	quitting bool
}

func newShellModel(ctx context.Context, app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	// Tab accepts a suggestion; Up/Down walk the history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadHistory(app.HistoryPath)

	m := shellModel{
		ctx:        ctx,
		app:        app,
		input:      ti,
		output:     viewport.New(0, 0),
		surface:    newTerminalSurface(),
		history:    hist,
		historyIdx: len(hist),
	}
	m.print(formatter.FormatShellWelcome())
	m.refreshProjectRefs()
	return m
}

func (m shellModel) withWindowOverride(mode *domain.WindowMode) shellModel {
	m.windowOverride = mode
	return m
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.attached {
			m.attached = true
			m.attachWindow()
		}
		m.layout()
		return m, m.syncScreen()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeWizard:
			return m.updateWizard(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updatePrompt(msg)
		}
	}

	// huh needs its own init and focus messages.
	if m.mode == modeWizard && m.form != nil {
		return m.updateWizard(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.width == 0 {
		return m.promptPrefix() + m.input.View()
	}

	body := m.output.View()
	if m.mode == modeWizard && m.form != nil {
		body = m.form.View()
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		body,
		m.promptPrefix()+m.input.View(),
	)
	return m.surface.frame(content, m.width, m.height)
}

// ── window ───────────────────────────────────────────────────────────────────

// attachWindow registers the shell as the app window and applies the saved
// window preferences to it.
func (m *shellModel) attachWindow() {
	if m.app.Windows != nil {
		m.app.Windows.Attach(m.surface)
	}
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		m.print(shellError(err))
		return
	}
	s := state.Settings
	mode := s.WindowMode
	if m.windowOverride != nil {
		mode = *m.windowOverride
	}
	err = m.app.State.ApplyWindowSettings(m.ctx, mode, s.AlwaysOnTop)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		m.print(shellError(err))
	}
}

// syncScreen switches the alternate screen to match the surface's
// fullscreen flag.
func (m *shellModel) syncScreen() tea.Cmd {
	if m.surface.fullscreen == m.altScreen {
		return nil
	}
	m.altScreen = m.surface.fullscreen
	m.layout()
	if m.altScreen {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

func (m *shellModel) layout() {
	if m.width == 0 {
		return
	}
	w, h := m.surface.contentSize(m.width, m.height)
	m.output.Width = w
	m.output.Height = max(h-2, 1)
	m.input.Width = max(w-lipgloss.Width(m.promptPrefix())-1, 1)
	if m.form != nil {
		m.form = m.form.WithWidth(w).WithHeight(m.output.Height)
	}
	m.output.GotoBottom()
}

func (m *shellModel) header() string {
	title := formatter.StylePurple.Render("notestudio")
	if m.activeProjectName != "" {
		title += formatter.Dim(" / ") + formatter.Bold(m.activeProjectName)
	}
	if m.surface.onTop {
		title += " " + formatter.StyleYellow.Render("▲ on top")
	}
	return title
}

// ── output ───────────────────────────────────────────────────────────────────

func (m *shellModel) print(s string) {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return
	}
	m.lines = append(m.lines, strings.Split(s, "\n")...)
	if len(m.lines) > maxOutputLines {
		m.lines = m.lines[len(m.lines)-maxOutputLines:]
	}
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m *shellModel) clear() {
	m.lines = nil
	m.output.SetContent("")
}

// ── prompt prefix ────────────────────────────────────────────────────────────

func (m *shellModel) promptPrefix() string {
	if m.mode == modeConfirm {
		return formatter.StyleYellow.Render("confirm (y/n)") + " " + formatter.Dim("❯") + " "
	}
	return formatter.Dim("❯") + " "
}

// ── prompt mode ──────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		m.print(formatter.Dim("❯ ") + input)
		output, cmd := m.executeCommand(input)
		m.print(output)
		m.refreshProjectRefs()
		return m, tea.Batch(cmd, m.syncScreen())

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.updateSuggestions()
		return m, cmd
	}
}

// ── wizard mode ──────────────────────────────────────────────────────────────

func (m *shellModel) startWizard(form *huh.Form, done func(m *shellModel) string) tea.Cmd {
	m.mode = modeWizard
	m.form = form
	m.wizardDone = done
	m.layout()
	return m.form.Init()
}

func (m shellModel) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.endWizard()
		m.print(formatter.Dim("Cancelled."))
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		done := m.wizardDone
		m.endWizard()
		if done != nil {
			m.print(done(&m))
		}
		return m, tea.Batch(cmd, m.syncScreen())
	case huh.StateAborted:
		m.endWizard()
		m.print(formatter.Dim("Cancelled."))
		return m, nil
	}
	return m, cmd
}

func (m *shellModel) endWizard() {
	m.mode = modePrompt
	m.form = nil
	m.wizardDone = nil
}

// ── confirm mode ─────────────────────────────────────────────────────────────

func (m shellModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	answer := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.input.Reset()
	pending := m.pendingConfirm
	m.pendingConfirm = nil
	m.mode = modePrompt

	if answer != "y" && answer != "yes" {
		m.print(formatter.Dim("Cancelled."))
		return m, nil
	}
	m.print(m.execCobraCapture(pending))
	m.dropStaleActiveProject()
	m.refreshProjectRefs()
	return m, nil
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *shellModel) addHistory(line string) {
	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	appendHistory(m.app.HistoryPath, line)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	} else {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (m *shellModel) updateSuggestions() {
	text := m.input.Value()
	if text == "" {
		m.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		m.input.SetSuggestions(filterSuggestions(allCommandNames(), parts[0]))
		return
	}

	if len(parts) <= 2 && (!trailingSpace || len(parts) == 1) {
		cmd := strings.ToLower(parts[0])
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		if cmd == "use" || cmd == "show" {
			m.input.SetSuggestions(prefixed(parts[0]+" ", filterSuggestions(m.projectRefs, prefix)))
			return
		}
		if subs, ok := subcommandNames()[cmd]; ok {
			m.input.SetSuggestions(prefixed(parts[0]+" ", filterSuggestions(subs, prefix)))
			return
		}
	}

	m.input.SetSuggestions(nil)
}

// refreshProjectRefs caches the project IDs offered after "use" and "show".
func (m *shellModel) refreshProjectRefs() {
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return
	}
	refs := make([]string, 0, len(state.Projects))
	for i := range state.Projects {
		if id := state.Projects[i].ID; id != nil {
			refs = append(refs, id.String())
		}
	}
	m.projectRefs = refs
}

func allCommandNames() []string {
	return []string{
		"projects", "use", "show",
		"project", "note", "step", "settings",
		"export", "clear", "help", "exit", "quit",
	}
}

func subcommandNames() map[string][]string {
	return map[string][]string{
		"project":  {"add", "list", "show", "edit", "status", "pin", "rm", "export", "import"},
		"note":     {"add", "edit", "rm"},
		"step":     {"add", "done", "undo", "rm", "move"},
		"settings": {"show", "set", "edit", "window"},
	}
}

// filterSuggestions returns items from pool that start with prefix,
// ignoring case.
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}

// prefixed turns word suggestions into whole-line suggestions, which is
// what textinput completes against.
func prefixed(head string, words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = head + w
	}
	return out
}

// ── command dispatch ─────────────────────────────────────────────────────────

func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	parts, err := splitShellArgs(input)
	if err != nil {
		return shellError(err), nil
	}
	if len(parts) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "projects":
		return m.execProjects(), nil
	case "use":
		return m.execUse(args), nil
	case "show":
		return m.execShow(args), nil
	case "settings":
		if len(args) == 1 && strings.EqualFold(args[0], "edit") {
			return m.execSettingsWizard()
		}
		return m.execCobraCapture(parts), nil
	case "clear":
		m.clear()
		return "", nil
	case "help":
		return formatter.FormatShellHelp(), nil
	case "exit", "quit":
		m.quitting = true
		return "", tea.Quit
	case "shell":
		return formatter.StyleYellow.Render("Already in the shell."), nil
	case "watch":
		return formatter.StyleYellow.Render("watch runs outside the shell: notestudio watch"), nil
	default:
		return m.execMaybeDestructive(parts), nil
	}
}

func (m *shellModel) execProjects() string {
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatProjectList(state)
}

func (m *shellModel) execUse(args []string) string {
	if len(args) == 0 {
		m.activeProjectID, m.activeProjectName = "", ""
		return formatter.Dim("Cleared the current project.")
	}
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return shellError(err)
	}
	p, err := resolveProject(state, strings.Join(args, " "))
	if err != nil {
		return shellError(err)
	}
	id, err := requireID("project", p.Name, p.ID)
	if err != nil {
		return shellError(err)
	}
	m.activeProjectID = id.String()
	m.activeProjectName = p.Name
	return fmt.Sprintf("Current project: %s %s", formatter.Bold(p.Name), formatter.Dim(m.activeProjectID))
}

func (m *shellModel) execShow(args []string) string {
	ref := strings.Join(args, " ")
	if ref == "" {
		ref = m.activeProjectID
	}
	if ref == "" {
		return formatter.StyleYellow.Render("No current project. Use 'use <project>' or 'show <project>'.")
	}
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return shellError(err)
	}
	p, err := resolveProject(state, ref)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatProjectShow(p, state.Settings)
}

func (m *shellModel) execSettingsWizard() (string, tea.Cmd) {
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return shellError(err), nil
	}
	f := newSettingsForm(state.Settings)
	cmd := m.startWizard(f.build(), func(m *shellModel) string {
		next, err := f.result()
		if err != nil {
			return shellError(err)
		}
		current, err := m.app.State.LoadState(m.ctx)
		if err != nil {
			return shellError(err)
		}
		if err := m.app.Settings.Update(m.ctx, current, next); err != nil {
			return shellError(err)
		}
		return formatter.Success("Settings saved")
	})
	return "", cmd
}

func (m *shellModel) execMaybeDestructive(parts []string) string {
	if len(parts) < 2 || hasAnyFlag(parts, "--yes", "-y") {
		out := m.execCobraCapture(parts)
		m.dropStaleActiveProject()
		return out
	}
	group, sub := strings.ToLower(parts[0]), strings.ToLower(parts[1])
	if !destructiveCommands[group][sub] {
		return m.execCobraCapture(parts)
	}

	m.mode = modeConfirm
	m.pendingConfirm = parts
	return fmt.Sprintf("%s %s?\n%s",
		formatter.StyleYellow.Render("Confirm:"),
		strings.Join(parts, " "),
		formatter.Dim("Enter y to confirm, anything else to cancel."))
}

// dropStaleActiveProject forgets the current project once it is gone.
func (m *shellModel) dropStaleActiveProject() {
	if m.activeProjectID == "" {
		return
	}
	state, err := m.app.State.LoadState(m.ctx)
	if err != nil {
		return
	}
	if _, err := resolveProject(state, m.activeProjectID); err != nil {
		m.activeProjectID, m.activeProjectName = "", ""
	}
}

// execCobraCapture runs a command through the cobra tree and returns what
// it printed.
func (m *shellModel) execCobraCapture(args []string) string {
	var buf strings.Builder
	root := NewRootCmd(m.app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(prepareShellCobraArgs(args, m.activeProjectID))

	if err := root.ExecuteContext(m.ctx); err != nil {
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), `required flag(s) "project"`) {
			buf.WriteString("\n" + formatter.Dim("Hint: pick a current project with 'use <project>'"))
		}
	}
	return buf.String()
}
