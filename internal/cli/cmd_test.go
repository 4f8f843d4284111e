package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/notestudio/internal/db"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/alexanderramin/notestudio/internal/service"
	"github.com/alexanderramin/notestudio/internal/store"
	"github.com/alexanderramin/notestudio/internal/testutil"
	"github.com/alexanderramin/notestudio/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	app     *App
	gateway *store.Gateway
	surface *testutil.FakeSurface
	dir     string
}

// newTestEnv wires real services over a temp-dir gateway. With attach set
// a FakeSurface is registered as the primary window.
func newTestEnv(t *testing.T, attach bool) *testEnv {
	t.Helper()
	dir := t.TempDir()
	gw := store.NewGateway(store.FixedDir(dir), nil)
	reg := window.NewRegistry()
	surface := testutil.NewFakeSurface()
	if attach {
		reg.Attach(surface)
	}

	states := service.NewStateService(gw, window.NewConfigurator(reg, false, nil))
	app := &App{
		State:         states,
		Projects:      service.NewProjectService(states),
		Notes:         service.NewNoteService(states),
		Steps:         service.NewStepService(states),
		Settings:      service.NewSettingsService(states),
		Watcher:       gw,
		Windows:       reg,
		AppID:         store.AppID,
		HistoryPath:   filepath.Join(dir, "shell_history"),
		IsInteractive: func() bool { return false },
		Now:           func() time.Time { return fixedNow },
	}
	return &testEnv{app: app, gateway: gw, surface: surface, dir: dir}
}

func (e *testEnv) seed(t *testing.T, s *domain.AppState) {
	t.Helper()
	require.NoError(t, e.gateway.Save(s))
}

func (e *testEnv) state(t *testing.T) *domain.AppState {
	t.Helper()
	s, err := e.gateway.Load()
	require.NoError(t, err)
	return s
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

func TestProjectAdd_DefaultStatusAndPersists(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := executeCmd(t, env.app, "project", "add", "Launch", "Plan", "-d", "spring release")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Launch Plan")

	s := env.state(t)
	require.Len(t, s.Projects, 1)
	p := s.Projects[0]
	assert.Equal(t, "Launch Plan", p.Name)
	assert.Equal(t, "spring release", p.Description)
	assert.Equal(t, "Новый", p.Status)
	require.NotNil(t, p.ID)
	assert.Equal(t, domain.IDString, p.ID.Kind())
}

func TestProjectAdd_UnknownStatusRejected(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := executeCmd(t, env.app, "project", "add", "Launch", "--status", "Someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "Someday"`)
	assert.Empty(t, env.state(t).Projects)
}

func TestProjectList_And_Show(t *testing.T) {
	env := newTestEnv(t, false)
	launch := testutil.NewTestProject("Launch",
		testutil.WithProjectID(domain.StringID("launch-1")),
		testutil.WithNotes(testutil.NewTestNote("Kickoff")),
	)
	env.seed(t, testutil.NewTestState(launch, testutil.NewTestProject("Garden", testutil.WithPinned())))

	out, err := executeCmd(t, env.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Garden")
	assert.Less(t, bytes.Index([]byte(out), []byte("Garden")), bytes.Index([]byte(out), []byte("Launch")),
		"pinned projects come first")

	out, err = executeCmd(t, env.app, "project", "show", "launch")
	require.NoError(t, err)
	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "launch-1")
}

func TestProjectEdit_ChangesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch", testutil.WithProjectID(domain.StringID("p1")))))

	_, err := executeCmd(t, env.app, "project", "edit", "p1", "--name", "Relaunch")
	require.NoError(t, err)

	p := env.state(t).Projects[0]
	assert.Equal(t, "Relaunch", p.Name)
	assert.Equal(t, "test project", p.Description)
}

func TestProjectStatus(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch", testutil.WithProjectID(domain.StringID("p1")))))

	_, err := executeCmd(t, env.app, "project", "status", "p1", "В", "работе")
	require.NoError(t, err)
	assert.Equal(t, "В работе", env.state(t).Projects[0].Status)

	_, err = executeCmd(t, env.app, "project", "status", "p1", "Someday")
	assert.ErrorContains(t, err, "unknown status")

	_, err = executeCmd(t, env.app, "settings", "set", "statusesEnabled", "off")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "project", "status", "p1", "Завершен")
	assert.ErrorContains(t, err, "statuses are disabled")
}

func TestProjectPin_Toggles(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch")))

	out, err := executeCmd(t, env.app, "project", "pin", "Launch")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned Launch")
	assert.True(t, env.state(t).Projects[0].Pinned)

	out, err = executeCmd(t, env.app, "project", "pin", "Launch")
	require.NoError(t, err)
	assert.Contains(t, out, "Unpinned Launch")
	assert.False(t, env.state(t).Projects[0].Pinned)
}

func TestProjectRemove(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch"), testutil.NewTestProject("Garden")))

	out, err := executeCmd(t, env.app, "project", "rm", "launch", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project Launch")

	s := env.state(t)
	require.Len(t, s.Projects, 1)
	assert.Equal(t, "Garden", s.Projects[0].Name)
}

func TestProjectRef_NotFoundAndAmbiguous(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(
		testutil.NewTestProject("A", testutil.WithProjectID(domain.StringID("abc-1"))),
		testutil.NewTestProject("B", testutil.WithProjectID(domain.StringID("abc-2"))),
	))

	_, err := executeCmd(t, env.app, "project", "show", "zzz")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, env.app, "project", "show", "abc")
	assert.ErrorContains(t, err, "ambiguous")
}

func TestProjectWithoutID_CannotBeChanged(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Legacy", testutil.WithoutProjectID())))

	out, err := executeCmd(t, env.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Legacy")

	_, err = executeCmd(t, env.app, "project", "pin", "Legacy")
	assert.ErrorContains(t, err, "has no ID")
}

func TestProjectExportImport(t *testing.T) {
	env := newTestEnv(t, false)
	launch := testutil.NewTestProject("Launch",
		testutil.WithProjectID(domain.StringID("p1")),
		testutil.WithNotes(testutil.NewTestNote("Kickoff", testutil.WithNoteSteps(testutil.NewTestStep("Book room", false)))),
	)
	env.seed(t, testutil.NewTestState(launch))

	file := filepath.Join(t.TempDir(), "launch.json")
	_, err := executeCmd(t, env.app, "project", "export", "p1", file)
	require.NoError(t, err)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exportedAt": "2026-03-14T09:30:00Z"`)

	out, err := executeCmd(t, env.app, "project", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported project Launch")
	assert.Contains(t, out, "1 notes")

	s := env.state(t)
	require.Len(t, s.Projects, 2)
	assert.False(t, domain.SameID(s.Projects[0].ID, s.Projects[1].ID))
	assert.Equal(t, "Book room", s.Projects[1].Notes[0].Steps[0].Text)
}

func TestProjectImport_GarbageIsDeserializeError(t *testing.T) {
	env := newTestEnv(t, false)
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte("{nope"), 0o644))

	_, err := executeCmd(t, env.app, "project", "import", file)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeserialize)
}

func TestNoteAndStepFlow(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch")))

	_, err := executeCmd(t, env.app, "note", "add", "Kickoff", "-p", "Launch", "--body", "agenda")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "step", "add", "Book", "room", "-p", "Launch", "--note", "Kickoff")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "step", "add", "Ship", "-p", "Launch")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "step", "done", "#1", "-p", "Launch", "-n", "kickoff")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Book room")

	s := env.state(t)
	p := s.Projects[0]
	require.Len(t, p.Notes, 1)
	assert.Equal(t, "agenda", p.Notes[0].Body)
	require.Len(t, p.Notes[0].Steps, 1)
	assert.True(t, p.Notes[0].Steps[0].Done)
	require.Len(t, p.Steps, 1)
	assert.False(t, p.Steps[0].Done)

	_, err = executeCmd(t, env.app, "step", "undo", "Book room", "-p", "Launch", "-n", "Kickoff")
	require.NoError(t, err)
	assert.False(t, env.state(t).Projects[0].Notes[0].Steps[0].Done)

	_, err = executeCmd(t, env.app, "note", "edit", "#1", "-p", "Launch", "--title", "Kick-off")
	require.NoError(t, err)
	assert.Equal(t, "Kick-off", env.state(t).Projects[0].Notes[0].Title)

	_, err = executeCmd(t, env.app, "note", "rm", "Kick-off", "-p", "Launch", "-y")
	require.NoError(t, err)
	assert.Empty(t, env.state(t).Projects[0].Notes)
}

func TestNoteAdd_RequiresProjectFlag(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := executeCmd(t, env.app, "note", "add", "Kickoff")
	assert.ErrorContains(t, err, `required flag(s) "project"`)
}

func TestNoteAdd_BlankTitleRejected(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch")))

	_, err := executeCmd(t, env.app, "note", "add", "  ", "-p", "Launch")
	require.Error(t, err)
	assert.Empty(t, env.state(t).Projects[0].Notes)
}

func TestStepMove(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch", testutil.WithSteps(
		testutil.NewTestStep("one", false),
		testutil.NewTestStep("two", false),
		testutil.NewTestStep("three", false),
	))))

	_, err := executeCmd(t, env.app, "step", "move", "3", "1", "-p", "Launch")
	require.NoError(t, err)

	var texts []string
	for _, st := range env.state(t).Projects[0].Steps {
		texts = append(texts, st.Text)
	}
	assert.Equal(t, []string{"three", "one", "two"}, texts)

	_, err = executeCmd(t, env.app, "step", "move", "0", "1", "-p", "Launch")
	assert.ErrorContains(t, err, "invalid position")
	_, err = executeCmd(t, env.app, "step", "move", "1", "9", "-p", "Launch")
	assert.Error(t, err)
}

func TestStepRemove(t *testing.T) {
	env := newTestEnv(t, false)
	env.seed(t, testutil.NewTestState(testutil.NewTestProject("Launch", testutil.WithSteps(
		testutil.NewTestStep("one", false),
		testutil.NewTestStep("two", true),
	))))

	_, err := executeCmd(t, env.app, "step", "rm", "two", "-p", "Launch", "--yes")
	require.NoError(t, err)
	steps := env.state(t).Projects[0].Steps
	require.Len(t, steps, 1)
	assert.Equal(t, "one", steps[0].Text)
}

func TestSettingsShow(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := executeCmd(t, env.app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "fullscreen_framed")
	assert.Contains(t, out, "midnight")
}

func TestSettingsSet_WindowModeIsAppliedToWindow(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := executeCmd(t, env.app, "settings", "set", "windowMode", "windowed")
	require.NoError(t, err)

	assert.Equal(t, domain.WindowWindowed, env.state(t).Settings.WindowMode)
	assert.Equal(t, testutil.WindowConfig{Decorated: true, Centered: true}, env.surface.Config)

	_, err = executeCmd(t, env.app, "settings", "set", "alwaysOnTop", "on")
	require.NoError(t, err)
	assert.True(t, env.surface.Config.AlwaysOnTop)
}

func TestSettingsSet_OtherKeysDoNotTouchWindow(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := executeCmd(t, env.app, "settings", "set", "language", "EN")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEN, env.state(t).Settings.Language)
	assert.Empty(t, env.surface.Calls)
}

func TestSettingsSet_ProjectStatusesAreNormalized(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := executeCmd(t, env.app, "settings", "set", "projectStatuses", "Todo, Doing ,, Todo,Done")
	require.NoError(t, err)
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, env.state(t).Settings.ProjectStatuses)

	_, err = executeCmd(t, env.app, "settings", "set", "projectStatuses", "")
	require.NoError(t, err)
	assert.Equal(t, []string{}, env.state(t).Settings.ProjectStatuses)
}

func TestSettingsSet_Rejects(t *testing.T) {
	env := newTestEnv(t, false)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"colour", "red"}, "unknown setting"},
		{[]string{"windowMode", "tiny"}, "unknown window mode"},
		{[]string{"animations", "sometimes"}, "expected on/off"},
		{[]string{"language", "de"}, "unsupported language"},
		{[]string{"controlsLayout", "sidebar"}, "unsupported controls layout"},
		{[]string{"theme", "daylight"}, "unknown theme"},
	}
	for _, tc := range cases {
		_, err := executeCmd(t, env.app, append([]string{"settings", "set"}, tc.args...)...)
		assert.ErrorContains(t, err, tc.want, tc.args)
	}
	assert.Equal(t, domain.DefaultSettings(), env.state(t).Settings)
}

func TestSettingsWindow(t *testing.T) {
	env := newTestEnv(t, false)
	out, err := executeCmd(t, env.app, "settings", "window")
	require.NoError(t, err)
	assert.Contains(t, out, "No window is open")

	attached := newTestEnv(t, true)
	out, err = executeCmd(t, attached.app, "settings", "window")
	require.NoError(t, err)
	assert.Contains(t, out, "Window set to fullscreen_framed")
	assert.Equal(t, testutil.WindowConfig{Decorated: true, Maximized: true}, attached.surface.Config)
}

func TestSettingsForm_Result(t *testing.T) {
	f := newSettingsForm(domain.DefaultSettings())
	assert.Equal(t, "Новый, В работе, Завершен", f.statuses)

	f.mode = "borderless"
	f.statuses = "a,b"
	f.next.AlwaysOnTop = true

	got, err := f.result()
	require.NoError(t, err)
	assert.Equal(t, domain.WindowBorderless, got.WindowMode)
	assert.Equal(t, []string{"a", "b"}, got.ProjectStatuses)
	assert.True(t, got.AlwaysOnTop)
}

func TestExportSQLite(t *testing.T) {
	env := newTestEnv(t, false)
	state := testutil.NewTestState(testutil.NewTestProject("Launch",
		testutil.WithNotes(testutil.NewTestNote("Kickoff")),
		testutil.WithSteps(testutil.NewTestStep("Ship", true)),
	))
	env.seed(t, state)

	path := filepath.Join(t.TempDir(), "snap", "notes.db")
	out, err := executeCmd(t, env.app, "export", "--sqlite", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 projects")

	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	got, meta, err := db.ReadSnapshot(context.Background(), database)
	require.NoError(t, err)
	assert.Equal(t, env.state(t), got)
	assert.Equal(t, store.AppID, meta.AppID)
	assert.True(t, fixedNow.Equal(meta.WrittenAt))
}

func TestCorruptStateFile_IsReported(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, store.StateFileName), []byte("{broken"), 0o644))

	_, err := executeCmd(t, env.app, "project", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeserialize)

	raw, err := os.ReadFile(filepath.Join(env.dir, store.StateFileName))
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(raw), "a failed load never rewrites the file")
}

func TestRoot_NonInteractiveShowsHelp(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, out, "project")
	assert.Contains(t, out, "settings")
}
