package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/alexanderramin/notestudio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Add_DefaultsStatusAndPersists(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	state := domain.NewAppState()

	p, err := svc.projects.Add(ctx, state, ProjectInput{Name: "  Launch ", Description: " Q3 "})
	require.NoError(t, err)
	assert.NotNil(t, p.ID, "ID should be generated")
	assert.Equal(t, "Launch", p.Name)
	assert.Equal(t, "Q3", p.Description)
	assert.Equal(t, "Новый", p.Status, "status should default to the first configured label")
	assert.NotNil(t, p.Notes)
	assert.NotNil(t, p.Steps)

	// Verify roundtrip
	saved := svc.store.reload(t)
	require.Len(t, saved.Projects, 1)
	assert.Equal(t, p, saved.Projects[0])
	// The save is observed before the use case that triggered it.
	assert.Equal(t, []string{"save-state", "add-project"}, svc.observer.names())
}

func TestProjectService_Add_ExplicitStatus(t *testing.T) {
	svc := setupServices(t)
	state := domain.NewAppState()

	p, err := svc.projects.Add(context.Background(), state, ProjectInput{Name: "Launch", Status: "В работе"})
	require.NoError(t, err)
	assert.Equal(t, "В работе", p.Status)
}

func TestProjectService_Add_StatusesDisabled(t *testing.T) {
	svc := setupServices(t)
	state := domain.NewAppState()
	state.Settings.StatusesEnabled = false

	p, err := svc.projects.Add(context.Background(), state, ProjectInput{Name: "Launch", Status: "Anything"})
	require.NoError(t, err)
	assert.Empty(t, p.Status)
}

func TestProjectService_Add_BlankNameRejected(t *testing.T) {
	svc := setupServices(t)
	state := domain.NewAppState()

	_, err := svc.projects.Add(context.Background(), state, ProjectInput{Name: "   "})
	require.Error(t, err)
	assert.Empty(t, state.Projects)
	assert.Equal(t, 0, svc.store.saves)

	require.Len(t, svc.observer.events, 1)
	assert.False(t, svc.observer.events[0].Success())
}

func TestProjectService_Update(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	p := testutil.NewTestProject("Old")
	state := testutil.NewTestState(p)

	err := svc.projects.Update(ctx, state, *p.ID, ProjectInput{Name: "New", Description: "desc", Status: "Завершен"})
	require.NoError(t, err)

	saved := svc.store.reload(t)
	assert.Equal(t, "New", saved.Projects[0].Name)
	assert.Equal(t, "desc", saved.Projects[0].Description)
	assert.Equal(t, "Завершен", saved.Projects[0].Status)
}

func TestProjectService_UnknownProjectIsNotFound(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	state := testutil.NewTestState(testutil.NewTestProject("Launch"))
	missing := domain.StringID("nope")

	tests := []struct {
		name string
		call func() error
	}{
		{"update", func() error { return svc.projects.Update(ctx, state, missing, ProjectInput{Name: "x"}) }},
		{"status", func() error { return svc.projects.SetStatus(ctx, state, missing, "x") }},
		{"pin", func() error { _, err := svc.projects.TogglePinned(ctx, state, missing); return err }},
		{"remove", func() error { return svc.projects.Remove(ctx, state, missing) }},
		{"export", func() error { _, err := svc.projects.Export(ctx, state, missing, time.Now()); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
	assert.Len(t, state.Projects, 1)
	assert.Equal(t, 0, svc.store.saves)
}

func TestProjectService_NumericIDsResolve(t *testing.T) {
	svc := setupServices(t)
	p := testutil.NewTestProject("Legacy", testutil.WithProjectID(domain.NumberID(42)))
	state := testutil.NewTestState(p)

	pinned, err := svc.projects.TogglePinned(context.Background(), state, domain.NumberID(42))
	require.NoError(t, err)
	assert.True(t, pinned)

	// A string "42" is a different identifier.
	_, err = svc.projects.TogglePinned(context.Background(), state, domain.StringID("42"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_SetStatusAndTogglePinned(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	p := testutil.NewTestProject("Launch")
	state := testutil.NewTestState(p)

	require.NoError(t, svc.projects.SetStatus(ctx, state, *p.ID, " В работе "))
	assert.Equal(t, "В работе", state.Projects[0].Status)

	pinned, err := svc.projects.TogglePinned(ctx, state, *p.ID)
	require.NoError(t, err)
	assert.True(t, pinned)
	pinned, err = svc.projects.TogglePinned(ctx, state, *p.ID)
	require.NoError(t, err)
	assert.False(t, pinned)
	assert.Equal(t, 3, svc.store.saves)
}

func TestProjectService_Remove(t *testing.T) {
	svc := setupServices(t)
	a := testutil.NewTestProject("A")
	b := testutil.NewTestProject("B")
	c := testutil.NewTestProject("C")
	state := testutil.NewTestState(a, b, c)

	require.NoError(t, svc.projects.Remove(context.Background(), state, *b.ID))

	saved := svc.store.reload(t)
	require.Len(t, saved.Projects, 2)
	assert.Equal(t, "A", saved.Projects[0].Name)
	assert.Equal(t, "C", saved.Projects[1].Name)
}

func TestProjectService_ExportThenImport(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	p := testutil.NewTestProject("Launch",
		testutil.WithProjectStatus("В работе"),
		testutil.WithNotes(testutil.NewTestNote("Kickoff", testutil.WithNoteSteps(testutil.NewTestStep("Book room", false)))),
		testutil.WithSteps(testutil.NewTestStep("Ship", true)),
	)
	state := testutil.NewTestState(p)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	bundle, err := svc.projects.Export(ctx, state, *p.ID, now)
	require.NoError(t, err)
	assert.Equal(t, domain.BundleFormat, bundle.Format)
	assert.Equal(t, now, bundle.ExportedAt)
	assert.Nil(t, bundle.Project.ID)
	assert.NotNil(t, state.Projects[0].ID, "export must not touch the source project")

	data, err := json.Marshal(bundle)
	require.NoError(t, err)

	imported, err := svc.projects.Import(ctx, state, data)
	require.NoError(t, err)
	require.Len(t, state.Projects, 2)
	assert.Equal(t, "Launch", imported.Name)
	assert.Equal(t, "В работе", imported.Status)
	assert.False(t, domain.SameID(imported.ID, p.ID))
	assert.False(t, domain.SameID(imported.Notes[0].ID, p.Notes[0].ID))
	assert.Equal(t, "Book room", imported.Notes[0].Steps[0].Text)
	assert.True(t, imported.Steps[0].Done)

	saved := svc.store.reload(t)
	assert.Len(t, saved.Projects, 2)
}

func TestProjectService_ImportRejectsGarbage(t *testing.T) {
	svc := setupServices(t)
	state := domain.NewAppState()

	_, err := svc.projects.Import(context.Background(), state, []byte("[1,2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeserialize)
	assert.Empty(t, state.Projects)
}

func TestProjectService_ImportRejectsNull(t *testing.T) {
	svc := setupServices(t)
	state := domain.NewAppState()

	for _, doc := range []string{`null`, `{"project": null}`} {
		_, err := svc.projects.Import(context.Background(), state, []byte(doc))
		assert.ErrorIs(t, err, domain.ErrDeserialize, doc)
	}
	assert.Empty(t, state.Projects)
	assert.Zero(t, svc.store.saves)
}

func TestProjectService_SaveFailureKeepsInMemoryChange(t *testing.T) {
	svc := setupServices(t)
	svc.store.saveErr = domain.NewError(domain.ErrIO, "write state", assert.AnError)
	state := domain.NewAppState()

	_, err := svc.projects.Add(context.Background(), state, ProjectInput{Name: "Launch"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Len(t, state.Projects, 1)
}
