package service

import (
	"context"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// StateStore persists the whole application state.
type StateStore interface {
	Load() (*domain.AppState, error)
	Save(state *domain.AppState) error
}

// WindowApplier applies window preferences to the primary window.
type WindowApplier interface {
	Apply(mode domain.WindowMode, alwaysOnTop bool) error
}

// StateService is the command surface the presentation layer drives.
type StateService interface {
	LoadState(ctx context.Context) (*domain.AppState, error)
	SaveState(ctx context.Context, state *domain.AppState) error
	ApplyWindowSettings(ctx context.Context, mode domain.WindowMode, alwaysOnTop bool) error
}

// ProjectInput carries user-entered project fields.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
}

// The editing services mutate the caller's state in place and save it.
// A failed save leaves the in-memory change applied.

type ProjectService interface {
	Add(ctx context.Context, state *domain.AppState, in ProjectInput) (domain.Project, error)
	Update(ctx context.Context, state *domain.AppState, id domain.EntityID, in ProjectInput) error
	SetStatus(ctx context.Context, state *domain.AppState, id domain.EntityID, status string) error
	TogglePinned(ctx context.Context, state *domain.AppState, id domain.EntityID) (bool, error)
	Remove(ctx context.Context, state *domain.AppState, id domain.EntityID) error
	Export(ctx context.Context, state *domain.AppState, id domain.EntityID, now time.Time) (domain.ProjectBundle, error)
	Import(ctx context.Context, state *domain.AppState, data []byte) (domain.Project, error)
}

type NoteService interface {
	Add(ctx context.Context, state *domain.AppState, projectID domain.EntityID, title, body string) (domain.Note, error)
	Update(ctx context.Context, state *domain.AppState, projectID, noteID domain.EntityID, title, body string) error
	Remove(ctx context.Context, state *domain.AppState, projectID, noteID domain.EntityID) error
}

// StepTarget selects a checklist: the project's own, or one of its notes'
// when Note is set.
type StepTarget struct {
	Project domain.EntityID
	Note    *domain.EntityID
}

type StepService interface {
	Add(ctx context.Context, state *domain.AppState, target StepTarget, text string) (domain.Step, error)
	SetDone(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID, done bool) error
	Toggle(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID) (bool, error)
	Remove(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID) error
	Move(ctx context.Context, state *domain.AppState, projectID domain.EntityID, from, to int) error
}

type SettingsService interface {
	Update(ctx context.Context, state *domain.AppState, next domain.Settings) error
}
