package testutil

import (
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s string) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithPinned() ProjectOption {
	return func(p *domain.Project) {
		p.Pinned = true
	}
}

func WithProjectID(id domain.EntityID) ProjectOption {
	return func(p *domain.Project) {
		p.ID = &id
	}
}

func WithoutProjectID() ProjectOption {
	return func(p *domain.Project) {
		p.ID = nil
	}
}

func WithNotes(notes ...domain.Note) ProjectOption {
	return func(p *domain.Project) {
		p.Notes = append(p.Notes, notes...)
	}
}

func WithSteps(steps ...domain.Step) ProjectOption {
	return func(p *domain.Project) {
		p.Steps = append(p.Steps, steps...)
	}
}

func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	p := domain.NewProject(name, "test project")
	p.ID = domain.NewStringID(uuid.New().String())
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Note options
type NoteOption func(*domain.Note)

func WithNoteSteps(steps ...domain.Step) NoteOption {
	return func(n *domain.Note) {
		n.Steps = append(n.Steps, steps...)
	}
}

func WithNoteBody(body string) NoteOption {
	return func(n *domain.Note) {
		n.Body = body
	}
}

func NewTestNote(title string, opts ...NoteOption) domain.Note {
	n := domain.NewNote(title, "")
	n.ID = domain.NewStringID(uuid.New().String())
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// NewTestStep returns a step with a fresh string ID.
func NewTestStep(text string, done bool) domain.Step {
	return domain.Step{ID: domain.NewStringID(uuid.New().String()), Text: text, Done: done}
}

// NewTestState returns a default state holding the given projects.
func NewTestState(projects ...domain.Project) *domain.AppState {
	s := domain.NewAppState()
	s.Projects = append(s.Projects, projects...)
	return s
}
