package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type noteService struct {
	states   StateService
	observer UseCaseObserver
}

func NewNoteService(states StateService, observers ...UseCaseObserver) NoteService {
	return &noteService{states: states, observer: combineObservers(observers)}
}

func (s *noteService) Add(ctx context.Context, state *domain.AppState, projectID domain.EntityID, title, body string) (n domain.Note, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID.String()}
	defer func() { observe(ctx, s.observer, "add-note", startedAt, fields, &err) }()

	p, err := findProject(state, projectID, "add note")
	if err != nil {
		return domain.Note{}, err
	}
	title, err = requireText("note title", title)
	if err != nil {
		return domain.Note{}, err
	}

	n = domain.NewNote(title, strings.TrimSpace(body))
	n.ID = newID()
	p.Notes = append(p.Notes, n)
	fields["note_id"] = n.ID.String()
	return n, s.states.SaveState(ctx, state)
}

func (s *noteService) Update(ctx context.Context, state *domain.AppState, projectID, noteID domain.EntityID, title, body string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID.String(), "note_id": noteID.String()}
	defer func() { observe(ctx, s.observer, "update-note", startedAt, fields, &err) }()

	p, err := findProject(state, projectID, "update note")
	if err != nil {
		return err
	}
	n, err := findNote(p, noteID, "update note")
	if err != nil {
		return err
	}
	title, err = requireText("note title", title)
	if err != nil {
		return err
	}
	n.Title = title
	n.Body = strings.TrimSpace(body)
	return s.states.SaveState(ctx, state)
}

func (s *noteService) Remove(ctx context.Context, state *domain.AppState, projectID, noteID domain.EntityID) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID.String(), "note_id": noteID.String()}
	defer func() { observe(ctx, s.observer, "remove-note", startedAt, fields, &err) }()

	p, err := findProject(state, projectID, "remove note")
	if err != nil {
		return err
	}
	i := p.FindNote(noteID)
	if i < 0 {
		return notFound("remove note", "note", noteID)
	}
	p.Notes = append(p.Notes[:i], p.Notes[i+1:]...)
	return s.states.SaveState(ctx, state)
}
