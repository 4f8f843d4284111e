package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/google/uuid"
)

// newID allocates a fresh string identifier.
func newID() *domain.EntityID {
	return domain.NewStringID(uuid.New().String())
}

func notFound(op, what string, id domain.EntityID) error {
	return domain.NewError(domain.ErrNotFound, op, fmt.Errorf("%s %q not found", what, id.String()))
}

func findProject(state *domain.AppState, id domain.EntityID, op string) (*domain.Project, error) {
	i := state.FindProject(id)
	if i < 0 {
		return nil, notFound(op, "project", id)
	}
	return &state.Projects[i], nil
}

func findNote(p *domain.Project, id domain.EntityID, op string) (*domain.Note, error) {
	i := p.FindNote(id)
	if i < 0 {
		return nil, notFound(op, "note", id)
	}
	return &p.Notes[i], nil
}

// checklist returns a pointer to the step slice target selects.
func checklist(state *domain.AppState, target StepTarget, op string) (*[]domain.Step, error) {
	p, err := findProject(state, target.Project, op)
	if err != nil {
		return nil, err
	}
	if target.Note == nil {
		return &p.Steps, nil
	}
	n, err := findNote(p, *target.Note, op)
	if err != nil {
		return nil, err
	}
	return &n.Steps, nil
}

func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return v, nil
}

// reassignIDs gives p and everything it owns fresh identifiers, and fills
// blank names the way imported projects are displayed.
func reassignIDs(p *domain.Project) {
	p.ID = newID()
	p.Name = domain.CoalesceStr(strings.TrimSpace(p.Name), "Project")
	p.Status = strings.TrimSpace(p.Status)
	for i := range p.Notes {
		n := &p.Notes[i]
		n.ID = newID()
		n.Title = domain.CoalesceStr(n.Title, "No title")
		for j := range n.Steps {
			n.Steps[j].ID = newID()
		}
	}
	for i := range p.Steps {
		p.Steps[i].ID = newID()
	}
}
