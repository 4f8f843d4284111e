package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type candidate struct {
	id    *domain.EntityID
	label string
}

// resolveRef picks one candidate for a user-typed reference. In order:
// exact ID, "#N" position (1-based, when positional is set), unique ID
// prefix, case-insensitive exact label.
func resolveRef(what, ref string, cands []candidate, positional bool) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%s reference is required", what)
	}

	for i, c := range cands {
		if c.id != nil && c.id.String() == ref {
			return i, nil
		}
	}

	if positional && strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 || n > len(cands) {
			return -1, notFoundRef(what, ref)
		}
		return n - 1, nil
	}

	match := -1
	count := 0
	for i, c := range cands {
		if c.id != nil && strings.HasPrefix(c.id.String(), ref) {
			match = i
			count++
		}
	}
	if count == 1 {
		return match, nil
	}
	if count > 1 {
		return -1, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", what, ref, count)
	}

	count = 0
	for i, c := range cands {
		if strings.EqualFold(strings.TrimSpace(c.label), ref) {
			match = i
			count++
		}
	}
	switch count {
	case 0:
		return -1, notFoundRef(what, ref)
	case 1:
		return match, nil
	default:
		return -1, fmt.Errorf("%s name %q is ambiguous (%d matches); use its ID", what, ref, count)
	}
}

func notFoundRef(what, ref string) error {
	return domain.NewError(domain.ErrNotFound, "resolve "+what, fmt.Errorf("%s not found: %q", what, ref))
}

// requireID returns the entity's ID, or an error for legacy entities saved
// without one; those can be listed but not edited by reference.
func requireID(what, label string, id *domain.EntityID) (domain.EntityID, error) {
	if id == nil {
		return domain.EntityID{}, fmt.Errorf("%s %q has no ID and cannot be changed from the command line", what, label)
	}
	return *id, nil
}

func resolveProject(state *domain.AppState, ref string) (*domain.Project, error) {
	cands := make([]candidate, len(state.Projects))
	for i := range state.Projects {
		cands[i] = candidate{id: state.Projects[i].ID, label: state.Projects[i].Name}
	}
	i, err := resolveRef("project", ref, cands, false)
	if err != nil {
		return nil, err
	}
	return &state.Projects[i], nil
}

func resolveNote(p *domain.Project, ref string) (*domain.Note, error) {
	cands := make([]candidate, len(p.Notes))
	for i := range p.Notes {
		cands[i] = candidate{id: p.Notes[i].ID, label: p.Notes[i].Title}
	}
	i, err := resolveRef("note", ref, cands, true)
	if err != nil {
		return nil, err
	}
	return &p.Notes[i], nil
}

func resolveStep(steps []domain.Step, ref string) (*domain.Step, error) {
	cands := make([]candidate, len(steps))
	for i := range steps {
		cands[i] = candidate{id: steps[i].ID, label: steps[i].Text}
	}
	i, err := resolveRef("step", ref, cands, true)
	if err != nil {
		return nil, err
	}
	return &steps[i], nil
}
