package domain

import (
	"encoding/json"
	"strings"
)

// Step is one item of an ordered checklist.
type Step struct {
	ID   *EntityID `json:"id,omitempty"`
	Text string    `json:"text"`
	Done bool      `json:"done"`
}

// Note is a free-text note with its own checklist.
type Note struct {
	ID    *EntityID `json:"id,omitempty"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Steps []Step    `json:"steps"`
}

// Project groups notes and a project-level checklist. Steps may be attached
// at both levels and both are persisted.
type Project struct {
	ID          *EntityID `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Pinned      bool      `json:"pinned"`
	Notes       []Note    `json:"notes"`
	Steps       []Step    `json:"steps"`
}

// NewNote returns a note with empty (non-nil) checklist.
func NewNote(title, body string) Note {
	return Note{Title: title, Body: body, Steps: []Step{}}
}

// NewProject returns a project with empty (non-nil) notes and steps.
func NewProject(name, description string) Project {
	return Project{Name: name, Description: description, Notes: []Note{}, Steps: []Step{}}
}

// DisplayID returns the best short identifier for display.
// It truncates long IDs to 8 characters and uses "--" when absent.
func (p *Project) DisplayID() string {
	return shortID(p.ID)
}

// DisplayID returns the best short identifier for display.
func (n *Note) DisplayID() string {
	return shortID(n.ID)
}

// DisplayID returns the best short identifier for display.
func (s *Step) DisplayID() string {
	return shortID(s.ID)
}

func shortID(id *EntityID) string {
	if id == nil {
		return "--"
	}
	s := id.String()
	if strings.TrimSpace(s) == "" {
		return "--"
	}
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// FindNote returns the index of the note with the given ID, or -1.
func (p *Project) FindNote(id EntityID) int {
	for i := range p.Notes {
		if SameID(p.Notes[i].ID, &id) {
			return i
		}
	}
	return -1
}

// FindStep returns the index of the project-level step with the given ID, or -1.
func (p *Project) FindStep(id EntityID) int {
	return findStep(p.Steps, id)
}

// FindStep returns the index of the note-level step with the given ID, or -1.
func (n *Note) FindStep(id EntityID) int {
	return findStep(n.Steps, id)
}

func findStep(steps []Step, id EntityID) int {
	for i := range steps {
		if SameID(steps[i].ID, &id) {
			return i
		}
	}
	return -1
}

// StepProgress counts done and total project-level steps.
func (p *Project) StepProgress() (done, total int) {
	for _, s := range p.Steps {
		if s.Done {
			done++
		}
	}
	return done, len(p.Steps)
}

// MoveStep reorders a project-level step. Out-of-range positions are ignored
// and reported as false.
func (p *Project) MoveStep(from, to int) bool {
	if from < 0 || from >= len(p.Steps) || to < 0 || to >= len(p.Steps) {
		return false
	}
	moved := p.Steps[from]
	p.Steps = append(p.Steps[:from], p.Steps[from+1:]...)
	p.Steps = append(p.Steps[:to], append([]Step{moved}, p.Steps[to:]...)...)
	return true
}

func (n Note) MarshalJSON() ([]byte, error) {
	type noteJSON Note
	v := noteJSON(n)
	if v.Steps == nil {
		v.Steps = []Step{}
	}
	return json.Marshal(v)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	type noteJSON Note
	var v noteJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Steps == nil {
		v.Steps = []Step{}
	}
	*n = Note(v)
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	type projectJSON Project
	v := projectJSON(p)
	if v.Notes == nil {
		v.Notes = []Note{}
	}
	if v.Steps == nil {
		v.Steps = []Step{}
	}
	return json.Marshal(v)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type projectJSON Project
	var v projectJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Notes == nil {
		v.Notes = []Note{}
	}
	if v.Steps == nil {
		v.Steps = []Step{}
	}
	*p = Project(v)
	return nil
}
