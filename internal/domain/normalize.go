package domain

import "reflect"

// Normalize replaces every nil slice in s with an empty one. Decode always
// yields normalized values, so Decode(Encode(x)) equals x once x is
// normalized.
func (s *AppState) Normalize() {
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	for i := range s.Projects {
		s.Projects[i].normalize()
	}
	if s.Settings.ProjectStatuses == nil {
		s.Settings.ProjectStatuses = []string{}
	}
}

func (p *Project) normalize() {
	if p.Notes == nil {
		p.Notes = []Note{}
	}
	if p.Steps == nil {
		p.Steps = []Step{}
	}
	for i := range p.Notes {
		if p.Notes[i].Steps == nil {
			p.Notes[i].Steps = []Step{}
		}
	}
}

// Equal reports whether two states persist to the same document. A nil
// slice and an empty one compare equal; neither state is modified.
func (s *AppState) Equal(other *AppState) bool {
	if s == nil || other == nil {
		return s == other
	}
	a, b := s.normalizedCopy(), other.normalizedCopy()
	return reflect.DeepEqual(a, b)
}

func (s *AppState) normalizedCopy() *AppState {
	out := &AppState{Settings: s.Settings}
	out.Settings.ProjectStatuses = append([]string{}, s.Settings.ProjectStatuses...)
	out.Projects = make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		p.Steps = append([]Step{}, p.Steps...)
		notes := make([]Note, len(p.Notes))
		for j, n := range p.Notes {
			n.Steps = append([]Step{}, n.Steps...)
			notes[j] = n
		}
		p.Notes = notes
		out.Projects[i] = p
	}
	return out
}
