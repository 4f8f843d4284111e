package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AppState is the root of everything persisted to the state file.
type AppState struct {
	Projects []Project `json:"projects"`
	Settings Settings  `json:"settings"`
}

// NewAppState returns the all-defaults state: no projects, default settings.
func NewAppState() *AppState {
	return &AppState{
		Projects: []Project{},
		Settings: DefaultSettings(),
	}
}

// FindProject returns the index of the project with the given ID, or -1.
func (s *AppState) FindProject(id EntityID) int {
	for i := range s.Projects {
		if SameID(s.Projects[i].ID, &id) {
			return i
		}
	}
	return -1
}

// SortedProjects returns project indexes in listing order: pinned first, then
// by case-insensitive name. The stored order is left untouched.
func (s *AppState) SortedProjects() []int {
	idx := make([]int, len(s.Projects))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := &s.Projects[idx[a]], &s.Projects[idx[b]]
		if pa.Pinned != pb.Pinned {
			return pa.Pinned
		}
		return strings.ToLower(pa.Name) < strings.ToLower(pb.Name)
	})
	return idx
}

func (s AppState) MarshalJSON() ([]byte, error) {
	type stateJSON AppState
	v := stateJSON(s)
	if v.Projects == nil {
		v.Projects = []Project{}
	}
	return json.Marshal(v)
}

func (s *AppState) UnmarshalJSON(data []byte) error {
	type stateJSON AppState
	v := stateJSON(*NewAppState())
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = AppState(v)
		return nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Projects == nil {
		v.Projects = []Project{}
	}
	*s = AppState(v)
	return nil
}

// Decode parses a state document. Absent fields take their defaults and
// unknown fields are ignored; a present field of the wrong shape fails.
func Decode(data []byte) (*AppState, error) {
	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding app state: %w", err)
	}
	return &s, nil
}

// Encode renders s as indented JSON with every field present.
func Encode(s *AppState) ([]byte, error) {
	if s == nil {
		s = NewAppState()
	}
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding app state: %w", err)
	}
	return out, nil
}
