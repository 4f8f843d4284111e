package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Settings holds UI and window preferences.
type Settings struct {
	Theme           string     `json:"theme"`
	Animations      bool       `json:"animations"`
	ControlsLayout  string     `json:"controlsLayout"`
	StatusesEnabled bool       `json:"statusesEnabled"`
	ProjectStatuses []string   `json:"projectStatuses"`
	WindowMode      WindowMode `json:"windowMode"`
	AlwaysOnTop     bool       `json:"alwaysOnTop"`
	Language        string     `json:"language"`
}

// DefaultProjectStatuses returns a fresh copy of the stock status labels.
func DefaultProjectStatuses() []string {
	return []string{"Новый", "В работе", "Завершен"}
}

// DefaultSettings returns settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		Theme:           ThemeMidnight,
		Animations:      true,
		ControlsLayout:  LayoutTopbar,
		StatusesEnabled: true,
		ProjectStatuses: DefaultProjectStatuses(),
		WindowMode:      WindowFullscreenFramed,
		AlwaysOnTop:     false,
		Language:        LanguageRU,
	}
}

// HasStatus reports whether label is one of the configured project statuses.
func (s *Settings) HasStatus(label string) bool {
	for _, st := range s.ProjectStatuses {
		if st == label {
			return true
		}
	}
	return false
}

// DefaultStatus returns the first configured status, or "" when statuses
// are disabled or none are configured.
func (s *Settings) DefaultStatus() string {
	if !s.StatusesEnabled || len(s.ProjectStatuses) == 0 {
		return ""
	}
	return s.ProjectStatuses[0]
}

// Validate checks user-supplied settings before they are saved. Decoding
// never calls it: persisted values are accepted as they are.
func (s *Settings) Validate() error {
	if !ValidLanguages[s.Language] {
		return fmt.Errorf("unsupported language %q (valid: en, ru, uk)", s.Language)
	}
	if !ValidControlsLayouts[s.ControlsLayout] {
		return fmt.Errorf("unsupported controls layout %q (valid: contextual, topbar)", s.ControlsLayout)
	}
	if !s.WindowMode.Valid() {
		return fmt.Errorf("unsupported window mode %d", int(s.WindowMode))
	}
	seen := make(map[string]bool, len(s.ProjectStatuses))
	for _, st := range s.ProjectStatuses {
		if strings.TrimSpace(st) == "" {
			return fmt.Errorf("project status labels must not be blank")
		}
		if seen[st] {
			return fmt.Errorf("duplicate project status %q", st)
		}
		seen[st] = true
	}
	return nil
}

// NormalizeStatuses trims labels and drops blanks and duplicates, keeping
// first-seen order.
func NormalizeStatuses(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func (s Settings) MarshalJSON() ([]byte, error) {
	type settingsJSON Settings
	v := settingsJSON(s)
	if v.ProjectStatuses == nil {
		v.ProjectStatuses = []string{}
	}
	return json.Marshal(v)
}

// UnmarshalJSON fills every absent field with its default. An explicit
// empty projectStatuses list is kept empty; null restores the defaults.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type settingsJSON Settings
	v := settingsJSON(DefaultSettings())
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Settings(v)
		return nil
	}
	v.ProjectStatuses = nil
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.ProjectStatuses == nil {
		v.ProjectStatuses = DefaultProjectStatuses()
	}
	*s = Settings(v)
	return nil
}
