package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// WindowMode is the requested display mode of the primary window.
// The zero value is WindowFullscreenFramed, which is also the default.
type WindowMode int

const (
	WindowFullscreenFramed WindowMode = iota
	WindowFullscreenBorderless
	WindowWindowed
	WindowBorderless
)

var windowModeNames = map[WindowMode]string{
	WindowFullscreenFramed:     "fullscreen_framed",
	WindowFullscreenBorderless: "fullscreen_borderless",
	WindowWindowed:             "windowed",
	WindowBorderless:           "borderless",
}

// ValidWindowModes lists the accepted wire names in display order.
var ValidWindowModes = []string{
	"fullscreen_framed",
	"fullscreen_borderless",
	"windowed",
	"borderless",
}

func (m WindowMode) String() string {
	if s, ok := windowModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("WindowMode(%d)", int(m))
}

// Valid reports whether m is one of the four known modes.
func (m WindowMode) Valid() bool {
	_, ok := windowModeNames[m]
	return ok
}

// ParseWindowMode maps a wire name to a WindowMode. The legacy name
// "fullscreen" is accepted as fullscreen_framed.
func ParseWindowMode(s string) (WindowMode, error) {
	name := strings.TrimSpace(s)
	if name == "fullscreen" {
		return WindowFullscreenFramed, nil
	}
	for m, n := range windowModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown window mode %q (valid: %s)", s, strings.Join(ValidWindowModes, ", "))
}

func (m WindowMode) MarshalJSON() ([]byte, error) {
	name, ok := windowModeNames[m]
	if !ok {
		return nil, fmt.Errorf("window mode %d has no wire name", int(m))
	}
	return json.Marshal(name)
}

func (m *WindowMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("window mode: %w", err)
	}
	parsed, err := ParseWindowMode(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Controls layouts understood by the presentation layer.
const (
	LayoutTopbar     = "topbar"
	LayoutContextual = "contextual"
)

// Interface languages understood by the presentation layer.
const (
	LanguageRU = "ru"
	LanguageEN = "en"
	LanguageUK = "uk"
)

// ThemeMidnight is the only shipped theme.
const ThemeMidnight = "midnight"

// ValidLanguages is the canonical set of accepted language codes.
var ValidLanguages = map[string]bool{
	LanguageRU: true, LanguageEN: true, LanguageUK: true,
}

// ValidControlsLayouts is the canonical set of accepted controls layouts.
var ValidControlsLayouts = map[string]bool{
	LayoutTopbar: true, LayoutContextual: true,
}
