package formatter

import (
	"strings"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// FormatSettings renders the current preferences as a key/value table.
func FormatSettings(s domain.Settings) string {
	statuses := Dim("(none)")
	if len(s.ProjectStatuses) > 0 {
		statuses = strings.Join(s.ProjectStatuses, ", ")
	}
	rows := [][]string{
		{"theme", s.Theme},
		{"animations", OnOff(s.Animations)},
		{"controlsLayout", s.ControlsLayout},
		{"statusesEnabled", OnOff(s.StatusesEnabled)},
		{"projectStatuses", statuses},
		{"windowMode", StyleBlue.Render(s.WindowMode.String())},
		{"alwaysOnTop", OnOff(s.AlwaysOnTop)},
		{"language", s.Language},
	}
	return RenderBox("Settings", RenderTable([]string{"KEY", "VALUE"}, rows))
}
