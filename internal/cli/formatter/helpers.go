package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// StatusPill colors a project status by its place in the configured list:
// the first label reads as new, the last as finished, anything between as
// in progress. Labels not in the list are dimmed.
func StatusPill(status string, statuses []string) string {
	if status == "" {
		return Dim("--")
	}
	idx := -1
	for i, s := range statuses {
		if s == status {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		return StyleDim.Render("○ " + status)
	case idx == len(statuses)-1 && idx > 0:
		return StyleGreen.Render("✔ " + status)
	case idx == 0:
		return StyleBlue.Render("○ " + status)
	default:
		return StyleYellow.Render("● " + status)
	}
}

// PinMark returns a marker for pinned projects and padding otherwise.
func PinMark(pinned bool) string {
	if pinned {
		return StylePurple.Render("★")
	}
	return " "
}

// OnOff renders a boolean setting.
func OnOff(v bool) string {
	if v {
		return StyleGreen.Render("on")
	}
	return Dim("off")
}
