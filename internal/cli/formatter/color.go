package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Midnight palette.
var (
	ColorGreen  = lipgloss.Color("#7fd4a8")
	ColorYellow = lipgloss.Color("#f2c46d")
	ColorRed    = lipgloss.Color("#f07178")
	ColorBlue   = lipgloss.Color("#82aaff")
	ColorPurple = lipgloss.Color("#c792ea")
	ColorDim    = lipgloss.Color("#697098")
	ColorFg     = lipgloss.Color("#d6deeb")
	ColorHeader = lipgloss.Color("#89ddff")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an uppercased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a confirmation line with a green check.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}
