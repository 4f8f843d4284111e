package cli

import (
	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/charmbracelet/lipgloss"
)

// terminalSurface is the shell's window. The configurator drives it through
// window.Surface and the shell model reads the flags back when rendering:
// fullscreen switches to the alternate screen, decorations draw a border,
// maximized fills the terminal and centered places a smaller frame in the
// middle.
type terminalSurface struct {
	fullscreen bool
	decorated  bool
	maximized  bool
	centered   bool
	onTop      bool
}

func newTerminalSurface() *terminalSurface {
	return &terminalSurface{decorated: true}
}

func (s *terminalSurface) SetFullscreen(on bool) error {
	s.fullscreen = on
	return nil
}

func (s *terminalSurface) SetDecorations(on bool) error {
	s.decorated = on
	return nil
}

func (s *terminalSurface) Maximize() error {
	s.maximized = true
	s.centered = false
	return nil
}

func (s *terminalSurface) Unmaximize() error {
	s.maximized = false
	return nil
}

func (s *terminalSurface) Center() error {
	s.centered = true
	return nil
}

func (s *terminalSurface) SetAlwaysOnTop(on bool) error {
	s.onTop = on
	return nil
}

// fills reports whether the frame takes the whole terminal.
func (s *terminalSurface) fills() bool {
	return s.fullscreen || s.maximized
}

func (s *terminalSurface) borderSize() int {
	if s.decorated {
		return 2
	}
	return 0
}

// contentSize returns the space left for content inside a terminal of the
// given size.
func (s *terminalSurface) contentSize(width, height int) (int, int) {
	w, h := width, height
	if !s.fills() {
		w, h = width*4/5, height*4/5
	}
	w -= s.borderSize()
	h -= s.borderSize()
	return max(w, 10), max(h, 3)
}

// frame wraps content, already sized by contentSize, for a terminal of the
// given size.
func (s *terminalSurface) frame(content string, width, height int) string {
	w, h := s.contentSize(width, height)
	style := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h + s.borderSize())
	if s.decorated {
		border := formatter.ColorDim
		if s.onTop {
			border = formatter.ColorPurple
		}
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(border)
	}
	box := style.Render(content)

	if s.fills() || !s.centered {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
