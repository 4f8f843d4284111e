package cli

import (
	"strings"
	"testing"

	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/alexanderramin/notestudio/internal/window"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configuredSurface(t *testing.T, mode domain.WindowMode, onTop bool) *terminalSurface {
	t.Helper()
	s := newTerminalSurface()
	reg := window.NewRegistry()
	reg.Attach(s)
	require.NoError(t, window.NewConfigurator(reg, false, nil).Apply(mode, onTop))
	return s
}

func TestTerminalSurface_FollowsConfigurator(t *testing.T) {
	cases := []struct {
		mode domain.WindowMode
		want terminalSurface
	}{
		{domain.WindowFullscreenFramed, terminalSurface{decorated: true, maximized: true}},
		{domain.WindowFullscreenBorderless, terminalSurface{fullscreen: true}},
		{domain.WindowWindowed, terminalSurface{decorated: true, centered: true}},
		{domain.WindowBorderless, terminalSurface{maximized: true}},
	}
	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			got := configuredSurface(t, tc.mode, false)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestTerminalSurface_ContentSize(t *testing.T) {
	w, h := configuredSurface(t, domain.WindowFullscreenFramed, false).contentSize(100, 40)
	assert.Equal(t, 98, w)
	assert.Equal(t, 38, h)

	w, h = configuredSurface(t, domain.WindowFullscreenBorderless, false).contentSize(100, 40)
	assert.Equal(t, 100, w)
	assert.Equal(t, 40, h)

	w, h = configuredSurface(t, domain.WindowWindowed, false).contentSize(100, 40)
	assert.Equal(t, 78, w)
	assert.Equal(t, 30, h)
}

func TestTerminalSurface_Frame(t *testing.T) {
	framed := configuredSurface(t, domain.WindowFullscreenFramed, false)
	out := framed.frame("hello", 40, 10)
	assert.True(t, strings.HasPrefix(out, "╭"), "decorated frames draw a border")
	assert.Equal(t, 40, lipgloss.Width(out))
	assert.Equal(t, 10, lipgloss.Height(out))

	bare := configuredSurface(t, domain.WindowBorderless, false).frame("hello", 40, 10)
	assert.NotContains(t, bare, "╭")
	assert.True(t, strings.HasPrefix(bare, "hello"))

	windowed := configuredSurface(t, domain.WindowWindowed, false).frame("hello", 40, 10)
	assert.Equal(t, 10, lipgloss.Height(windowed), "centered frames are placed in the full terminal")
	assert.True(t, strings.HasPrefix(windowed, " "), "centered frames are padded")
}
