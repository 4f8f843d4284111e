package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// windowModeFlag is a --window flag value holding a window mode.
type windowModeFlag struct {
	mode domain.WindowMode
	set  bool
}

var _ pflag.Value = (*windowModeFlag)(nil)

func (f *windowModeFlag) String() string {
	if !f.set {
		return ""
	}
	return f.mode.String()
}

func (f *windowModeFlag) Set(s string) error {
	m, err := domain.ParseWindowMode(s)
	if err != nil {
		return err
	}
	f.mode, f.set = m, true
	return nil
}

func (f *windowModeFlag) Type() string { return "mode" }

// override returns the chosen mode, or nil when the flag was not given.
func (f *windowModeFlag) override() *domain.WindowMode {
	if !f.set {
		return nil
	}
	m := f.mode
	return &m
}

func newShellCmd(app *App) *cobra.Command {
	var mode windowModeFlag

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell with a current project and history",
		Long: `Start an interactive shell. The shell is the app's window: the saved
window mode and always-on-top preference are applied to it on start and
whenever they change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(ctxOf(cmd), app, mode.override())
		},
	}
	cmd.Flags().Var(&mode, "window", "Window mode for this session only ("+strings.Join(domain.ValidWindowModes, ", ")+")")
	return cmd
}

// runShell starts the interactive shell. A non-nil mode overrides the
// saved window mode until the shell exits; it is never saved.
func runShell(ctx context.Context, app *App, mode *domain.WindowMode) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if app.Windows != nil {
		defer app.Windows.Detach()
	}

	p := tea.NewProgram(newShellModel(ctx, app).withWindowOverride(mode), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// splitShellArgs splits a shell line into words, honoring single quotes,
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var (
		parts   []string
		cur     strings.Builder
		quote   rune
		escaped bool
		started bool
	)

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		started = false
	}

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			started = true
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if started {
				flush()
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if started {
		flush()
	}
	return parts, nil
}

// prepareShellCobraArgs adds --project for note and step commands when the
// shell has a current project and the line names none.
func prepareShellCobraArgs(args []string, activeProjectID string) []string {
	if len(args) == 0 || activeProjectID == "" {
		return args
	}
	group := strings.ToLower(args[0])
	if group != "note" && group != "step" {
		return args
	}
	if hasAnyFlag(args, "--project", "-p", "--help", "-h") {
		return args
	}

	out := make([]string, 0, len(args)+2)
	for i, a := range args {
		if a == "--" {
			out = append(out, "--project", activeProjectID)
			return append(out, args[i:]...)
		}
		out = append(out, a)
	}
	return append(out, "--project", activeProjectID)
}

// hasAnyFlag reports whether args contain one of flags, alone or in
// --flag=value form.
func hasAnyFlag(args []string, flags ...string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		for _, f := range flags {
			if a == f || strings.HasPrefix(a, f+"=") {
				return true
			}
		}
	}
	return false
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}
