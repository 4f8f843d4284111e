package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/alexanderramin/notestudio/internal/service"
	"github.com/alexanderramin/notestudio/internal/window"
	"github.com/spf13/cobra"
)

// StateWatcher reports external changes to the saved state.
type StateWatcher interface {
	Watch(ctx context.Context, onChange func(*domain.AppState, error)) error
}

// App holds the services and process wiring the commands use.
type App struct {
	State    service.StateService
	Projects service.ProjectService
	Notes    service.NoteService
	Steps    service.StepService
	Settings service.SettingsService

	Watcher StateWatcher
	// Windows receives the shell's terminal surface once it has a size.
	Windows *window.Registry

	AppID       string
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal. When it returns
	// true and no subcommand is given, the shell starts.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "notestudio" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "notestudio",
		Short:         "Projects, notes and checklists in one local file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runShell(cmd.Context(), app, nil)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newNoteCmd(app),
		newStepCmd(app),
		newSettingsCmd(app),
		newWatchCmd(app),
		newExportCmd(app),
		newShellCmd(app),
	)
	return root
}

func loadState(cmd *cobra.Command, app *App) (*domain.AppState, error) {
	state, err := app.State.LoadState(ctxOf(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
