package cli

import (
	"fmt"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the saved state changes on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Watcher == nil {
				return fmt.Errorf("watching is not available")
			}
			writeln(cmd, formatter.Dim("Watching for changes. Ctrl+C stops."))
			return app.Watcher.Watch(ctxOf(cmd), func(state *domain.AppState, err error) {
				stamp := formatter.Dim(app.now().Format("15:04:05"))
				if err != nil {
					printf(cmd, "%s %s\n", stamp, formatter.StyleRed.Render(err.Error()))
					return
				}
				printf(cmd, "%s %s\n", stamp, summarizeState(state))
			})
		},
	}
}

func summarizeState(state *domain.AppState) string {
	notes, steps, done := 0, 0, 0
	for i := range state.Projects {
		p := &state.Projects[i]
		notes += len(p.Notes)
		d, t := p.StepProgress()
		done += d
		steps += t
	}
	return fmt.Sprintf("%d projects, %d notes, %d/%d project steps done, window %s",
		len(state.Projects), notes, done, steps, state.Settings.WindowMode)
}
