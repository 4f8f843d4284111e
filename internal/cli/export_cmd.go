package cli

import (
	"fmt"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/db"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var sqlitePath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole state to a SQLite snapshot",
		Long: `Write every project, note, step and preference to a SQLite database
for querying with other tools. The database is replaced on every export;
app_state.json stays the only source the app reads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}

			d, err := db.OpenDB(sqlitePath)
			if err != nil {
				return err
			}
			defer d.Close()

			meta := db.Meta{AppID: app.AppID, WrittenAt: app.now()}
			if err := db.WriteSnapshot(ctxOf(cmd), db.NewSQLiteUnitOfWork(d), state, meta); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("Exported %d projects to %s", len(state.Projects), sqlitePath)))
			return nil
		},
	}
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Path of the SQLite file to write")
	_ = cmd.MarkFlagRequired("sqlite")
	return cmd
}
