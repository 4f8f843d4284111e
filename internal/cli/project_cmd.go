package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectStatusCmd(app),
		newProjectPinCmd(app),
		newProjectRemoveCmd(app),
		newProjectExportCmd(app),
		newProjectImportCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var description, status string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			if status != "" && state.Settings.StatusesEnabled && !state.Settings.HasStatus(status) {
				return unknownStatusError(status, state.Settings.ProjectStatuses)
			}

			p, err := app.Projects.Add(ctxOf(cmd), state, service.ProjectInput{
				Name:        strings.Join(args, " "),
				Description: description,
				Status:      status,
			})
			if err != nil {
				return err
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("Created project %s [%s]", formatter.Bold(p.Name), p.DisplayID())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (defaults to the first configured status)")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, pinned first",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatProjectList(state))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <project>",
		Aliases: []string{"inspect"},
		Short:   "Show a project's notes and steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatProjectShow(p, state.Settings))
			return nil
		},
	}
}

func newProjectEditCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit <project>",
		Short: "Rename a project or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			id, err := requireID("project", p.Name, p.ID)
			if err != nil {
				return err
			}

			in := service.ProjectInput{Name: p.Name, Description: p.Description, Status: p.Status}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			if err := app.Projects.Update(ctxOf(cmd), state, id, in); err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Updated project "+formatter.Bold(strings.TrimSpace(in.Name))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <status>",
		Short: "Set a project's status",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			if !state.Settings.StatusesEnabled {
				return fmt.Errorf("project statuses are disabled; enable them with 'settings set statusesEnabled true'")
			}
			label := strings.Join(args[1:], " ")
			if !state.Settings.HasStatus(label) {
				return unknownStatusError(label, state.Settings.ProjectStatuses)
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			id, err := requireID("project", p.Name, p.ID)
			if err != nil {
				return err
			}
			if err := app.Projects.SetStatus(ctxOf(cmd), state, id, label); err != nil {
				return err
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("%s → %s", formatter.Bold(p.Name),
				formatter.StatusPill(label, state.Settings.ProjectStatuses))))
			return nil
		},
	}
}

func unknownStatusError(label string, statuses []string) error {
	return fmt.Errorf("unknown status %q (configured: %s)", label, strings.Join(statuses, ", "))
}

func newProjectPinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <project>",
		Short: "Pin or unpin a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			id, err := requireID("project", p.Name, p.ID)
			if err != nil {
				return err
			}
			name := p.Name
			pinned, err := app.Projects.TogglePinned(ctxOf(cmd), state, id)
			if err != nil {
				return err
			}
			if pinned {
				writeln(cmd, formatter.Success("Pinned "+formatter.Bold(name)))
			} else {
				writeln(cmd, formatter.Success("Unpinned "+formatter.Bold(name)))
			}
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <project>",
		Aliases: []string{"remove"},
		Short:   "Delete a project with its notes and steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			id, err := requireID("project", p.Name, p.ID)
			if err != nil {
				return err
			}
			name := p.Name
			if err := app.Projects.Remove(ctxOf(cmd), state, id); err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Removed project "+formatter.Bold(name)))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation in the shell")
	return cmd
}

func newProjectExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <project> [file]",
		Short: "Write one project to a JSON file (stdout when no file is given)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(state, args[0])
			if err != nil {
				return err
			}
			id, err := requireID("project", p.Name, p.ID)
			if err != nil {
				return err
			}
			bundle, err := app.Projects.Export(ctxOf(cmd), state, id, app.now())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}

			if len(args) < 2 || args[1] == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(args[1], append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("Exported %s to %s", formatter.Bold(p.Name), args[1])))
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add a project from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import: %w", err)
			}
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			p, err := app.Projects.Import(ctxOf(cmd), state, data)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("Imported project %s [%s]: %d notes, %d steps",
				formatter.Bold(p.Name), p.DisplayID(), len(p.Notes), len(p.Steps))))
			return nil
		},
	}
}
