package cli

import (
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage a project's notes",
	}
	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteEditCmd(app),
		newNoteRemoveCmd(app),
	)
	return cmd
}

// projectFlag registers the --project flag shared by note and step commands.
func projectFlag(cmd *cobra.Command, ref *string) {
	cmd.Flags().StringVarP(ref, "project", "p", "", "Project ID, ID prefix or name")
	_ = cmd.MarkFlagRequired("project")
}

func loadProject(cmd *cobra.Command, app *App, ref string) (*domain.AppState, *domain.Project, domain.EntityID, error) {
	state, err := loadState(cmd, app)
	if err != nil {
		return nil, nil, domain.EntityID{}, err
	}
	p, err := resolveProject(state, ref)
	if err != nil {
		return nil, nil, domain.EntityID{}, err
	}
	id, err := requireID("project", p.Name, p.ID)
	if err != nil {
		return nil, nil, domain.EntityID{}, err
	}
	return state, p, id, nil
}

func newNoteAddCmd(app *App) *cobra.Command {
	var projectRef, body string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, p, projectID, err := loadProject(cmd, app, projectRef)
			if err != nil {
				return err
			}
			projectName := p.Name
			n, err := app.Notes.Add(ctxOf(cmd), state, projectID, strings.Join(args, " "), body)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", formatter.Success("Added note "+formatter.Bold(n.Title)+" to "+projectName))
			return nil
		},
	}
	projectFlag(cmd, &projectRef)
	cmd.Flags().StringVarP(&body, "body", "b", "", "Note text")
	return cmd
}

func newNoteEditCmd(app *App) *cobra.Command {
	var projectRef, title, body string

	cmd := &cobra.Command{
		Use:   "edit <note>",
		Short: "Change a note's title or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, p, projectID, err := loadProject(cmd, app, projectRef)
			if err != nil {
				return err
			}
			n, err := resolveNote(p, args[0])
			if err != nil {
				return err
			}
			noteID, err := requireID("note", n.Title, n.ID)
			if err != nil {
				return err
			}

			newTitle, newBody := n.Title, n.Body
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			if cmd.Flags().Changed("body") {
				newBody = body
			}
			if err := app.Notes.Update(ctxOf(cmd), state, projectID, noteID, newTitle, newBody); err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Updated note "+formatter.Bold(strings.TrimSpace(newTitle))))
			return nil
		},
	}
	projectFlag(cmd, &projectRef)
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "New text")
	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:     "rm <note>",
		Aliases: []string{"remove"},
		Short:   "Delete a note and its steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, p, projectID, err := loadProject(cmd, app, projectRef)
			if err != nil {
				return err
			}
			n, err := resolveNote(p, args[0])
			if err != nil {
				return err
			}
			noteID, err := requireID("note", n.Title, n.ID)
			if err != nil {
				return err
			}
			title := n.Title
			if err := app.Notes.Remove(ctxOf(cmd), state, projectID, noteID); err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Removed note "+formatter.Bold(title)))
			return nil
		},
	}
	projectFlag(cmd, &projectRef)
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation in the shell")
	return cmd
}
