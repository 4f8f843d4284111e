package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/alexanderramin/notestudio/internal/service"
	"github.com/spf13/cobra"
)

func newStepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Manage checklists on projects and notes",
	}
	cmd.AddCommand(
		newStepAddCmd(app),
		newStepDoneCmd(app, "done", "Tick a step", true),
		newStepDoneCmd(app, "undo", "Untick a step", false),
		newStepRemoveCmd(app),
		newStepMoveCmd(app),
	)
	return cmd
}

// stepScope is the --project/--note pair every step command takes.
type stepScope struct {
	project string
	note    string
}

func (s *stepScope) register(cmd *cobra.Command) {
	projectFlag(cmd, &s.project)
	cmd.Flags().StringVarP(&s.note, "note", "n", "", "Use this note's checklist instead of the project's")
}

// resolve loads the state and returns the selected checklist with its target.
func (s *stepScope) resolve(cmd *cobra.Command, app *App) (*domain.AppState, service.StepTarget, []domain.Step, error) {
	state, p, projectID, err := loadProject(cmd, app, s.project)
	if err != nil {
		return nil, service.StepTarget{}, nil, err
	}
	target := service.StepTarget{Project: projectID}
	if s.note == "" {
		return state, target, p.Steps, nil
	}
	n, err := resolveNote(p, s.note)
	if err != nil {
		return nil, service.StepTarget{}, nil, err
	}
	noteID, err := requireID("note", n.Title, n.ID)
	if err != nil {
		return nil, service.StepTarget{}, nil, err
	}
	target.Note = &noteID
	return state, target, n.Steps, nil
}

func newStepAddCmd(app *App) *cobra.Command {
	var scope stepScope

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, target, _, err := scope.resolve(cmd, app)
			if err != nil {
				return err
			}
			st, err := app.Steps.Add(ctxOf(cmd), state, target, strings.Join(args, " "))
			if err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Added step "+formatter.Bold(st.Text)))
			return nil
		},
	}
	scope.register(cmd)
	return cmd
}

func newStepDoneCmd(app *App, use, short string, done bool) *cobra.Command {
	var scope stepScope

	cmd := &cobra.Command{
		Use:   use + " <step>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, target, steps, err := scope.resolve(cmd, app)
			if err != nil {
				return err
			}
			st, err := resolveStep(steps, args[0])
			if err != nil {
				return err
			}
			stepID, err := requireID("step", st.Text, st.ID)
			if err != nil {
				return err
			}
			if err := app.Steps.SetDone(ctxOf(cmd), state, target, stepID, done); err != nil {
				return err
			}
			mark := "[ ]"
			if done {
				mark = "[x]"
			}
			writeln(cmd, formatter.Success(mark+" "+st.Text))
			return nil
		},
	}
	scope.register(cmd)
	return cmd
}

func newStepRemoveCmd(app *App) *cobra.Command {
	var scope stepScope

	cmd := &cobra.Command{
		Use:     "rm <step>",
		Aliases: []string{"remove"},
		Short:   "Delete a step",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, target, steps, err := scope.resolve(cmd, app)
			if err != nil {
				return err
			}
			st, err := resolveStep(steps, args[0])
			if err != nil {
				return err
			}
			stepID, err := requireID("step", st.Text, st.ID)
			if err != nil {
				return err
			}
			text := st.Text
			if err := app.Steps.Remove(ctxOf(cmd), state, target, stepID); err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Removed step "+formatter.Bold(text)))
			return nil
		},
	}
	scope.register(cmd)
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation in the shell")
	return cmd
}

func newStepMoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a project step to another position (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			state, _, projectID, err := loadProject(cmd, app, projectRef)
			if err != nil {
				return err
			}
			if err := app.Steps.Move(ctxOf(cmd), state, projectID, from-1, to-1); err != nil {
				return err
			}
			writeln(cmd, formatter.Success(fmt.Sprintf("Moved step %d to %d", from, to)))
			return nil
		},
	}
	projectFlag(cmd, &projectRef)
	return cmd
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: use a number starting at 1", s)
	}
	return n, nil
}
