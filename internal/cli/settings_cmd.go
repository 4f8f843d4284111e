package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/notestudio/internal/cli/formatter"
	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
	}
	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
		newSettingsEditCmd(app),
		newSettingsWindowCmd(app),
	)
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatSettings(state.Settings))
			return nil
		},
	}
}

// settingSetters maps each settable key to a function applying a raw value.
var settingSetters = map[string]func(s *domain.Settings, v string) error{
	"theme": func(s *domain.Settings, v string) error {
		if v != domain.ThemeMidnight {
			return fmt.Errorf("unknown theme %q (available: %s)", v, domain.ThemeMidnight)
		}
		s.Theme = v
		return nil
	},
	"animations":      boolSetter(func(s *domain.Settings) *bool { return &s.Animations }),
	"statusesEnabled": boolSetter(func(s *domain.Settings) *bool { return &s.StatusesEnabled }),
	"alwaysOnTop":     boolSetter(func(s *domain.Settings) *bool { return &s.AlwaysOnTop }),
	"controlsLayout": func(s *domain.Settings, v string) error {
		s.ControlsLayout = v
		return nil
	},
	"language": func(s *domain.Settings, v string) error {
		s.Language = strings.ToLower(v)
		return nil
	},
	"projectStatuses": func(s *domain.Settings, v string) error {
		s.ProjectStatuses = splitStatuses(v)
		return nil
	},
	"windowMode": func(s *domain.Settings, v string) error {
		m, err := domain.ParseWindowMode(v)
		if err != nil {
			return err
		}
		s.WindowMode = m
		return nil
	},
}

func boolSetter(field func(s *domain.Settings) *bool) func(*domain.Settings, string) error {
	return func(s *domain.Settings, v string) error {
		b, err := parseOnOff(v)
		if err != nil {
			return err
		}
		*field(s) = b
		return nil
	}
}

func parseOnOff(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on/off, got %q", v)
	}
	return b, nil
}

func splitStatuses(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	return strings.Split(v, ",")
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Long:  "Change one preference. Keys: " + strings.Join(settingKeys(), ", ") + ".\nprojectStatuses takes a comma-separated list.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := settingSetters[args[0]]
			if !ok {
				return fmt.Errorf("unknown setting %q (keys: %s)", args[0], strings.Join(settingKeys(), ", "))
			}
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			next := state.Settings
			next.ProjectStatuses = append([]string(nil), state.Settings.ProjectStatuses...)
			if err := set(&next, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			return saveSettings(cmd, app, state, next)
		},
	}
}

func saveSettings(cmd *cobra.Command, app *App, state *domain.AppState, next domain.Settings) error {
	if err := app.Settings.Update(ctxOf(cmd), state, next); err != nil {
		return err
	}
	writeln(cmd, formatter.Success("Settings saved"))
	return nil
}

// settingsForm holds the editable values of a settings form.
type settingsForm struct {
	next     domain.Settings
	statuses string
	mode     string
}

func newSettingsForm(current domain.Settings) *settingsForm {
	return &settingsForm{
		next:     current,
		statuses: strings.Join(current.ProjectStatuses, ", "),
		mode:     current.WindowMode.String(),
	}
}

// build returns the huh form editing f's values.
func (f *settingsForm) build() *huh.Form {
	modes := make([]huh.Option[string], 0, len(domain.ValidWindowModes))
	for _, name := range domain.ValidWindowModes {
		modes = append(modes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Window mode").
				Options(modes...).
				Value(&f.mode),
			huh.NewConfirm().
				Title("Keep window on top").
				Value(&f.next.AlwaysOnTop),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("Русский", domain.LanguageRU),
					huh.NewOption("English", domain.LanguageEN),
					huh.NewOption("Українська", domain.LanguageUK),
				).
				Value(&f.next.Language),
			huh.NewSelect[string]().
				Title("Controls").
				Options(
					huh.NewOption("Top bar", domain.LayoutTopbar),
					huh.NewOption("Contextual", domain.LayoutContextual),
				).
				Value(&f.next.ControlsLayout),
			huh.NewConfirm().
				Title("Animations").
				Value(&f.next.Animations),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use project statuses").
				Value(&f.next.StatusesEnabled),
			huh.NewInput().
				Title("Statuses").
				Description("Comma-separated, in workflow order").
				Value(&f.statuses),
		),
	).WithTheme(formTheme())
}

// result returns the settings the form describes.
func (f *settingsForm) result() (domain.Settings, error) {
	next := f.next
	m, err := domain.ParseWindowMode(f.mode)
	if err != nil {
		return domain.Settings{}, err
	}
	next.WindowMode = m
	next.ProjectStatuses = splitStatuses(f.statuses)
	return next, nil
}

func newSettingsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit preferences in a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			f := newSettingsForm(state.Settings)
			if err := f.build().Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					writeln(cmd, formatter.Dim("Cancelled."))
					return nil
				}
				return err
			}
			next, err := f.result()
			if err != nil {
				return err
			}
			return saveSettings(cmd, app, state, next)
		},
	}
}

func newSettingsWindowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Re-apply the saved window mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, app)
			if err != nil {
				return err
			}
			s := state.Settings
			err = app.State.ApplyWindowSettings(ctxOf(cmd), s.WindowMode, s.AlwaysOnTop)
			if errors.Is(err, domain.ErrNotFound) {
				writeln(cmd, formatter.Dim("No window is open; "+s.WindowMode.String()+" applies when the shell starts."))
				return nil
			}
			if err != nil {
				return err
			}
			writeln(cmd, formatter.Success("Window set to "+s.WindowMode.String()))
			return nil
		},
	}
}
