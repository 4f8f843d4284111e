package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type settingsService struct {
	states   StateService
	observer UseCaseObserver
}

func NewSettingsService(states StateService, observers ...UseCaseObserver) SettingsService {
	return &settingsService{states: states, observer: combineObservers(observers)}
}

// Update validates and saves next, then re-applies window settings when they
// changed. A missing window is not an error here: the preference is saved
// and takes effect the next time a window exists.
func (s *settingsService) Update(ctx context.Context, state *domain.AppState, next domain.Settings) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"window_mode": next.WindowMode.String(), "language": next.Language}
	defer func() { observe(ctx, s.observer, "update-settings", startedAt, fields, &err) }()

	next.ProjectStatuses = domain.NormalizeStatuses(next.ProjectStatuses)
	if err := next.Validate(); err != nil {
		return err
	}

	prev := state.Settings
	state.Settings = next
	if err := s.states.SaveState(ctx, state); err != nil {
		return err
	}

	if prev.WindowMode == next.WindowMode && prev.AlwaysOnTop == next.AlwaysOnTop {
		return nil
	}
	err = s.states.ApplyWindowSettings(ctx, next.WindowMode, next.AlwaysOnTop)
	if errors.Is(err, domain.ErrNotFound) {
		fields["window"] = "absent"
		return nil
	}
	return err
}
