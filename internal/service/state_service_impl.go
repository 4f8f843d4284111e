package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type stateService struct {
	store    StateStore
	window   WindowApplier
	observer UseCaseObserver
}

// NewStateService wires the persistence gateway and window configurator
// behind the presentation-facing command surface. window may be nil when
// no window surface exists.
func NewStateService(store StateStore, window WindowApplier, observers ...UseCaseObserver) StateService {
	return &stateService{
		store:    store,
		window:   window,
		observer: combineObservers(observers),
	}
}

func (s *stateService) LoadState(ctx context.Context) (state *domain.AppState, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "load-state", startedAt, fields, &err) }()

	state, err = s.store.Load()
	if err != nil {
		return nil, err
	}
	fields["projects"] = len(state.Projects)
	return state, nil
}

func (s *stateService) SaveState(ctx context.Context, state *domain.AppState) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "save-state", startedAt, fields, &err) }()

	if state == nil {
		return fmt.Errorf("save state: nil state")
	}
	fields["projects"] = len(state.Projects)
	return s.store.Save(state)
}

func (s *stateService) ApplyWindowSettings(ctx context.Context, mode domain.WindowMode, alwaysOnTop bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"mode": mode.String(), "always_on_top": alwaysOnTop}
	defer func() { observe(ctx, s.observer, "apply-window-settings", startedAt, fields, &err) }()

	if s.window == nil {
		return domain.NewError(domain.ErrNotFound, "locate window", fmt.Errorf("no window configurator"))
	}
	return s.window.Apply(mode, alwaysOnTop)
}
