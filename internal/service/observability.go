package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	// Kind is the domain error kind of Err, or nil.
	Kind   error
	Fields map[string]any
}

// Success reports whether the call returned no error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives an event after every service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops every event.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs each call. A missing window is routine for a
// terminal session and logs at warn; other failures log at error.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Duration("took", event.Duration),
	}
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		level = slog.LevelError
		if event.Kind != nil {
			attrs = append(attrs, slog.String("kind", event.Kind.Error()))
		}
		if errors.Is(event.Kind, domain.ErrNotFound) {
			level = slog.LevelWarn
		}
	}
	o.logger.LogAttrs(ctx, level, "use case finished", attrs...)
}

type fanoutObserver []UseCaseObserver

func (f fanoutObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// combineObservers drops nil entries. No observers yields a noop.
func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live fanoutObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

// observe reports a finished use case. Defer it with a pointer to the named
// error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	event := UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Fields:    fields,
	}
	if err != nil && *err != nil {
		event.Err = *err
		event.Kind = domain.KindOf(*err)
	}
	obs.ObserveUseCase(ctx, event)
}
