package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/notestudio/internal/cli"
	"github.com/alexanderramin/notestudio/internal/config"
	"github.com/alexanderramin/notestudio/internal/service"
	"github.com/alexanderramin/notestudio/internal/store"
	"github.com/alexanderramin/notestudio/internal/window"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stderr)

	// State directory: NOTESTUDIO_DATA_DIR or the platform app-data dir.
	var resolveDir store.DirResolver = store.DefaultDir
	if cfg.DataDir != "" {
		resolveDir = store.FixedDir(cfg.DataDir)
	}
	gateway := store.NewGateway(resolveDir, logger)

	// The shell registers itself as the primary window once it has a size.
	windows := window.NewRegistry()
	configurator := window.NewConfigurator(windows, cfg.Headless, logger)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	states := service.NewStateService(gateway, configurator, observers...)
	app := &cli.App{
		State:    states,
		Projects: service.NewProjectService(states, observers...),
		Notes:    service.NewNoteService(states, observers...),
		Steps:    service.NewStepService(states, observers...),
		Settings: service.NewSettingsService(states, observers...),
		Watcher:  gateway,
		Windows:  windows,
		AppID:    store.AppID,
	}
	if dir, err := resolveDir(); err == nil {
		app.HistoryPath = filepath.Join(dir, "shell_history")
	}

	// Detect interactive terminal for the shell-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
