// Package store persists the application state to a single JSON file.
package store

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// Gateway reads and writes the state file. Each Save overwrites the whole
// file; writes are not atomic.
type Gateway struct {
	resolveDir DirResolver
	logger     *slog.Logger
}

// NewGateway creates a Gateway. A nil resolver means the platform default
// directory; a nil logger discards output.
func NewGateway(dir DirResolver, logger *slog.Logger) *Gateway {
	if dir == nil {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{resolveDir: dir, logger: logger}
}

// ResolveStatePath returns the state file path, creating its directory
// (and parents) when missing.
func (g *Gateway) ResolveStatePath() (string, error) {
	dir, err := g.resolveDir()
	if err != nil {
		return "", domain.NewError(domain.ErrIO, "resolve state dir", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewError(domain.ErrIO, "create state dir", err)
	}
	return filepath.Join(dir, StateFileName), nil
}

// Load returns the persisted state. A missing file yields the all-defaults
// state; an unreadable file is an IO error; an undecodable one is a
// Deserialize error.
func (g *Gateway) Load() (*domain.AppState, error) {
	path, err := g.ResolveStatePath()
	if err != nil {
		return nil, err
	}
	return g.loadFrom(path)
}

func (g *Gateway) loadFrom(path string) (*domain.AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		g.logger.Debug("state file absent, using defaults", "path", path)
		return domain.NewAppState(), nil
	}
	if err != nil {
		return nil, domain.NewError(domain.ErrIO, "read state", err)
	}

	state, err := domain.Decode(data)
	if err != nil {
		return nil, domain.NewError(domain.ErrDeserialize, "decode state", err)
	}
	g.logger.Debug("state loaded", "path", path, "projects", len(state.Projects))
	return state, nil
}

// Save encodes state and overwrites the state file with it.
func (g *Gateway) Save(state *domain.AppState) error {
	path, err := g.ResolveStatePath()
	if err != nil {
		return err
	}

	data, err := domain.Encode(state)
	if err != nil {
		return domain.NewError(domain.ErrSerialize, "encode state", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewError(domain.ErrIO, "write state", err)
	}
	g.logger.Debug("state saved", "path", path, "bytes", len(data))
	return nil
}
