// Package window applies display-mode preferences to the primary window.
//
// The host window system is reached only through the Surface capability,
// so the mode-to-operations mapping can run against any window
// implementation, including fakes in tests.
package window

import (
	"fmt"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// Surface is the set of primitive operations the host window exposes.
// Every operation must be idempotent.
type Surface interface {
	SetFullscreen(on bool) error
	SetDecorations(on bool) error
	Maximize() error
	Unmaximize() error
	Center() error
	SetAlwaysOnTop(on bool) error
}

// Locator finds the primary application window.
type Locator interface {
	PrimaryWindow() (Surface, error)
}

// Registry is a Locator the presentation layer fills in once its window
// exists. It is owned by the UI thread and is not safe for concurrent use.
type Registry struct {
	primary Surface
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach makes s the primary window.
func (r *Registry) Attach(s Surface) {
	r.primary = s
}

// Detach forgets the primary window.
func (r *Registry) Detach() {
	r.primary = nil
}

func (r *Registry) PrimaryWindow() (Surface, error) {
	if r == nil || r.primary == nil {
		return nil, domain.NewError(domain.ErrNotFound, "locate window", fmt.Errorf("primary window not found"))
	}
	return r.primary, nil
}
