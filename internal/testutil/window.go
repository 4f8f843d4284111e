package testutil

import (
	"github.com/alexanderramin/notestudio/internal/window"
)

// WindowConfig is the visible configuration of a FakeSurface.
type WindowConfig struct {
	Fullscreen  bool
	Decorated   bool
	Maximized   bool
	Centered    bool
	AlwaysOnTop bool
}

// FakeSurface is a window.Surface that records every call and tracks the
// resulting configuration. Set FailOn to make one operation kind fail.
type FakeSurface struct {
	Config WindowConfig
	Calls  []window.Op
	FailOn map[window.OpKind]error
}

// NewFakeSurface returns a decorated, unmaximized window.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{Config: WindowConfig{Decorated: true}}
}

func (f *FakeSurface) record(op window.Op) error {
	f.Calls = append(f.Calls, op)
	if err, ok := f.FailOn[op.Kind]; ok {
		return err
	}
	return nil
}

func (f *FakeSurface) SetFullscreen(on bool) error {
	if err := f.record(window.Op{Kind: window.OpSetFullscreen, On: on}); err != nil {
		return err
	}
	f.Config.Fullscreen = on
	return nil
}

func (f *FakeSurface) SetDecorations(on bool) error {
	if err := f.record(window.Op{Kind: window.OpSetDecorations, On: on}); err != nil {
		return err
	}
	f.Config.Decorated = on
	return nil
}

func (f *FakeSurface) Maximize() error {
	if err := f.record(window.Op{Kind: window.OpMaximize}); err != nil {
		return err
	}
	f.Config.Maximized = true
	f.Config.Centered = false
	return nil
}

func (f *FakeSurface) Unmaximize() error {
	if err := f.record(window.Op{Kind: window.OpUnmaximize}); err != nil {
		return err
	}
	f.Config.Maximized = false
	return nil
}

func (f *FakeSurface) Center() error {
	if err := f.record(window.Op{Kind: window.OpCenter}); err != nil {
		return err
	}
	f.Config.Centered = true
	return nil
}

func (f *FakeSurface) SetAlwaysOnTop(on bool) error {
	if err := f.record(window.Op{Kind: window.OpSetAlwaysOnTop, On: on}); err != nil {
		return err
	}
	f.Config.AlwaysOnTop = on
	return nil
}
