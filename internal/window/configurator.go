package window

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// OpKind names one primitive window operation.
type OpKind int

const (
	OpSetFullscreen OpKind = iota + 1
	OpSetDecorations
	OpMaximize
	OpUnmaximize
	OpCenter
	OpSetAlwaysOnTop
)

// Op is a primitive operation with its boolean argument, if any.
type Op struct {
	Kind OpKind
	On   bool
}

func (o Op) String() string {
	switch o.Kind {
	case OpSetFullscreen:
		return fmt.Sprintf("set_fullscreen(%t)", o.On)
	case OpSetDecorations:
		return fmt.Sprintf("set_decorations(%t)", o.On)
	case OpMaximize:
		return "maximize"
	case OpUnmaximize:
		return "unmaximize"
	case OpCenter:
		return "center"
	case OpSetAlwaysOnTop:
		return fmt.Sprintf("set_always_on_top(%t)", o.On)
	default:
		return fmt.Sprintf("op(%d)", int(o.Kind))
	}
}

func (o Op) apply(s Surface) error {
	switch o.Kind {
	case OpSetFullscreen:
		return s.SetFullscreen(o.On)
	case OpSetDecorations:
		return s.SetDecorations(o.On)
	case OpMaximize:
		return s.Maximize()
	case OpUnmaximize:
		return s.Unmaximize()
	case OpCenter:
		return s.Center()
	case OpSetAlwaysOnTop:
		return s.SetAlwaysOnTop(o.On)
	default:
		return fmt.Errorf("unknown window operation %d", int(o.Kind))
	}
}

// Plan returns the operation sequence that puts the window in mode.
// Always-on-top is not part of the plan; Apply adds it last.
func Plan(mode domain.WindowMode) ([]Op, error) {
	switch mode {
	case domain.WindowFullscreenFramed:
		return []Op{
			{Kind: OpSetFullscreen, On: false},
			{Kind: OpSetDecorations, On: true},
			{Kind: OpMaximize},
		}, nil
	case domain.WindowWindowed:
		return []Op{
			{Kind: OpSetFullscreen, On: false},
			{Kind: OpSetDecorations, On: true},
			{Kind: OpUnmaximize},
			{Kind: OpCenter},
		}, nil
	case domain.WindowFullscreenBorderless:
		return []Op{
			{Kind: OpSetDecorations, On: false},
			{Kind: OpSetFullscreen, On: true},
		}, nil
	case domain.WindowBorderless:
		return []Op{
			{Kind: OpSetFullscreen, On: false},
			{Kind: OpSetDecorations, On: false},
			{Kind: OpMaximize},
		}, nil
	default:
		return nil, fmt.Errorf("unknown window mode %d", int(mode))
	}
}

// Configurator applies window settings to the primary window.
type Configurator struct {
	locator  Locator
	headless bool
	logger   *slog.Logger
}

// NewConfigurator creates a Configurator. With headless set, or on a
// mobile GOOS, Apply does nothing and succeeds.
func NewConfigurator(locator Locator, headless bool, logger *slog.Logger) *Configurator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Configurator{
		locator:  locator,
		headless: headless || noWindowSurface(runtime.GOOS),
		logger:   logger,
	}
}

func noWindowSurface(goos string) bool {
	return goos == "android" || goos == "ios"
}

// Apply puts the primary window in mode and then sets always-on-top.
// The first failing operation aborts the call; operations that already ran
// are not rolled back.
func (c *Configurator) Apply(mode domain.WindowMode, alwaysOnTop bool) error {
	if c.headless {
		c.logger.Debug("window settings skipped, no window surface", "mode", mode.String())
		return nil
	}

	plan, err := Plan(mode)
	if err != nil {
		return err
	}
	if c.locator == nil {
		return domain.NewError(domain.ErrNotFound, "locate window", fmt.Errorf("no window locator"))
	}
	surface, err := c.locator.PrimaryWindow()
	if err != nil {
		if domain.KindOf(err) == nil {
			err = domain.NewError(domain.ErrNotFound, "locate window", err)
		}
		return err
	}

	plan = append(plan, Op{Kind: OpSetAlwaysOnTop, On: alwaysOnTop})
	for _, op := range plan {
		if err := op.apply(surface); err != nil {
			return domain.NewError(domain.ErrIO, op.String(), err)
		}
	}
	c.logger.Debug("window settings applied", "mode", mode.String(), "always_on_top", alwaysOnTop)
	return nil
}
