// Package app ties windows, themes and backends together and drives the
// per-tick loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plus3/ooui/backend/headless"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// DefaultTickInterval is roughly one frame at 60Hz.
const DefaultTickInterval = 16 * time.Millisecond

// WindowConfig is handed to a BackendFactory when a window is built.
type WindowConfig struct {
	Title  string
	Bounds widget.Rect
	Theme  *theme.Theme
}

// BackendFactory creates the backend of one window.
type BackendFactory func(cfg WindowConfig) (widget.Backend, error)

// Headless is the default backend factory.
func Headless(WindowConfig) (widget.Backend, error) {
	return headless.New(), nil
}

// Application owns every window and the loop that ticks them.
type Application struct {
	theme    *theme.Theme
	logger   *slog.Logger
	tick     time.Duration
	maxTicks int
	backend  BackendFactory
	windows  []*Window
}

// Option configures an Application.
type Option func(*Application)

// WithTheme sets the theme windows use unless they set their own.
func WithTheme(th *theme.Theme) Option {
	return func(a *Application) {
		a.theme = th
	}
}

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		a.logger = logger
	}
}

// WithTickInterval sets the delay between ticks in Run.
func WithTickInterval(d time.Duration) Option {
	return func(a *Application) {
		if d > 0 {
			a.tick = d
		}
	}
}

// WithMaxTicks makes Run return after n ticks. Zero means no limit.
func WithMaxTicks(n int) Option {
	return func(a *Application) {
		a.maxTicks = n
	}
}

// WithBackend sets the backend factory windows use unless they set their own.
func WithBackend(factory BackendFactory) Option {
	return func(a *Application) {
		a.backend = factory
	}
}

// New creates an application. Without options it uses theme.Default and the
// headless backend.
func New(opts ...Option) *Application {
	a := &Application{
		logger:  slog.Default(),
		tick:    DefaultTickInterval,
		backend: Headless,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	return a
}

// Theme returns the application theme.
func (a *Application) Theme() *theme.Theme {
	return a.theme
}

// Windows returns every window built so far, closed ones included.
func (a *Application) Windows() []*Window {
	return a.windows
}

// Open returns how many windows have not been closed.
func (a *Application) Open() int {
	n := 0
	for _, w := range a.windows {
		if !w.Closed() {
			n++
		}
	}
	return n
}

// Tick runs every open window once. Windows whose backend asks to quit are
// closed; any other error stops the tick.
func (a *Application) Tick(ctx context.Context) error {
	for _, w := range a.windows {
		if w.Closed() {
			continue
		}
		if err := w.Run(ctx); err != nil {
			if errors.Is(err, widget.ErrQuit) {
				continue
			}
			return fmt.Errorf("window %q: %w", w.Title(), err)
		}
	}
	return nil
}

// Run ticks until every window is closed, the tick limit is reached or ctx
// is done.
func (a *Application) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	a.logger.Info("application started", "windows", len(a.windows), "tick", a.tick)
	for ticks := 1; ; ticks++ {
		if err := a.Tick(ctx); err != nil {
			return err
		}
		if a.Open() == 0 {
			a.logger.Info("all windows closed")
			return nil
		}
		if a.maxTicks > 0 && ticks >= a.maxTicks {
			a.logger.Info("tick limit reached", "ticks", ticks)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
