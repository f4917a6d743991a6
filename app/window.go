package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// WindowBuilder collects the settings of a window before it is created.
type WindowBuilder struct {
	app     *Application
	cfg     WindowConfig
	root    widget.Widget
	backend BackendFactory
}

// NewWindow starts building a window of a.
func (a *Application) NewWindow() *WindowBuilder {
	return &WindowBuilder{
		app: a,
		cfg: WindowConfig{
			Title:  "ooui",
			Bounds: widget.Rect{Width: 800, Height: 600},
		},
	}
}

func (b *WindowBuilder) WithBounds(bounds widget.Rect) *WindowBuilder {
	b.cfg.Bounds = bounds
	return b
}

func (b *WindowBuilder) WithTitle(title string) *WindowBuilder {
	b.cfg.Title = title
	return b
}

// WithTheme overrides the application theme for this window.
func (b *WindowBuilder) WithTheme(th *theme.Theme) *WindowBuilder {
	b.cfg.Theme = th
	return b
}

func (b *WindowBuilder) WithRoot(root widget.Widget) *WindowBuilder {
	b.root = root
	return b
}

// WithBackend overrides the application backend factory for this window.
func (b *WindowBuilder) WithBackend(factory BackendFactory) *WindowBuilder {
	b.backend = factory
	return b
}

// Build creates the backend, applies the bounds, and attaches the root.
func (b *WindowBuilder) Build() (*Window, error) {
	cfg := b.cfg
	if cfg.Theme == nil {
		cfg.Theme = b.app.theme
	}
	factory := b.backend
	if factory == nil {
		factory = b.app.backend
	}

	backend, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("create backend for %q: %w", cfg.Title, err)
	}
	backend.SetBounds(cfg.Bounds)

	logger := b.app.logger.With("window", cfg.Title)
	w := &Window{
		cfg:     cfg,
		backend: backend,
		logger:  logger,
		manager: widget.NewManager(backend, widget.WithLogger(logger)),
	}
	if b.root != nil {
		if _, err := w.manager.SetRoot(b.root); err != nil {
			return nil, fmt.Errorf("window %q: %w", cfg.Title, err)
		}
	}

	b.app.windows = append(b.app.windows, w)
	logger.Debug("window built", "bounds", cfg.Bounds, "entities", w.manager.World().Len())
	return w, nil
}

// Window is one top-level surface with its own world and backend.
type Window struct {
	cfg     WindowConfig
	backend widget.Backend
	manager *widget.Manager
	logger  *slog.Logger
	closed  bool
}

// Run renders one frame. Once the backend reports widget.ErrQuit the window
// is closed and every later call returns widget.ErrQuit without rendering.
func (w *Window) Run(ctx context.Context) error {
	if w.closed {
		return widget.ErrQuit
	}
	err := w.manager.Run(ctx)
	if errors.Is(err, widget.ErrQuit) {
		w.closed = true
		w.logger.Info("window closed")
	}
	return err
}

// Close marks the window closed.
func (w *Window) Close() {
	w.closed = true
}

func (w *Window) Closed() bool             { return w.closed }
func (w *Window) Title() string            { return w.cfg.Title }
func (w *Window) Bounds() widget.Rect      { return w.cfg.Bounds }
func (w *Window) Theme() *theme.Theme      { return w.cfg.Theme }
func (w *Window) Backend() widget.Backend  { return w.backend }
func (w *Window) Manager() *widget.Manager { return w.manager }
