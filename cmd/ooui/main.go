package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/plus3/ooui/app"
	ebitenui "github.com/plus3/ooui/backend/ebiten"
	"github.com/plus3/ooui/backend/term"
	"github.com/plus3/ooui/debugui"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ooui:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	th, err := loadTheme(cfg.Theme.Path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := app.New(
		app.WithTheme(th),
		app.WithLogger(logger),
		app.WithTickInterval(cfg.Tick),
		app.WithMaxTicks(cfg.Frames),
		app.WithBackend(backendFactory(cfg.Backend, os.Stdout)),
	)

	window, err := a.NewWindow().
		WithTitle(cfg.Window.Title).
		WithBounds(widget.Rect{X: cfg.Window.X, Y: cfg.Window.Y, Width: cfg.Window.Width, Height: cfg.Window.Height}).
		WithRoot(demo()).
		Build()
	if err != nil {
		return err
	}

	if cfg.Backend == "ebiten" {
		var overlay ebitenui.Overlay
		if cfg.Debug.Inspector {
			overlay = debugui.NewOverlay(cfg.Window.Title, int(cfg.Window.Width), int(cfg.Window.Height))
			debugui.Attach(window.Manager(), debugui.WithDrawing())
		}
		return ebitenui.Run(ctx, window, overlay)
	}

	if cfg.Debug.Inspector {
		logger.Warn("inspector needs the ebiten backend", "backend", cfg.Backend)
	}
	err = a.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return theme.Default(), nil
	}
	th, err := theme.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	return th, nil
}

func backendFactory(name string, out io.Writer) app.BackendFactory {
	switch name {
	case "ebiten":
		return ebitenui.Factory()
	case "term":
		return func(cfg app.WindowConfig) (widget.Backend, error) {
			return term.New(out, cfg.Theme, term.WithTitle(cfg.Title)), nil
		}
	}
	return app.Headless
}

// demo lays out a small form by hand.
func demo() widget.Widget {
	row := func(i int32) widget.Rect {
		return widget.Rect{X: 20, Y: 20 + i*60, Width: 280, Height: 50}
	}
	return widget.NewColumn(
		widget.NewBorder().
			WithSelector(theme.NewSelector("header")).
			WithText("ooui demo").
			WithBounds(row(0)),
		widget.NewLabel(theme.NewSelector("label")).WithText("Labels carry text but are not drawn"),
		widget.NewBorder().
			WithSelector(theme.NewSelector("button").WithClass("primary")).
			WithText("OK").
			WithBounds(row(1)),
		widget.NewBorder().
			WithSelector(theme.NewSelector("button").WithID("cancel")).
			WithText("Cancel").
			WithBounds(row(2)),
		widget.NewButton(),
	)
}
