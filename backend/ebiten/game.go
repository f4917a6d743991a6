package ebiten

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooui/app"
	"github.com/plus3/ooui/widget"
)

// Overlay is drawn on top of the window after every frame. The debug
// inspector's ImGui backend satisfies it.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Game drives one app.Window from Ebiten's loop. The window's systems run
// inside Draw so the backend can paint onto the screen.
type Game struct {
	ctx     context.Context
	window  *app.Window
	backend *Backend
	overlay Overlay
	err     error
}

// NewGame returns a game for window, whose backend must be backend.
// overlay may be nil.
func NewGame(ctx context.Context, window *app.Window, backend *Backend, overlay Overlay) *Game {
	return &Game{
		ctx:     ctx,
		window:  window,
		backend: backend,
		overlay: overlay,
	}
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		g.backend.Close()
	}
	if g.window.Closed() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	g.backend.SetScreen(screen)
	err := g.window.Run(g.ctx)
	g.backend.SetScreen(nil)
	if err != nil && !errors.Is(err, widget.ErrQuit) {
		g.err = err
	}

	if g.overlay != nil {
		g.overlay.EndFrame()
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the Ebiten window and blocks until it is closed, ctx is done or
// a system fails.
func Run(ctx context.Context, window *app.Window, overlay Overlay) error {
	backend, ok := window.Backend().(*Backend)
	if !ok {
		return errors.New("ebiten: window was not built with the ebiten backend")
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(ctx, window, backend, overlay))
}

// Factory returns an app.BackendFactory creating ebiten backends.
func Factory() app.BackendFactory {
	return func(cfg app.WindowConfig) (widget.Backend, error) {
		return New(cfg.Title, cfg.Theme), nil
	}
}
