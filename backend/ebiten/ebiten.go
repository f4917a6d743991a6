// Package ebiten renders widget frames into an Ebiten window.
package ebiten

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"golang.org/x/image/font/basicfont"
)

// Backend draws onto the screen image handed over by Game.Draw. Outside of a
// draw call it only tracks state.
type Backend struct {
	theme  *theme.Theme
	screen *ebiten.Image
	face   text.Face
	bounds widget.Rect
	closed bool
	frames uint64
	items  uint64
}

// New returns a backend styled with th and sets the window title.
func New(title string, th *theme.Theme) *Backend {
	if th == nil {
		th = theme.Default()
	}
	ebiten.SetWindowTitle(title)
	return &Backend{
		theme: th,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// SetScreen sets the image the next frame is drawn onto. Nil detaches it.
func (b *Backend) SetScreen(screen *ebiten.Image) {
	b.screen = screen
}

// Close makes the next Render report widget.ErrQuit.
func (b *Backend) Close() {
	b.closed = true
}

// Render clears the screen to the window background.
func (b *Backend) Render(ctx context.Context) error {
	if b.closed {
		return widget.ErrQuit
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.screen != nil {
		b.screen.Fill(b.theme.Color("background", theme.NewSelector("window")))
	}
	b.frames++
	return nil
}

// SetBounds positions and sizes the window.
func (b *Backend) SetBounds(bounds widget.Rect) {
	b.bounds = bounds
	ebiten.SetWindowPosition(int(bounds.X), int(bounds.Y))
	if !bounds.Empty() {
		ebiten.SetWindowSize(int(bounds.Width), int(bounds.Height))
	}
}

// Paint draws one item: a filled box, its border and its text.
func (b *Backend) Paint(item widget.PaintItem) {
	b.items++
	if b.screen == nil {
		return
	}

	sel := theme.Selector{}
	if item.Selector != nil {
		sel = *item.Selector
	}
	x, y := float32(item.Bounds.X), float32(item.Bounds.Y)
	w, h := float32(item.Bounds.Width), float32(item.Bounds.Height)

	if c := b.theme.Color("background", sel); c.A > 0 {
		vector.DrawFilledRect(b.screen, x, y, w, h, c, false)
	}
	if c := b.theme.Color("border-color", sel); c.A > 0 {
		vector.StrokeRect(b.screen, x, y, w, h, 1, c, false)
	}
	if item.Text != "" {
		b.drawText(item.Text, x+6, y+(h-13)/2, b.theme.Color("color", sel))
	}
}

func (b *Backend) drawText(s string, x, y float32, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(b.screen, s, b.face, op)
}

// Bounds returns the last bounds set.
func (b *Backend) Bounds() widget.Rect {
	return b.bounds
}

// Frames returns how many frames have been rendered.
func (b *Backend) Frames() uint64 {
	return b.frames
}

// Items returns how many paint items have been received.
func (b *Backend) Items() uint64 {
	return b.items
}
