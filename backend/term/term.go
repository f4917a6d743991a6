// Package term renders widget frames as styled boxes on a terminal.
package term

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// Backend writes one block of text per frame. Items painted during a run are
// printed by the following Render call.
type Backend struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	theme    *theme.Theme
	title    string
	bounds   widget.Rect
	columns  uint32
	pending  []widget.PaintItem
	frames   uint64
}

// Option configures a Backend.
type Option func(*Backend)

// WithTitle sets the heading printed above every frame.
func WithTitle(title string) Option {
	return func(b *Backend) {
		b.title = title
	}
}

// WithPixelsPerColumn sets how many horizontal pixels one terminal column represents.
func WithPixelsPerColumn(n uint32) Option {
	return func(b *Backend) {
		if n > 0 {
			b.columns = n
		}
	}
}

// New returns a terminal backend writing to out, styled with th.
func New(out io.Writer, th *theme.Theme, opts ...Option) *Backend {
	if th == nil {
		th = theme.Default()
	}
	b := &Backend{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		theme:    th,
		columns:  10,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render prints the previously painted items.
func (b *Backend) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frame := b.frame()
	b.pending = b.pending[:0]
	b.frames++

	if _, err := io.WriteString(b.out, frame+"\n"); err != nil {
		return fmt.Errorf("term: write frame: %w", err)
	}
	return nil
}

func (b *Backend) frame() string {
	window := theme.NewSelector("window")
	header := b.style(b.renderer.NewStyle().Bold(true), "color", window).
		Render(strings.TrimSpace(fmt.Sprintf("%s %s", b.title, b.bounds)))

	blocks := make([]string, 0, len(b.pending)+1)
	blocks = append(blocks, header)
	for _, item := range b.pending {
		blocks = append(blocks, b.box(item))
	}
	return b.style(b.renderer.NewStyle(), "background", window).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (b *Backend) box(item widget.PaintItem) string {
	sel := theme.Selector{}
	label := item.Text
	if item.Selector != nil {
		sel = *item.Selector
		if label == "" {
			label = sel.String()
		}
	}

	style := b.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(int(max(item.Bounds.Width/b.columns, 1)))
	style = b.style(style, "color", sel)
	style = b.style(style, "background", sel)
	if c, ok := b.theme.Lookup("border-color", sel); ok && c.A > 0 {
		style = style.BorderForeground(colour(c))
	}
	return style.Render(label)
}

// style applies a theme colour property to s. Transparent colours leave s untouched.
func (b *Backend) style(s lipgloss.Style, property string, sel theme.Selector) lipgloss.Style {
	c, ok := b.theme.Lookup(property, sel)
	if !ok || c.A == 0 {
		return s
	}
	switch property {
	case "background":
		return s.Background(colour(c))
	default:
		return s.Foreground(colour(c))
	}
}

func colour(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(theme.Hex(c))
}

// SetBounds records the window bounds shown in the frame heading.
func (b *Backend) SetBounds(bounds widget.Rect) {
	b.bounds = bounds
}

// Paint queues item for the next frame.
func (b *Backend) Paint(item widget.PaintItem) {
	b.pending = append(b.pending, item)
}

// Frames returns how many frames have been written.
func (b *Backend) Frames() uint64 {
	return b.frames
}
