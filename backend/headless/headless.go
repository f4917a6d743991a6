// Package headless provides an in-memory render backend. It records every
// frame instead of drawing it, which makes it the backend of choice for tests
// and benchmarks.
package headless

import (
	"context"
	"slices"

	"github.com/plus3/ooui/widget"
)

// Frame is what one Render call presented: the items painted during the
// previous run.
type Frame struct {
	Number uint64
	Items  []widget.PaintItem
}

// Backend records frames, bounds and paint items.
type Backend struct {
	bounds    widget.Rect
	frames    uint64
	quitAfter uint64
	pending   []widget.PaintItem
	history   []Frame
	keep      int
}

// Option configures a Backend.
type Option func(*Backend)

// QuitAfter makes Render return widget.ErrQuit once n frames have been
// presented. Zero never quits.
func QuitAfter(n uint64) Option {
	return func(b *Backend) {
		b.quitAfter = n
	}
}

// KeepFrames bounds how many presented frames are kept. Negative keeps all.
func KeepFrames(n int) Option {
	return func(b *Backend) {
		b.keep = n
	}
}

// New returns a headless backend keeping the last 16 frames.
func New(opts ...Option) *Backend {
	b := &Backend{keep: 16}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render presents the items painted since the previous call.
func (b *Backend) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.quitAfter > 0 && b.frames >= b.quitAfter {
		return widget.ErrQuit
	}

	b.frames++
	if b.keep != 0 {
		b.history = append(b.history, Frame{Number: b.frames, Items: b.pending})
		if b.keep > 0 && len(b.history) > b.keep {
			b.history = slices.Delete(b.history, 0, len(b.history)-b.keep)
		}
	}
	b.pending = nil
	return nil
}

// SetBounds records the window bounds.
func (b *Backend) SetBounds(bounds widget.Rect) {
	b.bounds = bounds
}

// Paint queues item for the next frame.
func (b *Backend) Paint(item widget.PaintItem) {
	b.pending = append(b.pending, item)
}

// Bounds returns the last bounds set.
func (b *Backend) Bounds() widget.Rect {
	return b.bounds
}

// Frames returns how many frames have been presented.
func (b *Backend) Frames() uint64 {
	return b.frames
}

// History returns the retained frames, oldest first.
func (b *Backend) History() []Frame {
	return slices.Clone(b.history)
}

// Pending returns the items painted since the last Render.
func (b *Backend) Pending() []widget.PaintItem {
	return slices.Clone(b.pending)
}
