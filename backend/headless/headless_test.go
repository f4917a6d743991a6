package headless_test

import (
	"context"
	"testing"

	"github.com/plus3/ooui/backend/headless"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendRecordsFrames(t *testing.T) {
	b := headless.New()
	m := widget.NewManager(b)
	_, err := m.SetRoot(widget.NewColumn(
		widget.NewBorder().WithSelector(theme.NewSelector("a")),
		widget.NewButton(),
	))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Run(ctx))
	assert.Len(t, b.Pending(), 2)

	require.NoError(t, m.Run(ctx))
	history := b.History()
	require.Len(t, history, 2)
	assert.Empty(t, history[0].Items)
	assert.Len(t, history[1].Items, 2)
	assert.Equal(t, "a", history[1].Items[0].Selector.Element)
	assert.Equal(t, uint64(2), b.Frames())
}

func TestQuitAfter(t *testing.T) {
	b := headless.New(headless.QuitAfter(2))
	ctx := context.Background()

	require.NoError(t, b.Render(ctx))
	require.NoError(t, b.Render(ctx))
	assert.ErrorIs(t, b.Render(ctx), widget.ErrQuit)
	assert.Equal(t, uint64(2), b.Frames())
}

func TestKeepFrames(t *testing.T) {
	ctx := context.Background()

	b := headless.New(headless.KeepFrames(3))
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Render(ctx))
	}
	history := b.History()
	require.Len(t, history, 3)
	assert.Equal(t, uint64(8), history[0].Number)

	none := headless.New(headless.KeepFrames(0))
	require.NoError(t, none.Render(ctx))
	assert.Empty(t, none.History())
}

func TestRenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := headless.New()
	assert.ErrorIs(t, b.Render(ctx), context.Canceled)
	assert.Zero(t, b.Frames())
}

func TestSetBounds(t *testing.T) {
	b := headless.New()
	b.SetBounds(widget.Rect{X: 10, Y: 20, Width: 640, Height: 480})
	assert.Equal(t, widget.Rect{X: 10, Y: 20, Width: 640, Height: 480}, b.Bounds())
}
