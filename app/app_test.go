package app_test

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/plus3/ooui/app"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/backend/headless"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headlessFactory returns a factory creating backends that quit after n frames
// and remembers what it built.
func headlessFactory(n uint64, built *[]*headless.Backend, configs *[]app.WindowConfig) app.BackendFactory {
	return func(cfg app.WindowConfig) (widget.Backend, error) {
		b := headless.New(headless.QuitAfter(n))
		if built != nil {
			*built = append(*built, b)
		}
		if configs != nil {
			*configs = append(*configs, cfg)
		}
		return b, nil
	}
}

func TestBuildAppliesSettings(t *testing.T) {
	var built []*headless.Backend
	var configs []app.WindowConfig
	a := app.New(app.WithBackend(headlessFactory(0, &built, &configs)))

	bounds := widget.Rect{X: 10, Y: 20, Width: 320, Height: 240}
	w, err := a.NewWindow().
		WithTitle("main").
		WithBounds(bounds).
		WithRoot(widget.NewButton()).
		Build()
	require.NoError(t, err)

	require.Len(t, built, 1)
	assert.Equal(t, bounds, built[0].Bounds())
	assert.Equal(t, "main", configs[0].Title)
	assert.Same(t, a.Theme(), configs[0].Theme)
	assert.Same(t, a.Theme(), w.Theme())
	assert.Equal(t, 2, w.Manager().World().Len())
	assert.Equal(t, []*app.Window{w}, a.Windows())
}

func TestWindowThemeOverride(t *testing.T) {
	custom := theme.New(color.RGBA{A: 255})
	a := app.New()

	w, err := a.NewWindow().WithTheme(custom).Build()
	require.NoError(t, err)
	assert.Same(t, custom, w.Theme())
	assert.NotSame(t, custom, a.Theme())
}

func TestWindowBackendOverride(t *testing.T) {
	var appBuilt, windowBuilt []*headless.Backend
	a := app.New(app.WithBackend(headlessFactory(0, &appBuilt, nil)))

	_, err := a.NewWindow().WithBackend(headlessFactory(0, &windowBuilt, nil)).Build()
	require.NoError(t, err)
	assert.Empty(t, appBuilt)
	assert.Len(t, windowBuilt, 1)
}

func TestBuildErrors(t *testing.T) {
	boom := errors.New("no display")
	a := app.New(app.WithBackend(func(app.WindowConfig) (widget.Backend, error) { return nil, boom }))

	_, err := a.NewWindow().Build()
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, a.Windows())

	_, err = app.New().NewWindow().WithRoot(selfNested{}).Build()
	assert.ErrorIs(t, err, widget.ErrMalformedTemplate)
}

func TestWindowRunClosesOnQuit(t *testing.T) {
	var built []*headless.Backend
	a := app.New(app.WithBackend(headlessFactory(2, &built, nil)))
	w, err := a.NewWindow().WithRoot(widget.NewBorder()).Build()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Run(ctx))
	require.NoError(t, w.Run(ctx))
	assert.ErrorIs(t, w.Run(ctx), widget.ErrQuit)
	assert.True(t, w.Closed())

	assert.ErrorIs(t, w.Run(ctx), widget.ErrQuit)
	assert.Equal(t, uint64(2), built[0].Frames())
}

func TestTickSkipsClosedWindows(t *testing.T) {
	var built []*headless.Backend
	a := app.New(app.WithBackend(headlessFactory(1, &built, nil)))
	_, err := a.NewWindow().WithTitle("short").Build()
	require.NoError(t, err)
	long, err := a.NewWindow().WithTitle("long").WithBackend(headlessFactory(3, &built, nil)).Build()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, 2, a.Open())

	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, 1, a.Open())
	assert.False(t, long.Closed())

	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, uint64(1), built[0].Frames())
	assert.Equal(t, uint64(3), built[1].Frames())
}

func TestRunUntilAllWindowsClose(t *testing.T) {
	var built []*headless.Backend
	a := app.New(
		app.WithBackend(headlessFactory(3, &built, nil)),
		app.WithTickInterval(time.Millisecond),
	)
	_, err := a.NewWindow().WithRoot(widget.NewButton()).Build()
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	assert.Zero(t, a.Open())
	assert.Equal(t, uint64(3), built[0].Frames())
}

func TestRunStopsOnContext(t *testing.T) {
	a := app.New(app.WithTickInterval(time.Millisecond))
	_, err := a.NewWindow().Build()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, a.Run(ctx), context.DeadlineExceeded)
}

type failing struct{ headless.Backend }

var errDevice = errors.New("device lost")

func (f *failing) Render(context.Context) error { return errDevice }

func TestTickReportsBackendErrors(t *testing.T) {
	a := app.New(app.WithBackend(func(app.WindowConfig) (widget.Backend, error) { return &failing{}, nil }))
	w, err := a.NewWindow().WithTitle("broken").Build()
	require.NoError(t, err)

	err = a.Tick(context.Background())
	assert.ErrorIs(t, err, errDevice)
	assert.Contains(t, err.Error(), `window "broken"`)
	assert.False(t, w.Closed())
}

type selfNested struct{}

func (s selfNested) Template() widget.Template {
	return widget.SingleChild(s)
}

func (selfNested) Components() []ecs.ComponentBox { return nil }

func TestRunMaxTicks(t *testing.T) {
	var built []*headless.Backend
	a := app.New(
		app.WithBackend(headlessFactory(0, &built, nil)),
		app.WithTickInterval(time.Millisecond),
		app.WithMaxTicks(4),
	)
	w, err := a.NewWindow().Build()
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	assert.False(t, w.Closed())
	assert.Equal(t, uint64(4), built[0].Frames())
}
