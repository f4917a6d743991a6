package debugui_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plus3/ooui/debugui"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopBackend struct{}

func (nopBackend) Render(context.Context) error { return nil }
func (nopBackend) SetBounds(widget.Rect)        {}

func setup(t *testing.T) (*widget.Manager, *debugui.Inspector, []ecs.EntityId) {
	t.Helper()
	m := widget.NewManager(nopBackend{})
	clock := time.Unix(0, 0)
	inspector := debugui.Attach(m, debugui.WithClock(func() time.Time {
		clock = clock.Add(20 * time.Millisecond)
		return clock
	}))

	ids, err := m.SetRoot(widget.NewColumn(
		widget.NewLabel(theme.NewSelector("label").WithID("title")).WithText("Title"),
		widget.NewButton(),
	))
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	return m, inspector, ids
}

func TestInspectorRunsAfterRender(t *testing.T) {
	m, _, _ := setup(t)

	stats := m.Scheduler().Stats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "render", stats.Systems[0].Name)
	assert.Equal(t, "inspector", stats.Systems[1].Name)
	assert.Equal(t, 4, stats.Systems[1].EntityCount, "no filter sees every entity")
}

func TestEntityBrowserRows(t *testing.T) {
	_, inspector, ids := setup(t)

	rows := inspector.Browser.Rows()
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, ids[i], row.ID, "creation order by default")
	}
	assert.Equal(t, "label#title", rows[0].Selector)
	assert.Equal(t, "none", rows[1].Selector)
	assert.Equal(t, "button", rows[2].Selector)
	assert.Equal(t, "column", rows[3].Selector)
	assert.Equal(t, "(0,0 200x50)", rows[0].Bounds)

	inspector.Browser.SortBy(debugui.ColumnSelector, true)
	rows = inspector.Browser.Rows()
	assert.Equal(t, []string{"button", "column", "label#title", "none"},
		[]string{rows[0].Selector, rows[1].Selector, rows[2].Selector, rows[3].Selector})

	inspector.Browser.SortBy(debugui.ColumnSeq, false)
	assert.Equal(t, ids[3], inspector.Browser.Rows()[0].ID)
}

func TestEntityBrowserFilter(t *testing.T) {
	_, inspector, ids := setup(t)

	inspector.Browser.SetFilter("BUTTON")
	rows := inspector.Browser.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, ids[2], rows[0].ID)

	inspector.Browser.SetFilter("widget.Text")
	require.Len(t, inspector.Browser.Rows(), 1)

	inspector.Browser.SetFilter("")
	assert.Len(t, inspector.Browser.Rows(), 4)
}

func TestComponentInspector(t *testing.T) {
	m, inspector, ids := setup(t)
	world := m.World()

	rows := inspector.Components.Rows(world, ids[0])
	values := map[string]string{}
	for _, row := range rows {
		values[row.Component+"."+row.Field] = row.Value
	}
	assert.Equal(t, "label", values["theme.Selector.Element"])
	assert.Equal(t, "title", values["theme.Selector.ID"])
	assert.Equal(t, "Title", values["widget.Text.Value"])
	assert.Equal(t, "200", values["widget.Rect.Width"])

	rectType := reflect.TypeFor[widget.Rect]()
	require.NoError(t, inspector.Components.Set(world, ids[0], rectType, "Width", "320"))
	assert.Equal(t, uint32(320), ecs.ReadComponent[widget.Rect](world, ids[0]).Width)

	assert.Error(t, inspector.Components.Set(world, ids[0], rectType, "Width", "-1"))
	assert.Error(t, inspector.Components.Set(world, ids[0], rectType, "Depth", "1"))
	assert.ErrorIs(t, inspector.Components.Set(world, ids[0], reflect.TypeFor[widget.Drawable](), "", "x"), ecs.ErrComponentNotFound)
	assert.Nil(t, inspector.Components.Rows(world, ecs.NewEntityId(99, 0)))
}

func TestStatsPanel(t *testing.T) {
	m, inspector, _ := setup(t)
	require.NoError(t, m.Run(context.Background()))
	require.NoError(t, m.Run(context.Background()))

	stats := inspector.Stats
	assert.Equal(t, 4, stats.World.TotalEntityCount)
	require.NotNil(t, stats.Scheduler)
	assert.Equal(t, int64(3), stats.Scheduler.Systems[0].ExecutionCount)
	// Two intervals of 20ms recorded so far.
	assert.InDelta(t, 20.0, stats.AverageFrameTime(), 1e-4)
}

func TestStatsPanelAverageOverFullWindow(t *testing.T) {
	world := ecs.NewWorld(ecs.NewComponentRegistry())
	panel := debugui.NewStatsPanel(4)
	assert.Zero(t, panel.AverageFrameTime())

	now := time.Unix(0, 0)
	panel.Collect(world, nil, now)
	assert.Zero(t, panel.AverageFrameTime())

	for _, ms := range []int{10, 10, 10, 10, 50, 50} {
		now = now.Add(time.Duration(ms) * time.Millisecond)
		panel.Collect(world, nil, now)
	}
	// The window keeps the last four intervals: 10, 10, 50, 50.
	assert.InDelta(t, 30.0, panel.AverageFrameTime(), 1e-4)
}

func TestEntityBrowserPlacement(t *testing.T) {
	m := widget.NewManager(nopBackend{})
	ids, err := m.SetRoot(widget.NewBorder().WithBounds(widget.Rect{X: 4, Y: 5, Width: 6, Height: 7}))
	require.NoError(t, err)

	browser := debugui.NewEntityBrowser(0)
	browser.Rebuild(m.World())
	rows := browser.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, ids[0], rows[0].ID)
	assert.Equal(t, "(4,5 6x7)", rows[0].Bounds)
}
