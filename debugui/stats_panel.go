package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

// StatsPanel keeps a history of frame times and the latest world and
// scheduler statistics.
type StatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	frameCount    int
	lastFrame     time.Time

	World     ecs.WorldStats
	Scheduler *ecs.SchedulerStats
}

func NewStatsPanel(historyFrames int) *StatsPanel {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &StatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Collect records the time since the previous call and refreshes the statistics.
func (ps *StatsPanel) Collect(world *ecs.World, scheduler *ecs.Scheduler, now time.Time) {
	if !ps.lastFrame.IsZero() {
		ps.frameHistory[ps.frameIndex] = float32(now.Sub(ps.lastFrame).Seconds() * 1000.0)
		ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
		ps.frameCount = min(ps.frameCount+1, ps.historyFrames)
	}
	ps.lastFrame = now

	ps.World = world.CollectStats()
	if scheduler != nil {
		ps.Scheduler = scheduler.Stats()
	}
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds, or zero before the first interval.
func (ps *StatsPanel) AverageFrameTime() float32 {
	if ps.frameCount == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.frameCount)
}

func (ps *StatsPanel) Draw() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Total Entities: %d", ps.World.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", ps.World.ArchetypeCount))

	avg := ps.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if ps.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Priority")
			imgui.TableSetupColumn("Entities")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range ps.Scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.Priority))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.EntityCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range ps.World.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
