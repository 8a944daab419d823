package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

// NewFrameHistory keeps the last n frames.
func NewFrameHistory(n int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(n, 1))}
}

// Push records a frame that took dt seconds.
func (h *FrameHistory) Push(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// Samples returns the ring in storage order for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// FrameTimer measures wall time between calls to Delta.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Delta returns the seconds since the previous call.
func (ft *FrameTimer) Delta() float64 {
	now := ft.now()
	d := now.Sub(ft.last).Seconds()
	ft.last = now
	return d
}

// StatsWindow shows entity, archetype and per-system timings for the
// scheduler returned by Target. A nil scheduler renders a placeholder.
type StatsWindow struct {
	Title          string
	Target         func() *ecs.Scheduler
	SortByEntities bool

	history *FrameHistory
	timer   *FrameTimer
}

func NewStatsWindow(title string, target func() *ecs.Scheduler) *StatsWindow {
	return &StatsWindow{
		Title:          title,
		Target:         target,
		SortByEntities: true,
		history:        NewFrameHistory(120),
		timer:          NewFrameTimer(),
	}
}

func (w *StatsWindow) Render() {
	w.history.Push(w.timer.Delta())

	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	avg := w.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	samples := w.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	var sched *ecs.Scheduler
	if w.Target != nil {
		sched = w.Target()
	}
	if sched == nil {
		imgui.Separator()
		imgui.Text("No simulation running")
		return
	}

	storage := sched.Storage().CollectStats()
	run := sched.GetStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Tick %d  Entities %d  Archetypes %d  Singletons %d",
		run.Ticks, storage.TotalEntityCount, storage.ArchetypeCount, storage.SingletonCount))
	if sched.Paused() {
		imgui.SameLine()
		imgui.Text("(paused)")
	}

	if imgui.TreeNodeStr("Systems") {
		const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemsTable", 4, flags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()
			for _, s := range systemRows(run) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		imgui.Checkbox("Sort by entity count", &w.SortByEntities)
		const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchetypeTable", 3, flags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()
			for _, a := range archetypeRows(storage, w.SortByEntities) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", a.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(a.ComponentTypes, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", a.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range storage.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}

// systemRows orders systems slowest first by average duration. Ties keep
// registration order.
func systemRows(st *ecs.SchedulerStats) []ecs.SystemStats {
	rows := slices.Clone(st.Systems)
	slices.SortStableFunc(rows, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	return rows
}

// archetypeRows returns archetypes in creation order, or by descending entity
// count when byEntities is set.
func archetypeRows(st ecs.StorageStats, byEntities bool) []ecs.ArchetypeStats {
	rows := slices.Clone(st.ArchetypeBreakdown)
	if byEntities {
		slices.SortStableFunc(rows, func(a, b ecs.ArchetypeStats) int {
			return cmp.Compare(b.EntityCount, a.EntityCount)
		})
	}
	return rows
}
