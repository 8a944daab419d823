package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
)

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Zero(t, h.Average())

	h.Push(0.010)
	h.Push(0.020)
	assert.InDelta(t, 15, h.Average(), 1e-4)

	h.Push(0.030)
	h.Push(0.040)
	assert.InDelta(t, 30, h.Average(), 1e-4, "oldest sample is overwritten")
	assert.Len(t, h.Samples(), 3)
}

func TestFrameTimer(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	ft := &FrameTimer{last: base, now: func() time.Time { return now }}

	now = base.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, ft.Delta(), 1e-9)

	now = now.Add(time.Second)
	assert.InDelta(t, 1.0, ft.Delta(), 1e-9)
}

func TestArchetypeRows(t *testing.T) {
	st := ecs.StorageStats{ArchetypeBreakdown: []ecs.ArchetypeStats{
		{ID: 1, EntityCount: 2},
		{ID: 2, EntityCount: 9},
		{ID: 3, EntityCount: 2},
	}}

	byCount := archetypeRows(st, true)
	assert.Equal(t, []uint32{2, 1, 3}, ids(byCount))

	ordered := archetypeRows(st, false)
	assert.Equal(t, []uint32{1, 2, 3}, ids(ordered))
	assert.Equal(t, uint32(1), st.ArchetypeBreakdown[0].ID, "input is not reordered")
}

func TestSystemRows(t *testing.T) {
	st := &ecs.SchedulerStats{Systems: []ecs.SystemStats{
		{Name: "Fast", AvgDuration: time.Microsecond},
		{Name: "Slow", AvgDuration: time.Millisecond},
		{Name: "Also", AvgDuration: time.Microsecond},
	}}

	rows := systemRows(st)
	require.Len(t, rows, 3)
	assert.Equal(t, "Slow", rows[0].Name)
	assert.Equal(t, "Fast", rows[1].Name)
	assert.Equal(t, "Also", rows[2].Name)
}

func TestNewStorageSpawnsWindows(t *testing.T) {
	storage, scheduler := NewStorage(func() {}, func() {})

	assert.Equal(t, 2, storage.Count())
	assert.True(t, ecs.NewSingleton[ImguiInputState](storage).Exists())
	assert.Equal(t, 1, scheduler.GetStats().SystemCount)
	assert.Equal(t, "ImguiSystem", scheduler.GetStats().Systems[0].Name)
}

func ids(rows []ecs.ArchetypeStats) []uint32 {
	out := make([]uint32, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
