package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for _, d := range []time.Duration{3, 1, 2} {
		s.Add(d * time.Millisecond)
	}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestNewTargetRejectsUnknownGame(t *testing.T) {
	_, err := newTarget("chess", rand.New(rand.NewPCG(1, 0)))
	assert.Error(t, err)
}

func TestDriveGames(t *testing.T) {
	for _, name := range []string{"runner", "nexus"} {
		t.Run(name, func(t *testing.T) {
			target, err := newTarget(name, rand.New(rand.NewPCG(7, 0)))
			require.NoError(t, err)

			result := drive(context.Background(), target, 600, true)

			assert.Equal(t, name, result.Game)
			assert.Equal(t, int64(600), result.Frames)
			assert.Equal(t, 10*time.Second, result.SimTime)
			assert.Len(t, result.UpdateTime.Samples, 600)
			assert.Len(t, result.RenderTime.Samples, 600)
			require.NotEmpty(t, result.Systems)
			assert.Equal(t, "PlayerSystem", result.Systems[0].Name)
			assert.Positive(t, result.Storage.TotalEntityCount)
		})
	}
}

func TestDriveStopsOnContext(t *testing.T) {
	target, err := newTarget("runner", rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := drive(ctx, target, 0, false)
	assert.Zero(t, result.Frames)
	assert.Empty(t, result.RenderTime.Samples)
}

func TestReportGenerate(t *testing.T) {
	target, err := newTarget("runner", rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)

	report := &Report{
		Duration: time.Second,
		Seed:     7,
		Results:  []Result{drive(context.Background(), target, 60, false)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Arcade Simulation Report")
	assert.Contains(t, out, "## runner")
	assert.Contains(t, out, "**Frames:** 60")
	assert.Contains(t, out, "| PlayerSystem |")
	assert.NotContains(t, out, "**Render:** avg")
}
