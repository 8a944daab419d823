package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
)

// Report describes one bench invocation.
type Report struct {
	Duration       time.Duration
	Seed           uint64
	Render         bool
	GCPauseMetrics bool
	Results        []Result
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Result is the outcome of driving one game.
type Result struct {
	Game       string
	Frames     int64
	SimTime    time.Duration
	WallTime   time.Duration
	Runs       int
	BestScore  int
	UpdateTime Stats
	RenderTime Stats
	Systems    []ecs.SystemStats
	Storage    ecs.StorageStats
}

// Stats summarises a set of frame durations.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Add(d time.Duration) {
	s.Samples = append(s.Samples, d)
}

// Finalize computes Min, Max and Avg from the samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Arcade Simulation Report

## Configuration
- **Duration per game:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Render:** {{.Render}}
{{range .Results}}
## {{.Game}}
- **Frames:** {{num .Frames}} ({{.SimTime}} simulated in {{.WallTime}})
- **Runs finished:** {{.Runs}}, best score {{num .BestScore}}
- **Update:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
{{- if $.Render}}
- **Render:** avg {{.RenderTime.Avg}}, min {{.RenderTime.Min}}, max {{.RenderTime.Max}}
{{- end}}
- **Entities at end:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes

| System | Avg | Max | Total |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.AvgDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{- end}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"num": func(v any) string {
		switch n := v.(type) {
		case int:
			return draw.Number(n)
		case int64:
			return draw.Number(int(n))
		}
		return "N/A"
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
