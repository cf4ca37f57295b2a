package main

import (
	"io"
	"runtime"
	"slices"
	"strconv"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Levels   int

	// Results
	Frames          int64
	Sessions        int
	LevelsCompleted int
	TotalTime       time.Duration
	Frame           Stats
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

// statsWindow bounds how many recent samples are kept for the percentile.
const statsWindow = 4096

// Stats keeps running min, max and mean over every sample and a ring of the
// latest statsWindow samples for the percentile.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	P99   time.Duration
	Count int64

	total  time.Duration
	window []time.Duration
	next   int
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++

	if len(s.window) < statsWindow {
		s.window = append(s.window, d)
		return
	}
	s.window[s.next] = d
	s.next = (s.next + 1) % statsWindow
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)

	sorted := slices.Clone(s.window)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

const reportTemplate = `# TileQuest Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Levels Loaded:** {{.Levels}}

## Results
- **Frames:** {{.Frames}}
- **Sessions:** {{.Sessions}}
- **Levels Completed:** {{.LevelsCompleted}}
- **Total Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.Frame.Avg}}
  - **P99 (recent frames):** {{.Frame.P99}}
  - **Min:** {{.Frame.Min}}
  - **Max:** {{.Frame.Max}}

## Memory
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB during the run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmtMB(v)
	},
	"bsub": func(a, b uint64) uint64 {
		if b > a {
			return 0
		}
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}

func fmtMB(v uint64) string {
	return strconv.FormatFloat(float64(v)/1024/1024, 'f', 2, 64)
}
