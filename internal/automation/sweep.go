package automation

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/harmograph/internal/config"
	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/engine"
)

// Sweep renders one frame for each value of a single configuration field.
type Sweep struct {
	Field string
	Min   int
	Max   int
	Steps int
	// Frames per value; the last one is measured.
	Frames int
	// Workers bounds how many values render at once; zero uses GOMAXPROCS.
	Workers int
}

// SweepResult holds the measurement for one value.
type SweepResult struct {
	Value   int
	Lit     int
	Painted int
	Dropped int
}

// SweepFields lists the fields a sweep can vary.
var SweepFields = []string{"ang1_inc", "ang2_inc", "feedback", "scale", "curves", "iterations"}

func setField(cfg *config.Config, field string, v int) error {
	switch field {
	case "ang1_inc":
		cfg.Curve.Ang1Inc = int32(v)
	case "ang2_inc":
		cfg.Curve.Ang2Inc = int32(v)
	case "feedback":
		cfg.Curve.Feedback = int32(v)
	case "scale":
		cfg.View.Scale = int32(v)
	case "curves":
		cfg.Curve.Count = v
	case "iterations":
		cfg.Curve.Iterations = v
	default:
		return fmt.Errorf("sweep: unknown field %q", field)
	}
	return nil
}

// RunSweep builds a fresh engine from base for every value.
func (r *Runner) RunSweep(ctx context.Context, base *config.Config, sw *Sweep) ([]SweepResult, error) {
	if sw.Steps < 1 {
		return nil, fmt.Errorf("sweep: need at least one step")
	}
	frames := max(sw.Frames, 1)
	workers := sw.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Every value gets its own engine, built up front so a bad value fails
	// before anything renders.
	engines := make([]*engine.Engine, sw.Steps)
	values := make([]int, sw.Steps)
	for i := range engines {
		v := sw.Min
		if sw.Steps > 1 {
			v = sw.Min + (sw.Max-sw.Min)*i/(sw.Steps-1)
		}
		cfg := base.Clone()
		if err := setField(cfg, sw.Field, v); err != nil {
			return nil, err
		}
		e, err := engine.FromConfig(cfg, nil)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%d: %w", sw.Field, v, err)
		}
		engines[i], values[i] = e, v
	}

	results := make([]SweepResult, sw.Steps)
	errs := make([]error, sw.Steps)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range engines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			e := engines[idx]
			var fs engine.FrameStats
			for f := 0; f < frames; f++ {
				var err error
				if fs, err = e.Step(ctx, control.Input{}); err != nil {
					errs[idx] = err
					return
				}
			}
			results[idx] = SweepResult{
				Value:   values[idx],
				Lit:     e.Front().Lit(),
				Painted: fs.Render.Painted,
				Dropped: fs.Render.Dropped,
			}
			r.logf("sweep %d/%d: %s=%d", idx+1, sw.Steps, sw.Field, values[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
