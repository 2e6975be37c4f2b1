package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/harmograph/internal/config"
	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/export"
)

// Script is a scripted input sequence run headless against one engine.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Preset selects the starting configuration; empty means the defaults.
	Preset string `yaml:"preset"`
	// Record, if set, writes every frame of the run to this GIF.
	Record string `yaml:"record"`
	Scale  int    `yaml:"scale"`
	Steps  []Step `yaml:"steps"`
}

// Step holds keys for a number of frames. Press keys go down on the first
// frame only; Hold keys stay down for the whole step.
type Step struct {
	Frames  int      `yaml:"frames"`
	Hold    []string `yaml:"hold"`
	Press   []string `yaml:"press"`
	Capture string   `yaml:"capture"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if _, err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Config returns the configuration the script starts from.
func (s *Script) Config() (*config.Config, error) {
	if s.Preset == "" {
		return config.DefaultConfig(), nil
	}
	cfg := config.GetPreset(s.Preset)
	if cfg == nil {
		return nil, fmt.Errorf("script %q: unknown preset %q", s.Name, s.Preset)
	}
	return cfg, nil
}

// Frames is the total number of frames the script runs.
func (s *Script) Frames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.frames()
	}
	return n
}

func (st Step) frames() int {
	if st.Frames <= 0 {
		return 1
	}
	return st.Frames
}

type compiledStep struct {
	frames  int
	hold    control.Keys
	press   control.Keys
	capture string
}

func (s *Script) compile() ([]compiledStep, error) {
	out := make([]compiledStep, 0, len(s.Steps))
	for i, st := range s.Steps {
		hold, err := control.ParseKeys(st.Hold)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		press, err := control.ParseKeys(st.Press)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		out = append(out, compiledStep{frames: st.frames(), hold: hold, press: press, capture: st.Capture})
	}
	return out, nil
}

// Result summarises a script run.
type Result struct {
	Frames   int
	Captures []string
	Report   engine.Report
	Painted  int
	Dropped  int
}

// Runner executes scripts. A nil Log keeps it quiet.
type Runner struct {
	Log *log.Logger
}

func (r *Runner) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Printf(format, args...)
	}
}

// Run drives e through every step of s.
func (r *Runner) Run(ctx context.Context, e *engine.Engine, s *Script) (*Result, error) {
	steps, err := s.compile()
	if err != nil {
		return nil, err
	}

	var rec *export.Recorder
	if s.Record != "" {
		rec = export.NewRecorder(s.Scale, 0)
	}

	res := &Result{}
	var prev control.Keys
	for i, st := range steps {
		r.logf("step %d/%d: %d frames hold=%v press=%v", i+1, len(steps), st.frames, st.hold, st.press)

		for f := 0; f < st.frames; f++ {
			held := st.hold
			if f == 0 {
				held |= st.press
				// A press always starts a new edge, even when the
				// previous step ended with the same key down.
				prev &^= st.press
			}
			fs, err := e.Step(ctx, control.Edge(prev, held))
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			prev = held
			res.Frames++
			res.Painted += fs.Render.Painted
			res.Dropped += fs.Render.Dropped
			if rec != nil {
				rec.Add(e.Front())
			}
		}

		if st.capture != "" {
			if err := export.WriteFile(st.capture, e.Front(), s.Scale); err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Captures = append(res.Captures, st.capture)
			r.logf("captured %s", st.capture)
		}
	}

	if rec != nil {
		f, err := os.Create(s.Record)
		if err != nil {
			return res, err
		}
		if err := rec.Encode(f); err != nil {
			f.Close()
			return res, fmt.Errorf("record %s: %w", s.Record, err)
		}
		if err := f.Close(); err != nil {
			return res, err
		}
		r.logf("recorded %d frames to %s", rec.Len(), s.Record)
	}

	res.Report = e.Report()
	return res, nil
}
