// Package gui presents the engine's front buffer in a desktop window.
//
// Two back ends share the same frame loop: raylib, which paces frames with
// SetTargetFPS, and ebiten, which calls Update at a fixed tick rate. Both
// poll real key state, so held keys and key combinations behave exactly as
// the controller expects.
package gui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/export"
	"github.com/san-kum/harmograph/internal/render"
)

const (
	Raylib   = "raylib"
	Ebiten   = "ebiten"
	Headless = "headless"
)

// BackendError describes a failure to open or drive a window.
type BackendError struct {
	Backend   string
	Operation string
	Details   string
	Err       error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Backend, e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Backend, e.Operation, e.Details)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Options configures a window.
type Options struct {
	Title string
	// Zoom is the integer window scale over the buffer size.
	Zoom   int
	FPS    int
	OutDir string
	// Frames stops the headless back end after this many frames; zero runs
	// until the context ends.
	Frames int
}

func (o *Options) fill() {
	if o.Title == "" {
		o.Title = "harmograph"
	}
	if o.Zoom < 1 {
		o.Zoom = 3
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
}

// Run opens the named back end and blocks until the window closes or ctx
// ends. The engine must have been built with an Immediate vsync for window
// back ends; they pace frames themselves.
func Run(ctx context.Context, backend string, e *engine.Engine, opts Options) error {
	opts.fill()
	switch backend {
	case Raylib:
		return runRaylib(ctx, e, opts)
	case Ebiten:
		return runEbiten(ctx, e, opts)
	case Headless:
		return runHeadless(ctx, e, opts)
	}
	return &BackendError{
		Backend:   backend,
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend %q", backend),
	}
}

// runHeadless steps the engine against a ticker with no window, logging
// each timing report.
func runHeadless(ctx context.Context, e *engine.Engine, opts Options) error {
	t := buffer.NewTicker(opts.FPS)
	defer t.Stop()
	for i := 0; opts.Frames <= 0 || i < opts.Frames; i++ {
		if err := t.WaitVBlank(ctx); err != nil {
			return err
		}
		if _, err := e.Step(ctx, engine.Idle.Next(e.Frames())); err != nil {
			return err
		}
		if rep := e.Report(); rep.Frames == e.Frames() {
			log.Printf("frame %d: %s", rep.Frames, rep)
		}
	}
	return nil
}

// session holds the actions both window back ends share.
type session struct {
	engine *engine.Engine
	opts   Options
	rec    *export.Recorder
	note   string
	noteAt time.Time
}

func (s *session) notify(msg string) {
	s.note, s.noteAt = msg, time.Now()
	log.Print(msg)
}

// overlay returns the text lines drawn over the frame.
func (s *session) overlay() []string {
	p := s.engine.Params()
	lines := []string{s.engine.Report().String()}
	state := fmt.Sprintf("scale %d  pan %+d,%+d", p.Scale, p.PanX, p.PanY)
	if p.Paused() {
		state += "  PAUSED"
	}
	if p.Trails {
		state += "  TRAILS"
	}
	if s.rec != nil {
		state += fmt.Sprintf("  REC %d", s.rec.Len())
	}
	lines = append(lines, state)
	if s.note != "" && time.Since(s.noteAt) < 3*time.Second {
		lines = append(lines, s.note)
	}
	return lines
}

func (s *session) path(ext string) string {
	name := fmt.Sprintf("harmograph_%s.%s", time.Now().Format("20060102_150405"), ext)
	return filepath.Join(s.opts.OutDir, name)
}

func (s *session) screenshot() {
	path := s.path("png")
	if err := export.WriteFile(path, s.engine.Front(), s.opts.Zoom); err != nil {
		s.notify(err.Error())
		return
	}
	s.notify("saved " + path)
}

func (s *session) toggleMono() {
	r := s.engine.Renderer()
	if r.ColourMode() == render.ColourTable {
		r.SetColourMode(render.ColourMono)
	} else {
		r.SetColourMode(render.ColourTable)
	}
}

func (s *session) toggleRecording() {
	if s.rec == nil {
		s.rec = export.NewRecorder(s.opts.Zoom, 0)
		s.notify("recording")
		return
	}
	s.finishRecording()
}

func (s *session) finishRecording() {
	rec := s.rec
	s.rec = nil
	if rec == nil || rec.Len() == 0 {
		return
	}
	path := s.path("gif")
	if err := writeRecording(path, rec); err != nil {
		s.notify(err.Error())
		return
	}
	s.notify(fmt.Sprintf("saved %s (%d frames)", path, rec.Len()))
}

// afterStep records the new front buffer when recording.
func (s *session) afterStep() {
	if s.rec != nil {
		s.rec.Add(s.engine.Front())
	}
}
