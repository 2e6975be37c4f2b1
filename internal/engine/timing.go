package engine

import (
	"fmt"
	"time"
)

// Report is the averaged timing of the last completed window.
type Report struct {
	Frames uint64
	// FrameMs is the average generation and paint time per frame.
	FrameMs float64
	// SyncMs is the average time from paint start to the completed flip.
	SyncMs float64
	Speed  int32
}

func (r Report) String() string {
	return fmt.Sprintf("%.2f ms  %.2f ms  speed %d", r.FrameMs, r.SyncMs, r.Speed)
}

type timing struct {
	every int
	n     int
	draw  time.Duration
	sync  time.Duration
	last  Report
}

func (t *timing) add(draw, sync time.Duration, speed int32, frame uint64) (Report, bool) {
	t.n++
	t.draw += draw
	t.sync += sync
	if t.n < t.every {
		return t.last, false
	}
	n := float64(t.n)
	t.last = Report{
		Frames:  frame,
		FrameMs: float64(t.draw) / n / float64(time.Millisecond),
		SyncMs:  float64(t.sync) / n / float64(time.Millisecond),
		Speed:   speed,
	}
	t.n, t.draw, t.sync = 0, 0, 0
	return t.last, true
}
