package buffer

import (
	"context"
	"time"
)

// Mode selects how the two buffers are used.
type Mode int

const (
	// ModeDouble paints the inactive buffer and flips at vblank.
	ModeDouble Mode = iota
	// ModeAccumulate paints the displayed buffer and never flips, so paint
	// persists across frames.
	ModeAccumulate
)

func (m Mode) String() string {
	switch m {
	case ModeDouble:
		return "double"
	case ModeAccumulate:
		return "accumulate"
	}
	return "unknown"
}

// VSync blocks until the next vertical blank.
type VSync interface {
	WaitVBlank(ctx context.Context) error
}

// Immediate never waits. Used headless and by back ends whose present call
// already paces to the display.
type Immediate struct{}

func (Immediate) WaitVBlank(ctx context.Context) error {
	return ctx.Err()
}

// Ticker paces flips to a fixed refresh rate.
type Ticker struct {
	t *time.Ticker
}

func NewTicker(hz int) *Ticker {
	if hz <= 0 {
		hz = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(hz))}
}

func (v *Ticker) WaitVBlank(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-v.t.C:
		return nil
	}
}

func (v *Ticker) Stop() { v.t.Stop() }

// Swapper owns the buffer pair.
type Swapper struct {
	bufs   [2]*Buffer
	active int
	mode   Mode
	vsync  VSync
	frames uint64
}

func NewSwapper(w, h int, vsync VSync) *Swapper {
	if vsync == nil {
		vsync = Immediate{}
	}
	return &Swapper{
		bufs:  [2]*Buffer{New(w, h), New(w, h)},
		vsync: vsync,
	}
}

// Front returns the buffer bound for display.
func (s *Swapper) Front() *Buffer { return s.bufs[s.active] }

// Back returns the paint target. In ModeAccumulate it is the front buffer.
func (s *Swapper) Back() *Buffer {
	if s.mode == ModeAccumulate {
		return s.bufs[s.active]
	}
	return s.bufs[1-s.active]
}

func (s *Swapper) Mode() Mode { return s.mode }

// Phase reports which physical buffer is displayed.
func (s *Swapper) Phase() int { return s.active }

func (s *Swapper) Frames() uint64 { return s.frames }

// SetMode switches between double buffering and accumulation. Entering
// ModeAccumulate pins the buffer currently on display, so the next paint
// lands on top of what the viewer already sees.
func (s *Swapper) SetMode(m Mode) {
	s.mode = m
}

// Flip waits for vblank and, when double buffering, exchanges the roles.
// It must only be called after the paint pass for the frame has finished.
func (s *Swapper) Flip(ctx context.Context) error {
	if err := s.vsync.WaitVBlank(ctx); err != nil {
		return err
	}
	if s.mode == ModeDouble {
		s.active = 1 - s.active
	}
	s.frames++
	return nil
}
