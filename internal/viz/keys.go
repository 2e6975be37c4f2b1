package viz

import (
	"math/bits"

	"github.com/san-kum/harmograph/internal/control"
)

// KeyMap maps bubbletea key strings to control keys.
var KeyMap = map[string]control.Keys{
	"left":        control.PanLeft,
	"right":       control.PanRight,
	"up":          control.PanUp,
	"down":        control.PanDown,
	"h":           control.PanLeft,
	"l":           control.PanRight,
	"k":           control.PanUp,
	"j":           control.PanDown,
	"shift+left":  control.PanLeft | control.Fast,
	"shift+right": control.PanRight | control.Fast,
	"shift+up":    control.PanUp | control.Fast,
	"shift+down":  control.PanDown | control.Fast,
	"+":           control.ZoomIn,
	"=":           control.ZoomIn,
	"-":           control.ZoomOut,
	"_":           control.ZoomOut | control.Fast,
	"]":           control.SpeedUp,
	"[":           control.SpeedDown,
	"}":           control.SpeedUp | control.Fast,
	"{":           control.SpeedDown | control.Fast,
	" ":           control.Pause,
	"space":       control.Pause,
	"t":           control.Trails,
	"r":           control.Reset,
	"0":           control.Reset,
}

// holdFrames is how long a key counts as held after its last key event.
// Terminals only report presses, so a held key shows up as autorepeat.
const holdFrames = 8

// Toggle keys act on every event so a quick double tap is two presses.
const toggleKeys = control.Pause | control.Trails | control.Reset

// KeyState turns discrete terminal key events into per-frame held and
// pressed sets.
type KeyState struct {
	frame    uint64
	lastSeen [16]uint64
	seen     control.Keys
	pending  control.Keys
	prevHeld control.Keys
}

func NewKeyState() *KeyState { return &KeyState{} }

// Key records one key event; it reports whether the key was mapped.
func (s *KeyState) Key(name string) bool {
	k, ok := KeyMap[name]
	if !ok {
		return false
	}
	s.pending |= k
	return true
}

// Frame returns the input for the next frame.
func (s *KeyState) Frame() control.Input {
	s.frame++
	for k := s.pending; k != 0; k &= k - 1 {
		i := bits.TrailingZeros16(uint16(k))
		s.lastSeen[i] = s.frame
		s.seen |= 1 << i
	}

	var held control.Keys
	for k := s.seen; k != 0; k &= k - 1 {
		i := bits.TrailingZeros16(uint16(k))
		if s.frame-s.lastSeen[i] < holdFrames {
			held |= 1 << i
		} else {
			s.seen &^= 1 << i
		}
	}

	// Autorepeat events for a held key do not count as new presses,
	// except for toggles.
	in := control.Input{Held: held, Pressed: held&^s.prevHeld | s.pending&toggleKeys}
	s.prevHeld = held
	s.pending = 0
	return in
}
