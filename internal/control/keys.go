package control

import "strings"

// Keys is a set of logical inputs. Front ends translate their own key codes
// into this set once per frame.
type Keys uint16

const (
	SpeedUp Keys = 1 << iota
	SpeedDown
	PanLeft
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
	Trails
	Pause
	Reset
	Fast
)

var keyNames = []struct {
	k    Keys
	name string
}{
	{SpeedUp, "speed_up"},
	{SpeedDown, "speed_down"},
	{PanLeft, "pan_left"},
	{PanRight, "pan_right"},
	{PanUp, "pan_up"},
	{PanDown, "pan_down"},
	{ZoomIn, "zoom_in"},
	{ZoomOut, "zoom_out"},
	{Trails, "trails"},
	{Pause, "pause"},
	{Reset, "reset"},
	{Fast, "fast"},
}

func (k Keys) Has(m Keys) bool { return k&m == m }

func (k Keys) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	for _, kn := range keyNames {
		if k&kn.k != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseKey maps a key name as used in scripts and config files.
func ParseKey(name string) (Keys, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, kn := range keyNames {
		if kn.name == name {
			return kn.k, true
		}
	}
	return 0, false
}

// ParseKeys parses a list of key names into one set.
func ParseKeys(names []string) (Keys, error) {
	var k Keys
	for _, n := range names {
		v, ok := ParseKey(n)
		if !ok {
			return 0, &UnknownKeyError{Name: n}
		}
		k |= v
	}
	return k, nil
}

type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return "control: unknown key " + strings.TrimSpace(e.Name)
}

// Input is one frame of input: keys currently down and keys that went down
// since the previous frame.
type Input struct {
	Held    Keys
	Pressed Keys
}

// Edge builds an Input from the previous and current held sets.
func Edge(prev, cur Keys) Input {
	return Input{Held: cur, Pressed: cur &^ prev}
}
