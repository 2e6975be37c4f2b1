package control

// Repeater turns a held key into discrete steps: one on the first frame,
// then one every Interval frames once Delay frames have passed.
type Repeater struct {
	Delay    int
	Interval int
}

func DefaultRepeater() Repeater {
	return Repeater{Delay: 15, Interval: 4}
}

// fire reports whether a key held for n frames (n >= 1) steps this frame.
func (r Repeater) fire(n int) bool {
	if n == 1 {
		return true
	}
	if n <= r.Delay {
		return false
	}
	iv := r.Interval
	if iv < 1 {
		iv = 1
	}
	return (n-r.Delay-1)%iv == 0
}

// counter tracks how long one key has been held.
type counter struct {
	n int
}

func (c *counter) tick(r Repeater, held bool) bool {
	if !held {
		c.n = 0
		return false
	}
	c.n++
	return r.fire(c.n)
}
