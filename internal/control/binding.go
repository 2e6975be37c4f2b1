package control

// Binding ties one platform key code to control keys. Window back ends keep
// a table of these and poll it once per frame.
type Binding[K comparable] struct {
	Code K
	Keys Keys
}

// Poll returns the union of Keys for every binding whose code is down.
func Poll[K comparable](bs []Binding[K], down func(K) bool) Keys {
	var k Keys
	for _, b := range bs {
		if down(b.Code) {
			k |= b.Keys
		}
	}
	return k
}
