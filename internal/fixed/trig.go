package fixed

import (
	"fmt"
	"math"
)

// Table provides precomputed sin/cos values indexed by angle, where the
// table size is one full turn.
type Table struct {
	sin    []int16
	packed []uint32 // low half sin, high half cos
	n      int
	mask   int32
}

// QuarterWave returns the first quarter period of a sine wave for a table
// of n entries, rounded to Q.12. Entry k is sin(2πk/n) for k in [0, n/4).
func QuarterWave(n int) []int16 {
	q := n / 4
	seed := make([]int16, q)
	for k := 0; k < q; k++ {
		seed[k] = int16(math.Round(math.Sin(2*math.Pi*float64(k)/float64(n)) * Unit))
	}
	return seed
}

// Build expands a quarter-wave seed into a full-period table of 4*len(seed)
// entries by quadrant mirroring. It panics if the resulting size is not a
// power of two of at least 4.
func Build(seed []int16) *Table {
	q := len(seed)
	n := 4 * q
	if q == 0 || !IsPow2(n) {
		panic(fmt.Sprintf("fixed: table size %d is not a power of two >= 4", n))
	}

	t := &Table{
		sin:    make([]int16, n),
		packed: make([]uint32, n),
		n:      n,
		mask:   int32(n - 1),
	}

	copy(t.sin[:q], seed)
	t.sin[q] = Unit
	for k := 1; k < q; k++ {
		t.sin[q+k] = seed[q-k]
	}
	for k := 0; k < 2*q; k++ {
		t.sin[2*q+k] = -t.sin[k]
	}

	for i := 0; i < n; i++ {
		c := t.sin[(i+q)&(n-1)]
		t.packed[i] = uint32(uint16(t.sin[i])) | uint32(uint16(c))<<16
	}

	return t
}

// Size returns the number of entries, i.e. one full turn in angle units.
func (t *Table) Size() int { return t.n }

// Mask returns Size()-1 for wrapping angles.
func (t *Table) Mask() int32 { return t.mask }

func (t *Table) Sin(a int32) int32 {
	return int32(t.sin[a&t.mask])
}

func (t *Table) Cos(a int32) int32 {
	return int32(t.sin[(a+int32(t.n/4))&t.mask])
}

// SinCos returns both values with a single lookup into the packed slot.
func (t *Table) SinCos(a int32) (sin, cos int32) {
	p := t.packed[a&t.mask]
	return int32(int16(p)), int32(int16(p >> 16))
}
