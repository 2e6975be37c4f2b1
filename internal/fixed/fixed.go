package fixed

const (
	Shift = 12
	Unit  = 1 << Shift
	Mask  = Unit - 1
)

func FromInt(i int) int32 { return int32(i) << Shift }
func ToInt(f int32) int    { return int(f >> Shift) }

// Mul multiplies two Q.12 values. The intermediate is widened so the
// product of two values up to 2^19 cannot overflow.
func Mul(a, b int32) int32 {
	return int32((int64(a) * int64(b)) >> Shift)
}

// Sqrt returns floor(sqrt(n)) for plain integers, 0 for n <= 0.
func Sqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
