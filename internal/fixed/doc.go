// Package fixed provides the Q.12 fixed-point primitives the renderer is
// built on.
//
// Values are plain int32 scaled by [Unit] (1 << [Shift]). Angles are table
// indices: a full turn is the table size, which must be a power of two so
// that wraparound is a mask rather than a modulo.
//
//   - [Table]: full-period sine/cosine lookup built from a quarter wave
//   - [QuarterWave]: default seed for [Build]
//   - [Mul], [Sqrt]: arithmetic helpers
//
// # Example
//
//	trig := fixed.Build(fixed.QuarterWave(1 << 14))
//	s, c := trig.SinCos(angle)
//
// Tables are immutable after Build and safe for concurrent readers.
package fixed
