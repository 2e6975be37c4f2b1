// Package analysis measures the sample set of one frame.
//
//   - [Signal]: one curve family's coordinate as a sequence
//   - [Spectrum]: Hann-windowed magnitude spectrum of a sequence
//   - [Dominant], [SplitBands]: summaries of a spectrum
//   - [Measure]: bounding box and radial histogram of the samples
//
// # Example
//
//	pts := e.Samples(nil)
//	ps := analysis.Spectrum(analysis.Signal(pts, iterations, 0, analysis.AxisX))
//	bin, _ := analysis.Dominant(ps)
//
// A family walks its two angles at fixed increments, so its spectrum shows
// peaks near the increment frequencies plus the sidebands the feedback
// term adds.
package analysis
