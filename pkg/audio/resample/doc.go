// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts frame buffers between sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(24000, 48000, 1)
//	n := r.Resample(input, output)
//
//	// or, for a whole buffer:
//	out, err := resample.Buffer(buf, 48000)
package resample
