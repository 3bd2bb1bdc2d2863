// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the small numeric kernels shared by the resampler,
// the beat tracker and the click-track writer.
package dsp

import "math"

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples. x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// Float32ToPCM16 clamps x to [-1, 1] and scales it to a signed 16-bit value.
func Float32ToPCM16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * math.MaxInt16)
}

// Hann returns a periodic Hann window of length n, the STFT convention.
func Hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}

// PowerToDB converts power values to decibels in place, relative to ref
// and floored topDB below it.
func PowerToDB(p []float64, ref, topDB float64) {
	const amin = 1e-10

	refDB := 10 * math.Log10(math.Max(ref, amin))
	for i, v := range p {
		p[i] = math.Max(10*math.Log10(math.Max(v, amin))-refDB, -topDB)
	}
}

// PCMScale is the divisor that maps signed integer PCM of the given bit
// depth to [-1, 1). Unknown depths are treated as 16-bit.
func PCMScale(bitDepth int) float32 {
	if bitDepth < 8 || bitDepth > 32 {
		bitDepth = 16
	}
	return float32(int64(1) << (bitDepth - 1))
}
