// SPDX-License-Identifier: EPL-2.0

package audiotest

// ClickTrack returns a mono signal of the given length with a single-sample
// impulse of the given amplitude every interval samples, starting at offset.
func ClickTrack(length, offset, interval int, amplitude float32) []float32 {
	out := make([]float32, length)
	for i := offset; i >= 0 && i < length; i += interval {
		out[i] = amplitude
	}
	return out
}

// ClickPositions lists the sample offsets ClickTrack places impulses at.
func ClickPositions(length, offset, interval int) []int {
	var pos []int
	for i := offset; i >= 0 && i < length; i += interval {
		pos = append(pos, i)
	}
	return pos
}
