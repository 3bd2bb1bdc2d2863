// SPDX-License-Identifier: EPL-2.0

package beat

// FramesToTime converts frame indices to seconds, preserving order. With
// hop 1 the indices are treated as sample offsets.
func FramesToTime(frames []int, sampleRate, hop int) []float64 {
	times := make([]float64, len(frames))
	for i, f := range frames {
		times[i] = float64(f*hop) / float64(sampleRate)
	}
	return times
}

// TimeToFrame returns the frame nearest to t seconds.
func TimeToFrame(t float64, sampleRate, hop int) int {
	return int(t*float64(sampleRate)/float64(hop) + 0.5)
}
