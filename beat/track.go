// SPDX-License-Identifier: EPL-2.0

package beat

import (
	"math"
	"slices"
)

// Track runs the full analysis on a mono signal and returns the tempo in BPM
// and the beat frames in increasing order. Silence yields (0, nil).
func Track(samples []float32, sampleRate int, cfg Config) (float64, []int) {
	cfg = cfg.WithDefaults()

	onset := OnsetStrength(samples, cfg)
	tempo := EstimateTempo(onset, sampleRate, cfg)
	if tempo == 0 {
		return 0, nil
	}

	return tempo, TrackBeats(onset, tempo, sampleRate, cfg)
}

// TrackBeats picks beat frames from an onset envelope given a tempo.
func TrackBeats(onset []float64, tempo float64, sampleRate int, cfg Config) []int {
	cfg = cfg.WithDefaults()
	if len(onset) == 0 || tempo <= 0 {
		return nil
	}

	frameRate := float64(sampleRate) / float64(cfg.HopLength)
	period := int(math.Round(60 * frameRate / tempo))
	if period < 1 {
		return nil
	}

	sd := stddev(onset)
	if sd == 0 {
		return nil
	}
	norm := make([]float64, len(onset))
	for i, v := range onset {
		norm[i] = v / sd
	}

	local := localScore(norm, period)
	backlink, cum := dynamicProgram(local, period, cfg.Tightness)

	beats := []int{lastBeat(cum)}
	for b := backlink[beats[len(beats)-1]]; b >= 0; b = backlink[b] {
		beats = append(beats, b)
	}
	slices.Reverse(beats)

	if !cfg.KeepWeak {
		beats = trimWeak(beats, local)
	}
	return beats
}

// localScore smooths the envelope with a Gaussian a few frames wide so
// nearby onsets reinforce each other.
func localScore(onset []float64, period int) []float64 {
	kernel := make([]float64, 2*period+1)
	for i := range kernel {
		x := float64(i-period) * 32 / float64(period)
		kernel[i] = math.Exp(-0.5 * x * x)
	}

	out := make([]float64, len(onset))
	for i := range out {
		var sum float64
		for k, w := range kernel {
			if j := i + k - period; j >= 0 && j < len(onset) {
				sum += w * onset[j]
			}
		}
		out[i] = sum
	}
	return out
}

// dynamicProgram computes for every frame the best cumulative score of a
// beat sequence ending there, and the frame of the preceding beat (-1 for
// none). Intervals between period/2 and 2*period are considered, penalised
// by tightness * log(interval/period)^2.
func dynamicProgram(local []float64, period int, tightness float64) ([]int, []float64) {
	minGap := max(int(math.Round(float64(period)/2)), 1)
	maxGap := 2 * period

	penalty := make([]float64, maxGap+1)
	for gap := minGap; gap <= maxGap; gap++ {
		l := math.Log(float64(gap) / float64(period))
		penalty[gap] = -tightness * l * l
	}

	threshold := 0.01 * slices.Max(local)
	backlink := make([]int, len(local))
	cum := make([]float64, len(local))
	first := true

	for i, score := range local {
		best, bestPrev := math.Inf(-1), -1
		for gap := maxGap; gap >= minGap; gap-- {
			prev := i - gap
			cand := penalty[gap]
			if prev >= 0 {
				cand += cum[prev]
			}
			if cand > best {
				best, bestPrev = cand, prev
			}
		}

		cum[i] = score + best
		if first && score < threshold {
			backlink[i] = -1
			continue
		}
		first = false
		backlink[i] = max(bestPrev, -1)
	}

	return backlink, cum
}

// lastBeat returns the last local maximum of the cumulative score that
// reaches half the median of all local maxima.
func lastBeat(cum []float64) int {
	var peaks []int
	for i := 1; i < len(cum); i++ {
		if cum[i] > cum[i-1] && (i == len(cum)-1 || cum[i] >= cum[i+1]) {
			peaks = append(peaks, i)
		}
	}
	if len(peaks) == 0 {
		return len(cum) - 1
	}

	values := make([]float64, len(peaks))
	for i, p := range peaks {
		values[i] = cum[p]
	}
	threshold := 0.5 * median(values)

	for i := len(peaks) - 1; i >= 0; i-- {
		if cum[peaks[i]] >= threshold {
			return peaks[i]
		}
	}
	return peaks[len(peaks)-1]
}

// trimWeak drops leading and trailing beats whose local score is under half
// the RMS local score of all beats.
func trimWeak(beats []int, local []float64) []int {
	var sq float64
	for _, b := range beats {
		sq += local[b] * local[b]
	}
	threshold := 0.5 * math.Sqrt(sq/float64(len(beats)))

	lo, hi := 0, len(beats)
	for lo < hi && local[beats[lo]] <= threshold {
		lo++
	}
	for hi > lo && local[beats[hi-1]] <= threshold {
		hi--
	}
	return beats[lo:hi]
}

// stddev is the sample standard deviation.
func stddev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

func median(x []float64) float64 {
	s := slices.Clone(x)
	slices.Sort(s)

	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
