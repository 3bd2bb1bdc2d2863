// SPDX-License-Identifier: EPL-2.0

package beat

import "math"

// EstimateTempo returns the global tempo in BPM of an onset envelope
// sampled at sampleRate/HopLength frames per second. It returns 0 when the
// envelope carries no periodic energy.
func EstimateTempo(onset []float64, sampleRate int, cfg Config) float64 {
	cfg = cfg.WithDefaults()
	frameRate := float64(sampleRate) / float64(cfg.HopLength)

	maxLag := min(len(onset)-1, int(math.Round(cfg.MaxLagSeconds*frameRate)))

	var (
		bestScore float64
		bestLag   int
	)
	for lag := 1; lag <= maxLag; lag++ {
		bpm := 60 * frameRate / float64(lag)
		if bpm < cfg.MinBPM || bpm > cfg.MaxBPM {
			continue
		}

		var ac float64
		for i := 0; i+lag < len(onset); i++ {
			ac += onset[i] * onset[i+lag]
		}

		octaves := math.Log2(bpm / cfg.StartBPM)
		score := ac * math.Exp(-0.5*octaves*octaves)
		if score > bestScore {
			bestScore, bestLag = score, lag
		}
	}

	if bestLag == 0 {
		return 0
	}
	return 60 * frameRate / float64(bestLag)
}
