// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/beatup/internal/dsp"
)

const (
	clickFreq     = 1000.0 // Hz
	clickLength   = 0.010  // seconds
	clickDecay    = 0.002  // seconds
	clickGain     = 0.8
	clickBedGain  = 0.5
	clickBitDepth = 16
)

// RenderClicks mixes a short decaying tone into sig at every timestamp.
// The result is at least as long as sig and long enough for the last click.
func RenderClicks(sig *Signal, times []float64) []float32 {
	rate := sig.SampleRate
	if rate <= 0 {
		rate = AnalysisRate
	}
	clickSamples := int(clickLength * float64(rate))

	length := len(sig.Samples)
	if len(times) > 0 {
		length = max(length, int(times[len(times)-1]*float64(rate))+clickSamples)
	}

	out := make([]float32, length)
	for i, v := range sig.Samples {
		out[i] = v * clickBedGain
	}

	for _, t := range times {
		start := int(math.Round(t * float64(rate)))
		for i := 0; i < clickSamples && start+i < length; i++ {
			if start+i < 0 {
				continue
			}
			x := float64(i) / float64(rate)
			out[start+i] += float32(clickGain * math.Sin(2*math.Pi*clickFreq*x) * math.Exp(-x/clickDecay))
		}
	}

	return out
}

// WriteClickTrack renders sig with clicks at times and writes it to path as
// mono 16-bit PCM WAV.
func WriteClickTrack(path string, sig *Signal, times []float64) (err error) {
	rate := sig.SampleRate
	if rate <= 0 {
		rate = AnalysisRate
	}

	mixed := RenderClicks(sig, times)
	data := make([]int, len(mixed))
	for i, v := range mixed {
		data[i] = int(dsp.Float32ToPCM16(v))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create click track: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close click track: %w", cerr)
		}
	}()

	enc := wav.NewEncoder(f, rate, clickBitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: rate, NumChannels: 1},
		SourceBitDepth: clickBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode click track: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish click track: %w", err)
	}
	return nil
}
