// SPDX-License-Identifier: EPL-2.0

package beat

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ik5/beatup/internal/dsp"
)

// stft walks the centred, zero-padded frames of a signal and hands the power
// spectrum of each one to fn. The spectrum slice is reused between calls.
type stft struct {
	samples []float32
	size    int
	hop     int
	window  []float64
	fft     *fourier.FFT
	seg     []float64
	coeff   []complex128
	power   []float64
}

func newSTFT(samples []float32, size, hop int) *stft {
	return &stft{
		samples: samples,
		size:    size,
		hop:     hop,
		window:  dsp.Hann(size),
		fft:     fourier.NewFFT(size),
		seg:     make([]float64, size),
		coeff:   make([]complex128, size/2+1),
		power:   make([]float64, size/2+1),
	}
}

func (s *stft) frames() int {
	if len(s.samples) == 0 {
		return 0
	}
	return 1 + len(s.samples)/s.hop
}

func (s *stft) each(fn func(t int, power []float64)) {
	half := s.size / 2
	for t := range s.frames() {
		start := t*s.hop - half
		for i := range s.seg {
			j := start + i
			if j < 0 || j >= len(s.samples) {
				s.seg[i] = 0
				continue
			}
			s.seg[i] = float64(s.samples[j]) * s.window[i]
		}

		s.fft.Coefficients(s.coeff, s.seg)
		for k, c := range s.coeff {
			a := cmplx.Abs(c)
			s.power[k] = a * a
		}
		fn(t, s.power)
	}
}

// OnsetStrength returns one onset value per STFT frame: the mean positive
// increase in log power across frequency bins since the previous frame.
// The first frame is always 0. An empty signal yields nil.
func OnsetStrength(samples []float32, cfg Config) []float64 {
	cfg = cfg.WithDefaults()

	s := newSTFT(samples, cfg.FFTSize, cfg.HopLength)
	n := s.frames()
	if n == 0 {
		return nil
	}

	// The dB reference is the loudest bin of the whole signal, so the
	// spectrum is computed twice to avoid holding it in memory.
	var peak float64
	s.each(func(_ int, power []float64) {
		for _, v := range power {
			peak = max(peak, v)
		}
	})

	onset := make([]float64, n)
	prev := make([]float64, len(s.power))
	s.each(func(t int, power []float64) {
		dsp.PowerToDB(power, peak, cfg.TopDB)

		if t > 0 {
			var flux float64
			for k, v := range power {
				if d := v - prev[k]; d > 0 {
					flux += d
				}
			}
			onset[t] = flux / float64(len(power))
		}
		copy(prev, power)
	})

	return onset
}
