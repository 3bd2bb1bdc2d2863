// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/beatup/internal/dsp"
)

// Resampler converts src to another sample rate using Catmull-Rom cubic
// interpolation over four frames of history. Channels are preserved.
// When downsampling a one-pole low-pass filter is applied to the input.
// Equal rates pass samples through untouched.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// hist holds frames t-1, t, t+1, t+2; real marks frames that came from
	// src rather than edge padding.
	hist   [4][]float32
	real   [4]bool
	primed bool
	pos    float64 // fractional position between hist[1] and hist[2]

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowpass bool
	alpha   float32
	lp      []float32
	lpReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, 4096-4096%channels),
		lowpass:  step > 1,
		alpha:    0.5,
		lp:       make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// Len scales the source length hint to the output rate.
func (r *Resampler) Len() int64 {
	n, ok := sourceLen(r.src)
	if !ok || !r.validRates() {
		return 0
	}

	frames := int64(float64(n/int64(r.channels)) / r.step)
	return frames * int64(r.channels)
}

// validRates reports whether both rates are positive. A zero step would
// interpolate the first frame forever.
func (r *Resampler) validRates() bool {
	return r.rate > 0 && r.src.SampleRate() > 0 && r.step > 0 && !math.IsInf(r.step, 0)
}

func (r *Resampler) passthrough() bool {
	return r.src.SampleRate() == r.rate
}

// nextFrame copies the next source frame into dst. It reports false once
// the source is drained.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.inPos+r.channels > r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler: %w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		if !r.lpReady {
			copy(r.lp, dst)
			r.lpReady = true
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lp[c]
			r.lp[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < len(r.hist); i++ {
		ok, err := r.nextFrame(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

func (r *Resampler) shift() error {
	oldest := r.hist[0]
	copy(r.hist[:3], r.hist[1:])
	copy(r.real[:3], r.real[1:])
	r.hist[3] = oldest

	ok, err := r.nextFrame(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples fills dst with samples at the output rate. len(dst) must be a
// multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.validRates() {
		return 0, fmt.Errorf("resampler: %w: %d Hz to %d Hz", ErrInvalidSampleRate, r.src.SampleRate(), r.rate)
	}

	if r.passthrough() {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written+r.channels <= len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written, err
			}
		}
		if !r.real[1] {
			break
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = dsp.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written += r.channels
		r.pos += r.step
	}

	if !r.real[1] {
		return written, io.EOF
	}

	return written, nil
}
