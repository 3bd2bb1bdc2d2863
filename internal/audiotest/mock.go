// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources and fixture writers for
// tests. It mirrors audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one sample for one channel.
type Waveform func(frame, channel int) float32

// MockSource generates frames from a Waveform.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   Waveform
	// ReportLen makes Len return the exact length, the way decoders with a
	// known duration do.
	ReportLen bool
	// ReadErr is returned by the first ReadSamples call once set.
	ReadErr error
}

func NewMockSource(sampleRate, channels, frames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource emits frame/frames on every channel, which makes dropped or
// reordered frames easy to spot.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) Len() int64 {
	if !m.ReportLen {
		return 0
	}
	return int64(m.frames * m.channels)
}

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += count

	if m.generated >= m.frames {
		return count * m.channels, io.EOF
	}
	return count * m.channels, nil
}
