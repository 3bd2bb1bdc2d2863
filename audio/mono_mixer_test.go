// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/beatup/internal/audiotest"
)

func TestMonoMixer_Mix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(frame, channel int) float32
		want     float32
	}{
		{"mono passthrough", 1, func(int, int) float32 { return 0.5 }, 0.5},
		{"stereo average", 2, func(_, ch int) float32 { return 0.4 + 0.2*float32(ch) }, 0.5},
		{"quad average", 4, func(_, ch int) float32 { return float32(ch) / 10 }, 0.15},
		{"six channels", 6, func(_, ch int) float32 { return float32(ch%2) - 0.5 }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, tt.value)
			mixer := NewMonoMixer(src)

			if mixer.Channels() != 1 {
				t.Errorf("Channels() = %d, want 1", mixer.Channels())
			}
			if mixer.SampleRate() != 8000 {
				t.Errorf("SampleRate() = %d, want 8000", mixer.SampleRate())
			}

			buf := make([]float32, 10)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 10 {
				t.Fatalf("ReadSamples() n = %d, want 10", n)
			}

			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 5))

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 5 {
		t.Errorf("ReadSamples() n = %d, want 5", n)
	}

	n, err = mixer.ReadSamples(buf)
	if err != io.EOF || n != 0 {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 100))

	n, err := mixer.ReadSamples(nil)
	if err != nil || n != 0 {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_NoChannels(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 0, 100))

	_, err := mixer.ReadSamples(make([]float32, 4))
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("ReadSamples() error = %v, want ErrNoChannels", err)
	}
}

func TestMonoMixer_Len(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 300)
	src.ReportLen = true

	if got := NewMonoMixer(src).Len(); got != 300 {
		t.Errorf("Len() = %d, want 300", got)
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 1<<30, 440)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		_, _ = mixer.ReadSamples(buf)
	}
}
