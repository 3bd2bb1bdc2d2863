// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"testing"

	"github.com/ik5/beatup/audio"
	"github.com/ik5/beatup/internal/audiotest"
)

func openFixture(t *testing.T, sampleRate, channels int, samples []float32) *os.File {
	t.Helper()

	path := audiotest.WriteWAV(t, "fixture.wav", sampleRate, channels, samples)
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	return f
}

func TestDecoder_ValidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"mono 8k", 8000, 1},
		{"stereo 44.1k", 44100, 2},
		{"mono 22.05k", 22050, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := []float32{0, 0.25, -0.25, 0.5, -0.5, 0}
			src, err := Decoder{}.Decode(openFixture(t, tt.sampleRate, tt.channels, samples))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if src.SampleRate() != tt.sampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.sampleRate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}
		})
	}
}

func TestDecoder_SamplesRoundTrip(t *testing.T) {
	t.Parallel()

	want := []float32{0, 0.5, -0.5, 0.25, -0.25, 0.999}
	src, err := Decoder{}.Decode(openFixture(t, 8000, 1, want))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if l, ok := src.(interface{ Len() int64 }); !ok || l.Len() != int64(len(want)) {
		t.Errorf("Len() hint missing or wrong")
	}

	buf := make([]float32, 64)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}

	for i := range want {
		if math.Abs(float64(buf[i]-want[i])) > 1.0/16384 {
			t.Errorf("sample %d = %v, want ≈%v", i, buf[i], want[i])
		}
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestDecoder_PlainReader(t *testing.T) {
	t.Parallel()

	data, err := io.ReadAll(openFixture(t, 16000, 1, []float32{0.1, 0.2, 0.3}))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	// io.MultiReader hides the Seek method.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", src.SampleRate())
	}
}

func TestDecoder_NotWAV(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"garbage":   []byte("NOT A WAV FILE DATA AT ALL, JUST TEXT"),
		"empty":     {},
		"riff only": []byte("RIFF\x00\x00\x00\x00"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func ramp16(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i * 16)
	}
	return out
}

func TestDecoder_UntrustedDataSize(t *testing.T) {
	t.Parallel()

	samples := ramp16(22050)
	tests := []struct {
		name  string
		size  uint32
		extra []byte
	}{
		{"streamed", audiotest.UnknownDataSize, nil},
		{"streamed with partial sample", audiotest.UnknownDataSize, []byte{0x7f}},
		{"size past end of file", 10 * 22050 * 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := audiotest.RawWAV(audiotest.WAVHeader{SampleRate: 44100, Channels: 1, DataSize: tt.size}, samples)
			file = append(file, tt.extra...)

			src, err := Decoder{}.Decode(bytes.NewReader(file))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if l, ok := src.(interface{ Len() int64 }); !ok || l.Len() != int64(len(samples)) {
				t.Errorf("Len() hint missing or not %d", len(samples))
			}

			got, err := audio.ReadAll(src, 4096)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(got) != len(samples) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
			}
			for i := range samples {
				if want := float32(samples[i]) / 32768; got[i] != want {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestDecoder_MalformedHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  audiotest.WAVHeader
		samples []int16
		wantErr error
	}{
		{"zero sample rate", audiotest.WAVHeader{SampleRate: 0, Channels: 1, ByteRate: 2}, ramp16(1000), audio.ErrInvalidSampleRate},
		{"streamed without data", audiotest.WAVHeader{SampleRate: 8000, Channels: 1, DataSize: audiotest.UnknownDataSize}, nil, ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(audiotest.RawWAV(tt.header, tt.samples)))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecoder_DeclaredSizeKeepsTrailingChunks(t *testing.T) {
	t.Parallel()

	samples := ramp16(100)
	file := audiotest.RawWAV(audiotest.WAVHeader{SampleRate: 8000, Channels: 1}, samples)
	// A LIST chunk after the samples must not be decoded as audio.
	file = append(file, []byte("LIST\x04\x00\x00\x00INFO")...)

	src, err := Decoder{}.Decode(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := audio.ReadAll(src, 64)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(samples) {
		t.Errorf("decoded %d samples, want %d", len(got), len(samples))
	}
}
