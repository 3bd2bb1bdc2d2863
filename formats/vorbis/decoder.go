// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/beatup/audio"
)

// oggReader is the subset of oggvorbis.Reader the source needs, so tests can
// substitute it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	// Read returns the number of interleaved values decoded, always a
	// multiple of Channels().
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }

// Len converts the per-channel length oggvorbis reports into interleaved
// samples. It is 0 when the reader could not seek to the end.
func (s *source) Len() int64 {
	return s.dec.Length() * int64(s.dec.Channels())
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis only fills whole frames.
	dst = dst[:len(dst)-len(dst)%s.dec.Channels()]
	if len(dst) == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("vorbis: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams via github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() < 1 {
		return nil, audio.ErrNoChannels
	}
	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("vorbis: %w", audio.ErrInvalidSampleRate)
	}

	return &source{dec: dec}, nil
}
