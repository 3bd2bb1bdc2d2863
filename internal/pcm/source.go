// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts integer PCM readers to the float32 audio.Source
// contract: the go-audio aiff decoder, and RawReader for WAV data chunks.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/beatup/internal/dsp"
)

// Reader is the part of the go-audio wav and aiff decoders a Source reads
// through.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Info describes the stream behind a Reader.
type Info struct {
	Name       string // prefix for wrapped errors, e.g. "wav"
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned marks zero-centred-at-midpoint samples (8-bit WAV).
	Unsigned bool
	// Length in interleaved samples, 0 if unknown.
	Length int64
}

type Source struct {
	dec    Reader
	info   Info
	scale  float32
	bias   int
	intBuf *goaudio.IntBuffer
	done   bool
}

func NewSource(dec Reader, info Info) *Source {
	s := &Source{
		dec:   dec,
		info:  info,
		scale: dsp.PCMScale(info.BitDepth),
	}
	if info.Unsigned {
		s.bias = int(s.scale)
	}
	return s
}

func (s *Source) SampleRate() int { return s.info.SampleRate }
func (s *Source) Channels() int   { return s.info.Channels }
func (s *Source) Close() error    { return nil }
func (s *Source) Len() int64      { return s.info.Length }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.info.BitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%s: %w", s.info.Name, err)
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.bias) / s.scale
	}

	// go-audio signals the end with a short read rather than io.EOF.
	if n < len(dst) || err == io.EOF {
		s.done = true
		return n, io.EOF
	}
	return n, nil
}
