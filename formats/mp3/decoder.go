// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/beatup/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is the subset of gomp3.Decoder the source needs, so tests can
// substitute it.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec  mp3Reader
	buf  []byte
	odd  bool // buf[0] holds the first byte of a split sample
	done bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

// Len returns the stream length in interleaved samples, or 0 when go-mp3
// could not determine it.
func (s *source) Len() int64 {
	n := s.dec.Length()
	if n <= 0 {
		return 0
	}
	return n / bytesPerSample
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:len(s.buf)])
		s.buf = buf
	}
	s.buf = s.buf[:need]

	start := 0
	if s.odd {
		start = 1
	}

	n, err := s.dec.Read(s.buf[start:])
	n += start

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768
	}

	s.odd = n%bytesPerSample == 1
	if s.odd {
		s.buf[0] = s.buf[n-1]
	}

	if err == io.EOF {
		s.done = true
		return samples, io.EOF
	}
	if err != nil {
		return samples, fmt.Errorf("mp3: %w", err)
	}
	return samples, nil
}

// Decoder decodes MPEG-1/2 Layer III streams via github.com/hajimehoshi/go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("mp3: %w", audio.ErrInvalidSampleRate)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
