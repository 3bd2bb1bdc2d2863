// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/beatup/audio"
	"github.com/ik5/beatup/internal/pcm"
)

// Decoder reads AIFF and uncompressed AIFF-C files through
// github.com/go-audio/aiff. Samples are signed big-endian PCM.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("aiff: reading data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("aiff: %w: header declares %d Hz", audio.ErrInvalidSampleRate, format.SampleRate)
	}

	return pcm.NewSource(dec, pcm.Info{
		Name:       "aiff",
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   bitDepth,
		Length:     int64(dec.NumSampleFrames) * int64(format.NumChannels),
	}), nil
}
