// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/beatup/audio"
	"github.com/ik5/beatup/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder reads RIFF/WAVE files holding integer PCM at 8, 16, 24 or 32 bits.
// go-audio validates the header; samples are read from the data chunk
// directly. Chunks other than fmt and data are skipped. A data chunk with
// the streaming size 0xFFFFFFFF, or one that claims more bytes than the
// file holds, is read to the end of the file.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: reading data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, ErrOnlyPCMSupported
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if dec.SampleRate == 0 {
		return nil, fmt.Errorf("wav: %w: header declares 0 Hz", audio.ErrInvalidSampleRate)
	}

	info := pcm.Info{
		Name:       "wav",
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   bitDepth,
		Unsigned:   bitDepth == 8,
	}
	width := int64(bitDepth / 8)

	offset, declared, err := dataChunk(rs)
	if err != nil {
		return nil, err
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	available := end - offset

	length := int64(declared)
	if declared == unknownSize || length > available {
		if available < width {
			return nil, fmt.Errorf("%w: streamed data chunk is empty", ErrNoData)
		}
		length = available
	}
	length -= length % width

	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	raw, err := pcm.NewRawReader(io.LimitReader(rs, length), &goaudio.Format{
		NumChannels: info.Channels,
		SampleRate:  info.SampleRate,
	}, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	info.Length = length / width
	return pcm.NewSource(raw, info), nil
}
