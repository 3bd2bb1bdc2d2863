// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// RawReader reads interleaved little-endian integer PCM straight from r
// until EOF. It serves data chunks whose declared size cannot be trusted.
// 8-bit samples are returned unsigned, as stored.
type RawReader struct {
	r      io.Reader
	format *goaudio.Format
	width  int // bytes per sample
	buf    []byte
}

func NewRawReader(r io.Reader, format *goaudio.Format, bitDepth int) (*RawReader, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("raw pcm: unsupported bit depth %d", bitDepth)
	}
	return &RawReader{r: r, format: format, width: bitDepth / 8}, nil
}

func (d *RawReader) Format() *goaudio.Format { return d.format }

// PCMBuffer fills buf.Data and returns the number of whole samples read. A
// short count marks the end of the stream. A trailing partial sample is
// dropped.
func (d *RawReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	need := len(buf.Data) * d.width
	if cap(d.buf) < need {
		d.buf = make([]byte, need)
	}
	d.buf = d.buf[:need]

	m, err := io.ReadFull(d.r, d.buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}

	n := m / d.width
	for i := range n {
		b := d.buf[i*d.width : (i+1)*d.width]
		switch d.width {
		case 1:
			buf.Data[i] = int(b[0])
		case 2:
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			buf.Data[i] = int(v<<8) >> 8
		case 4:
			buf.Data[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}
	return n, nil
}
