// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// unknownSize is the data size written by recorders that stream to a pipe
// and never seek back to patch the header.
const unknownSize = 0xFFFFFFFF

// dataChunk walks the RIFF chunk list and returns the offset of the first
// data chunk's payload and its declared size. go-audio's parser pads odd
// sizes in uint32 and turns unknownSize into 0, so the raw value is read
// here.
func dataChunk(rs io.ReadSeeker) (int64, uint32, error) {
	pos, err := rs.Seek(12, io.SeekStart) // RIFF, size, WAVE
	if err != nil {
		return 0, 0, fmt.Errorf("wav: %w", err)
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(rs, hdr[:]); err != nil {
			return 0, 0, ErrNoData
		}
		pos += int64(len(hdr))

		size := binary.LittleEndian.Uint32(hdr[4:])
		if string(hdr[:4]) == "data" {
			return pos, size, nil
		}

		if pos, err = rs.Seek(int64(size)+int64(size&1), io.SeekCurrent); err != nil {
			return 0, 0, fmt.Errorf("wav: %w", err)
		}
	}
}
