// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src and returns every sample it produced. bufferSize is the
// size of each read and is rounded down to a whole number of frames.
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := max(src.Channels(), 1)
	bufferSize = max(bufferSize-bufferSize%channels, channels)

	var out []float32
	if n, ok := sourceLen(src); ok {
		out = make([]float32, 0, n+int64(bufferSize))
	}

	buf := make([]float32, bufferSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}
	}
}
