// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// FormatTime renders t as the shortest decimal that round-trips to the same
// float64, without an exponent.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// WriteBeats writes one timestamp per line, in the given order.
func WriteBeats(w io.Writer, times []float64) error {
	bw := bufio.NewWriter(w)
	for _, t := range times {
		bw.WriteString(FormatTime(t))
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write beats: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes the beat map into it. A
// failure part way through leaves a partial file behind.
func WriteFile(path string, times []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create beat map: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close beat map: %w", cerr)
		}
	}()

	return WriteBeats(f, times)
}
