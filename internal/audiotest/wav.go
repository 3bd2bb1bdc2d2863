// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes interleaved float samples as a 16-bit PCM WAV file into
// t.TempDir() and returns its path.
func WriteWAV(t testing.TB, name string, sampleRate, channels int, samples []float32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, v := range samples {
		v = min(max(v, -1), 1)
		data[i] = int(v * 32767)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finish %s: %v", path, err)
	}

	return path
}

// UnknownDataSize is the data chunk size streaming recorders leave behind.
const UnknownDataSize = 0xFFFFFFFF

// WAVHeader describes a canonical 44-byte 16-bit PCM header. Zero ByteRate
// and DataSize are derived from the other fields and the samples.
type WAVHeader struct {
	SampleRate int
	Channels   int
	ByteRate   uint32
	DataSize   uint32
}

// RawWAV encodes samples behind h verbatim, without validating it, so tests
// can build files whose header lies.
func RawWAV(h WAVHeader, samples []int16) []byte {
	channels := max(h.Channels, 1)
	byteRate := h.ByteRate
	if byteRate == 0 {
		byteRate = uint32(h.SampleRate * channels * 2)
	}
	dataSize := h.DataSize
	if dataSize == 0 {
		dataSize = uint32(len(samples) * 2)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(samples)*2))
	buf.WriteString("WAVEfmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(h.SampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, uint16(channels*2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// WriteRawWAV writes RawWAV(h, samples) into t.TempDir() and returns its path.
func WriteRawWAV(t testing.TB, name string, h WAVHeader, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, RawWAV(h, samples), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
