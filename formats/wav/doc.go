// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE audio into an audio.Source.
//
// Parsing is delegated to github.com/go-audio/wav, so files with LIST, fact
// or other extra chunks decode the same as the canonical 44-byte layout.
//
// # Supported Formats
//
//   - Integer PCM (format tag 1, or WAVE_FORMAT_EXTENSIBLE)
//   - 8-bit unsigned, 16/24/32-bit signed
//   - Any channel count and sample rate
//
// IEEE float WAV and compressed formats are rejected with
// ErrOnlyPCMSupported.
//
// # Decoding
//
//	f, _ := os.Open("song.wav")
//	defer f.Close()
//	src, err := wav.Decoder{}.Decode(f)
//
// The reader should be an io.ReadSeeker. Plain readers are buffered fully in
// memory first.
//
// The returned source implements audio.Lengther using the size of the data
// chunk.
package wav
