// SPDX-License-Identifier: EPL-2.0

// Package beatup writes beat maps: plain text files listing the time, in
// seconds, of every beat detected in an audio file.
//
// # Quick Start
//
//	res, err := beatup.Map(ctx, "song.wav", beatup.Options{Stdout: os.Stdout})
//	// song.beats now holds one timestamp per line
//
// Map checks that the input exists, loads it, analyzes it, converts beat
// positions to seconds and writes "<input without extension>.beats" next to
// the input. A missing input returns ErrFileNotFound and writes nothing.
//
// # Engines
//
// The decode, analyze and convert steps sit behind the Engine interface,
// so the analysis backend can change without touching path handling or
// output:
//
//   - NativeEngine decodes with the formats/* packages, mixes to mono,
//     resamples to 22050 Hz and tracks beats with package beat.
//   - aubio.Engine shells out to the aubio command line tool.
//
// # Output Format
//
// Each line is one timestamp rendered with strconv.FormatFloat(t, 'f', -1, 64):
// the shortest decimal that parses back to the same float64, never in
// exponent form and independent of locale. There is no header and no tempo
// line. Zero detected beats produce an empty file.
//
// # Supported Formats
//
// NewRegistry wires WAV, MP3, Ogg Vorbis and AIFF. The decoder is chosen by
// file extension, or by the leading magic bytes when the extension is unknown.
package beatup
