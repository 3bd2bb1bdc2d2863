// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio into an audio.Source using
// github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is supported. The source reports
// its length from the COMM chunk's frame count.
//
//	f, _ := os.Open("song.aiff")
//	defer f.Close()
//	src, err := aiff.Decoder{}.Decode(f)
//
// # Error Handling
//
//   - ErrNotAiffFile: missing FORM/AIFF header
//   - ErrUnsupportedBitDepth: sample size outside 8..32 bits
//   - ErrUnsupportedAiffLayout: no usable COMM chunk
package aiff
