// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio into an audio.Source using the
// pure Go github.com/jfreymuth/oggvorbis decoder.
//
//	f, _ := os.Open("song.ogg")
//	defer f.Close()
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Samples are already float32, so no conversion happens on read. When the
// input is seekable the source reports its length through audio.Lengther.
package vorbis
