// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always outputs 16-bit stereo, so mono files come back with both
// channels equal. The beat mapper's MonoMixer folds them back.
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//	src, err := mp3.Decoder{}.Decode(f)
//
// When the reader is an io.Seeker the source also reports its length
// through audio.Lengther.
package mp3
