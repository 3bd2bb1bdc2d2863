// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the beat mapper decodes
// through.
//
//   - Source: a stream of interleaved float32 samples in [-1, 1]
//   - Decoder and Registry: format lookup by file extension
//   - MonoMixer: averages channels into one
//   - Resampler: cubic sample rate conversion with a light low-pass when
//     downsampling
//   - ReadAll: drains a Source into memory
//
// # Pipelines
//
// Everything that transforms audio is itself a Source, so stages chain:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
//	chain := audio.NewResampler(mono, 22050)
//	samples, err := audio.ReadAll(chain, 4096)
//
// Mixing before resampling means the resampler interpolates one channel
// instead of several.
//
// # Length hints
//
// Decoders that know their duration implement Lengther. MonoMixer and
// Resampler forward the hint scaled to their own output, and ReadAll uses it
// to allocate once.
//
// # End of stream
//
// ReadSamples may return a final non-zero count together with io.EOF.
// Callers must consume n before checking err.
package audio
