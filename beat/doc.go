// SPDX-License-Identifier: EPL-2.0

// Package beat estimates tempo and beat positions from a mono signal.
//
// The tracker follows the dynamic-programming approach of Ellis (2007):
//
//  1. OnsetStrength turns the signal into an onset envelope, the
//     half-wave-rectified spectral flux of a log-power STFT.
//  2. EstimateTempo picks the autocorrelation lag of the envelope that scores
//     best under a log-normal prior around Config.StartBPM.
//  3. TrackBeats finds the sequence of envelope peaks that best balances
//     onset strength against deviation from the tempo period.
//
// Beat positions are STFT frame indices. FramesToTime converts them to
// seconds.
//
//	tempo, frames := beat.Track(samples, 22050, beat.DefaultConfig())
//	times := beat.FramesToTime(frames, 22050, beat.DefaultConfig().HopLength)
//
// Frames are centred: frame t covers the samples around t*HopLength, so
// frame 0 is at time zero.
package beat
