// SPDX-License-Identifier: EPL-2.0

// Package aubio implements beatup.Engine on top of the aubio command line
// tools. The file is handed to "aubio tempo" and "aubio beat" as is; local
// decoding is only used to report the sample rate. Beat marks are the
// microsecond timestamps aubio prints.
package aubio
