// SPDX-License-Identifier: EPL-2.0

package aubio

import "errors"

var (
	ErrInvalidVersion = errors.New("aubio: invalid version")
	ErrBadOutput      = errors.New("aubio: unexpected output")
)
