// SPDX-License-Identifier: EPL-2.0

package beatup

import "errors"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoEngine     = errors.New("unknown analysis engine")
)
