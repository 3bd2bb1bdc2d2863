// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Suffix is the beat-map file extension.
	Suffix = ".beats"
	// ClickSuffix names the optional click-track render.
	ClickSuffix = ".click.wav"
)

// CheckInput reports ErrFileNotFound when path cannot be stat'ed, whether it
// is absent or hidden behind a parent that is unreadable or not a
// directory. The stat error stays wrapped. The entry is not otherwise
// inspected.
func CheckInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	return nil
}

// OutputPath replaces the extension of path with Suffix. Only the last
// extension is stripped, so "a.b.wav" maps to "a.b.beats".
func OutputPath(path string) string {
	return trimExt(path) + Suffix
}

// ClickPath is the click-track counterpart of OutputPath.
func ClickPath(path string) string {
	return trimExt(path) + ClickSuffix
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
