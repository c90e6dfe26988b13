// Package security holds input sanitation helpers for data that crosses a
// trust boundary, currently upload filenames forwarded to the backend.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafeFilename reduces an upload filename to a bare base name and rejects
// values that could smuggle a path. The backend stores the name verbatim,
// so traversal components must never leave this process.
func SafeFilename(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("security: empty filename")
	}
	if strings.ContainsAny(trimmed, "\x00") {
		return "", fmt.Errorf("security: filename contains NUL")
	}

	// Strip any directory part, whichever separator convention produced it.
	base := filepath.Base(filepath.ToSlash(trimmed))
	base = base[strings.LastIndex(base, "\\")+1:]

	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("security: invalid filename %q", name)
	}
	return base, nil
}
