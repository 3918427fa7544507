// Package security confines generated file names to an output directory.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape means a name would resolve outside its root.
var ErrPathEscape = errors.New("path escapes output root")

// JoinWithin joins name onto root and rejects results that leave root.
// The check is lexical: names are cleaned and must be relative, so it works
// for directories that do not exist yet and for in-memory filesystems.
func JoinWithin(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty output name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s is absolute", ErrPathEscape, name)
	}

	cleanName := filepath.Clean(name)
	if cleanName == "." {
		return "", fmt.Errorf("output name %q resolves to the root itself", name)
	}
	// Reject names that escape the root
	if cleanName == ".." || strings.HasPrefix(cleanName, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s attempts to escape %s", ErrPathEscape, name, root)
	}

	return filepath.Join(root, cleanName), nil
}
