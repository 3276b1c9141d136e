// Package fsguard provides filesystem safety primitives for build inputs:
// containment checks for constructed paths and size-capped file reads.
package fsguard

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxAssetBytes is the default cap for a single asset read (2 MiB).
// Optimized icon SVGs are typically well under 100 KiB; anything larger
// is almost certainly not an icon.
const MaxAssetBytes int64 = 2 << 20

// ErrPathEscape is returned when a constructed path escapes its root.
var ErrPathEscape = errors.New("fsguard: path escapes root")

// ErrTooLarge is returned when a file exceeds the read cap.
var ErrTooLarge = errors.New("fsguard: file exceeds size cap")

// Within validates that joining root and rel does not escape root.
// Returns the cleaned joined path or ErrPathEscape.
func Within(root, rel string) (string, error) {
	if strings.Contains(rel, "..") {
		return "", ErrPathEscape
	}
	joined := filepath.Join(root, filepath.Clean("/"+rel))
	cleanRoot := filepath.Clean(root)
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return joined, nil
}

// ReadFileCapped reads the file at path, refusing files larger than
// maxBytes. A maxBytes <= 0 applies MaxAssetBytes.
func ReadFileCapped(path string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = MaxAssetBytes
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCapped(f, maxBytes)
}

// ReadCapped reads at most maxBytes from r. Returns ErrTooLarge if the
// limit is exceeded.
func ReadCapped(r io.Reader, maxBytes int64) ([]byte, error) {
	lr := io.LimitReader(r, maxBytes+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
