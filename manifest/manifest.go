// Package manifest encodes viewer manifests and writes them to disk.
//
// A manifest is a single JSON array holding every ViewerItem in build
// order. Files are written atomically (write .tmp then rename) so a
// consumer never observes a partial manifest.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hazyhaar/iconpipe/assetpipe"
)

// Encode renders items as one JSON array. Key order inside each object
// follows the ViewerItem field order, markup keeps its <, > and & bytes
// verbatim, and an empty build yields "[]".
func Encode(items []assetpipe.ViewerItem) ([]byte, error) {
	if items == nil {
		items = []assetpipe.ViewerItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FileWriter persists manifests to the local filesystem. The zero value
// is ready to use.
type FileWriter struct {
	// Mode is the file mode for created manifests (default 0644).
	Mode os.FileMode
}

var _ assetpipe.ManifestWriter = (*FileWriter)(nil)

// WriteManifest encodes items and writes them to path atomically,
// creating parent directories as needed.
func (w *FileWriter) WriteManifest(path string, items []assetpipe.ViewerItem) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}
	mode := w.Mode
	if mode == 0 {
		mode = 0644
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("manifest: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return fmt.Errorf("manifest: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("manifest: rename %s: %w", path, err)
	}
	return nil
}
