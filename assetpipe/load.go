package assetpipe

import (
	"path/filepath"

	"github.com/hazyhaar/iconpipe/fsguard"
)

// loadEntries reads each selected file and returns (relativePath,
// content) pairs in input order. Unreadable and empty files are skipped
// with a warning rather than failing the build; a hole in the manifest
// is the documented tolerance for them.
func (p *Pipeline) loadEntries(paths []string) []RawEntry {
	entries := make([]RawEntry, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(p.cfg.InputDir, path)
		if err != nil {
			p.logger.Warn("skipping icon outside input root", "path", path, "error", err)
			continue
		}
		rel = filepath.ToSlash(rel)

		data, err := fsguard.ReadFileCapped(path, p.cfg.MaxFileSize)
		if err != nil {
			p.logger.Warn("skipping unreadable icon", "path", rel, "error", err)
			continue
		}
		if len(data) == 0 {
			p.logger.Warn("skipping empty icon", "path", rel)
			continue
		}
		entries = append(entries, RawEntry{RelativePath: rel, Content: string(data)})
	}
	return entries
}
