package assetpipe

import (
	"os"
	"path/filepath"
	"strings"
)

// selectFiles keeps the regular files outside the __original__ subtree,
// preserving input order. Directories and anything that cannot be
// stat'ed are dropped.
func (p *Pipeline) selectFiles(paths []string) []string {
	originalRoot := filepath.Join(p.cfg.InputDir, OriginalDir)
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		if underDir(originalRoot, path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			p.logger.Debug("skipping unstattable path", "path", path, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files
}

// underDir reports whether path lies within dir (or is dir itself).
func underDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
