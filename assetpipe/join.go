package assetpipe

import (
	"errors"
	"io/fs"
	"path"

	"github.com/hazyhaar/iconpipe/fsguard"
)

// joinOriginals attaches the pre-optimization markup from the
// __original__ subtree to each asset. A missing counterpart is
// non-fatal: the asset keeps an empty OriginalSvg and its manifest
// entry reflects that.
func (p *Pipeline) joinOriginals(assets []Asset) []Asset {
	for i := range assets {
		target, err := p.originalPath(assets[i].RelativePath)
		if err != nil {
			p.logger.Warn("rejecting original path", "path", assets[i].RelativePath, "error", err)
			continue
		}
		data, err := fsguard.ReadFileCapped(target, p.cfg.MaxFileSize)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			p.logger.Debug("no original counterpart", "path", assets[i].RelativePath)
			continue
		case err != nil:
			p.logger.Warn("skipping unreadable original", "path", assets[i].RelativePath, "error", err)
			continue
		}
		assets[i].OriginalSvg = string(data)
	}
	return assets
}

// originalPath resolves the __original__ counterpart of a relative
// path, refusing anything that would escape the input root.
func (p *Pipeline) originalPath(rel string) (string, error) {
	return fsguard.Within(p.cfg.InputDir, path.Join(OriginalDir, rel))
}
