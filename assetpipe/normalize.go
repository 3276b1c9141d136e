package assetpipe

import (
	"fmt"
	"strings"
)

// normalize parses each raw entry into an Asset and derives its ID.
// Markup with no <svg> element aborts the whole build: unlike a missing
// file, it means the input tree itself is broken.
func (p *Pipeline) normalize(entries []RawEntry) ([]Asset, error) {
	assets := make([]Asset, 0, len(entries))
	for _, e := range entries {
		svg, err := p.parse([]byte(e.Content))
		if err != nil {
			return nil, fmt.Errorf("assetpipe: normalize %s: %w", e.RelativePath, err)
		}
		assets = append(assets, Asset{
			ID:           p.cfg.IDGen(strings.TrimPrefix(e.RelativePath, p.cfg.StripPath)),
			SvgData:      svg,
			OptimizedSvg: e.Content,
			RelativePath: e.RelativePath,
		})
	}
	return assets, nil
}
