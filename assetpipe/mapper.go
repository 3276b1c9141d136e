package assetpipe

import (
	"fmt"
	"path"
	"strconv"

	"github.com/hazyhaar/iconpipe/svgdata"
)

// mapItems produces one ViewerItem per asset, preserving order.
func (p *Pipeline) mapItems(assets []Asset) []ViewerItem {
	items := make([]ViewerItem, 0, len(assets))
	for _, a := range assets {
		size := a.SvgData.Size()
		dir, name := splitRelPath(a.RelativePath)
		items = append(items, ViewerItem{
			Svg:               a.SvgData,
			OriginalSvg:       a.OriginalSvg,
			Width:             size.Width,
			Height:            size.Height,
			FileName:          name,
			FileDir:           dir,
			FileSize:          kbSize(a.OriginalSvg),
			OptimizedFileSize: kbSize(a.OptimizedSvg),
			BaseSize:          baseSize(size),
			FullBaseSize:      fullBaseSize(size),
			Copypasta:         p.cfg.CopypastaGen(a.ID),
			Strategy:          p.cfg.Strategy,
		})
	}
	return items
}

// splitRelPath splits "social/twitter.svg" into ("/social",
// "twitter.svg"); root-level files map to dir "/".
func splitRelPath(rel string) (dir, name string) {
	dir, name = path.Dir(rel), path.Base(rel)
	if dir == "." {
		return "/", name
	}
	return "/" + dir, name
}

// kbSize renders a byte length as kilobytes with two decimals, the
// label viewers show next to each icon.
func kbSize(s string) string {
	return fmt.Sprintf("%.2f KB", float64(len(s))/1024)
}

// baseSize labels an icon by its height, the dimension icon grids group
// on. Unknown height groups under "unknown".
func baseSize(size svgdata.Size) string {
	if size.Height == nil {
		return "unknown"
	}
	return formatDim(size.Height) + "px"
}

// fullBaseSize renders "<width>x<height>px", printing "null" for a
// missing dimension.
func fullBaseSize(size svgdata.Size) string {
	return formatDim(size.Width) + "x" + formatDim(size.Height) + "px"
}

func formatDim(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
