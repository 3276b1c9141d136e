package assetpipe

import "github.com/hazyhaar/iconpipe/svgdata"

// RawEntry is one loaded input file before normalization.
type RawEntry struct {
	RelativePath string
	Content      string
}

// Asset is one normalized icon, ready for validation and mapping.
// The join stage sets OriginalSvg exactly once; nothing mutates an
// Asset after that.
type Asset struct {
	ID           string
	SvgData      *svgdata.SVG
	OptimizedSvg string
	RelativePath string
	OriginalSvg  string
}

// ViewerItem is one manifest record. Struct field order fixes the JSON
// key order, which downstream viewers rely on.
type ViewerItem struct {
	Svg               *svgdata.SVG `json:"svg"`
	OriginalSvg       string       `json:"originalSvg,omitempty"`
	Width             *float64     `json:"width"`
	Height            *float64     `json:"height"`
	FileName          string       `json:"fileName"`
	FileDir           string       `json:"fileDir"`
	FileSize          string       `json:"fileSize"`
	OptimizedFileSize string       `json:"optimizedFileSize"`
	BaseSize          string       `json:"baseSize"`
	FullBaseSize      string       `json:"fullBaseSize"`
	Copypasta         string       `json:"copypasta"`
	Strategy          string       `json:"strategy"`
}

// ValidateFunc inspects normalized assets before the join stage. It may
// log diagnostics or reject the whole build by returning an error; the
// pipeline never swallows that error.
type ValidateFunc func(assets []Asset, strategy string) error

// ManifestWriter persists the ordered manifest. Implementations own the
// encoding and atomicity guarantees.
type ManifestWriter interface {
	WriteManifest(path string, items []ViewerItem) error
}
