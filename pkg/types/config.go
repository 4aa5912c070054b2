package types

// ConversionConfig holds settings for figure conversion.
// Per prd001-figures R5.1-R5.4.
type ConversionConfig struct {
	// InkscapePath overrides PATH lookup of the inkscape binary.
	InkscapePath string `json:"inkscape,omitempty" yaml:"inkscape,omitempty"`

	// ImagesDir is the directory searched when figures are named without
	// a path (default "img").
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// ExportDPI is the resolution passed to the converter (default 96,
	// the SVG user-unit density).
	ExportDPI int `json:"export_dpi" yaml:"export_dpi"`
}

// SceneConfig holds settings for layered scene export.
// Per prd002-scenes R5.1-R5.2.
type SceneConfig struct {
	// RasterDPI is the density for PNG scene export (default 180).
	RasterDPI int `json:"raster_dpi" yaml:"raster_dpi"`

	// OutDir is the directory scene outputs are written to. Empty means
	// alongside the source drawing.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`
}
