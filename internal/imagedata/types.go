// Package imagedata turns Sanity image references into responsive image data
// (URLs, dimensions and placeholder hints) consumed by gatsby-plugin-image.
package imagedata

// Fit is a Sanity CDN fit mode.
type Fit string

const (
	FitClip    Fit = "clip"
	FitCrop    Fit = "crop"
	FitFill    Fit = "fill"
	FitFillMax Fit = "fillmax"
	FitMax     Fit = "max"
	FitScale   Fit = "scale"
	FitMin     Fit = "min"
)

// Placeholder selects what is shown while the main image loads.
type Placeholder string

const (
	PlaceholderDominantColor Placeholder = "dominantColor"
	PlaceholderBlurred       Placeholder = "blurred"
	PlaceholderNone          Placeholder = "none"
)

// Layout controls how the image resizes with its container.
type Layout string

const (
	LayoutFixed       Layout = "fixed"
	LayoutFullWidth   Layout = "fullWidth"
	LayoutConstrained Layout = "constrained"
)

// Location identifies the content source an image belongs to.
type Location struct {
	ProjectID string
	Dataset   string
}

// Dimensions of a source image.
type Dimensions struct {
	Width       int     `yaml:"width" json:"width"`
	Height      int     `yaml:"height" json:"height"`
	AspectRatio float64 `yaml:"aspectRatio,omitempty" json:"aspectRatio,omitempty"`
}

// PaletteSwatch is a single color extracted from an image.
type PaletteSwatch struct {
	Background string  `yaml:"background" json:"background"`
	Foreground string  `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Population float64 `yaml:"population,omitempty" json:"population,omitempty"`
}

// Palette holds the colors extracted from an image.
type Palette struct {
	Dominant *PaletteSwatch `yaml:"dominant,omitempty" json:"dominant,omitempty"`
	Vibrant  *PaletteSwatch `yaml:"vibrant,omitempty" json:"vibrant,omitempty"`
	Muted    *PaletteSwatch `yaml:"muted,omitempty" json:"muted,omitempty"`
}

// Metadata is the analysis Sanity stores alongside an image asset.
type Metadata struct {
	Dimensions Dimensions `yaml:"dimensions" json:"dimensions"`
	LQIP       string     `yaml:"lqip,omitempty" json:"lqip,omitempty"`
	Palette    *Palette   `yaml:"palette,omitempty" json:"palette,omitempty"`
}

// Asset is a sanity.imageAsset document.
type Asset struct {
	ID        string    `yaml:"_id" json:"_id"`
	URL       string    `yaml:"url,omitempty" json:"url,omitempty"`
	Extension string    `yaml:"extension,omitempty" json:"extension,omitempty"`
	MimeType  string    `yaml:"mimeType,omitempty" json:"mimeType,omitempty"`
	Metadata  *Metadata `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Args are the resolved arguments of a gatsbyImageData field.
type Args struct {
	Layout               Layout
	Placeholder          Placeholder
	Fit                  Fit
	Width                int
	Height               int
	AspectRatio          float64
	Sizes                string
	BackgroundColor      string
	Formats              []string
	OutputPixelDensities []float64
	Breakpoints          []int
}

// ImageData is the gatsby-plugin-image IGatsbyImageData shape.
type ImageData struct {
	Layout          Layout           `json:"layout"`
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	BackgroundColor string           `json:"backgroundColor,omitempty"`
	Images          Images           `json:"images"`
	Placeholder     *PlaceholderData `json:"placeholder,omitempty"`
}

// Images groups the fallback source with per-format sources.
type Images struct {
	Fallback *Source  `json:"fallback,omitempty"`
	Sources  []Source `json:"sources"`
}

// Source is a single <source> or <img> candidate set.
type Source struct {
	Src    string `json:"src,omitempty"`
	SrcSet string `json:"srcSet"`
	Sizes  string `json:"sizes"`
	Type   string `json:"type,omitempty"`
}

// PlaceholderData carries a low resolution fallback image.
type PlaceholderData struct {
	Fallback string `json:"fallback"`
}
