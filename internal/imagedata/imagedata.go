package imagedata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// EveryBreakpoint is the default set of candidate widths for full width images.
var EveryBreakpoint = []int{320, 654, 768, 1024, 1366, 1600, 1920, 2048, 2560, 3440, 3840, 4096}

var (
	defaultFixedDensities       = []float64{1, 2}
	defaultConstrainedDensities = []float64{0.25, 0.5, 1, 2}
)

// resolvedImage is an image node reduced to what is needed to build urls.
type resolvedImage struct {
	ref      AssetRef
	metadata *Metadata
}

// GetGatsbyImageData builds responsive image data for node.
// node may be an asset id, an AssetRef, an Asset, or a decoded reference object
// ({_ref}, {_id, metadata}, {asset: ...}). Nodes that cannot be resolved yield nil.
func GetGatsbyImageData(ctx context.Context, node any, args Args, loc Location) (*ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, ok := resolveNode(node)
	if !ok {
		return nil, nil
	}
	args = withDefaults(args)

	width, height := targetDimensions(img.ref, args)
	widths := candidateWidths(args, width, img.ref.Width)
	sizes := args.Sizes
	if sizes == "" {
		sizes = defaultSizes(args.Layout, width)
	}

	data := &ImageData{
		Layout: args.Layout,
		Width:  width,
		Height: height,
		Images: Images{
			Fallback: &Source{
				Src:    BuildURL(img.ref, loc, URLOptions{Width: width, Height: height, Fit: args.Fit}),
				SrcSet: srcSet(img.ref, loc, args, width, height, widths, ""),
				Sizes:  sizes,
			},
			Sources: []Source{},
		},
	}

	for _, format := range args.Formats {
		if format == "" || format == "auto" {
			continue
		}
		data.Images.Sources = append(data.Images.Sources, Source{
			SrcSet: srcSet(img.ref, loc, args, width, height, widths, format),
			Sizes:  sizes,
			Type:   "image/" + format,
		})
	}

	switch args.Placeholder {
	case PlaceholderDominantColor:
		if img.metadata != nil && img.metadata.Palette != nil && img.metadata.Palette.Dominant != nil {
			data.BackgroundColor = img.metadata.Palette.Dominant.Background
		}
	case PlaceholderBlurred:
		if img.metadata != nil && img.metadata.LQIP != "" {
			data.Placeholder = &PlaceholderData{Fallback: img.metadata.LQIP}
		}
	}
	if args.BackgroundColor != "" {
		data.BackgroundColor = args.BackgroundColor
	}

	return data, nil
}

func withDefaults(args Args) Args {
	if args.Layout == "" {
		args.Layout = LayoutConstrained
	}
	if args.Placeholder == "" {
		args.Placeholder = PlaceholderDominantColor
	}
	if args.Fit == "" {
		args.Fit = FitFill
	}
	if len(args.Formats) == 0 {
		args.Formats = []string{"auto"}
	}
	return args
}

// GatsbyFit maps a Sanity fit mode onto the equivalent gatsby-plugin-image fit.
func GatsbyFit(f Fit) string {
	switch f {
	case FitClip, FitMax, FitMin:
		return "inside"
	case FitScale:
		return "fill"
	default:
		return "cover"
	}
}

func targetDimensions(ref AssetRef, args Args) (int, int) {
	ratio := ref.AspectRatio()
	if args.AspectRatio > 0 {
		ratio = args.AspectRatio
	}

	w, h := args.Width, args.Height
	if args.Layout == LayoutFullWidth {
		w, h = ref.Width, 0
	}

	switch {
	case w > 0 && h > 0:
		if GatsbyFit(args.Fit) == "inside" {
			src := ref.AspectRatio()
			if float64(w)/float64(h) > src {
				w = round(float64(h) * src)
			} else {
				h = round(float64(w) / src)
			}
		}
	case w > 0:
		h = round(float64(w) / ratio)
	case h > 0:
		w = round(float64(h) * ratio)
	default:
		w = ref.Width
		h = round(float64(w) / ratio)
	}

	// Never wider than the source; keep the requested proportions.
	if w > ref.Width {
		h = round(float64(h) * float64(ref.Width) / float64(w))
		w = ref.Width
	}

	return max(w, 1), max(h, 1)
}

// candidateWidths returns the sorted, de-duplicated widths offered in a srcset.
// Candidates wider than the source are dropped.
func candidateWidths(args Args, width, srcWidth int) []int {
	var widths []int

	switch args.Layout {
	case LayoutFixed:
		densities := args.OutputPixelDensities
		if len(densities) == 0 {
			densities = defaultFixedDensities
		}
		widths = append(widths, width)
		for _, d := range densities {
			if w := round(float64(width) * d); w > 0 && w <= srcWidth {
				widths = append(widths, w)
			}
		}
	case LayoutFullWidth:
		breakpoints := args.Breakpoints
		if len(breakpoints) == 0 {
			breakpoints = EveryBreakpoint
		}
		for _, bp := range breakpoints {
			if bp <= srcWidth {
				widths = append(widths, bp)
			}
		}
		if len(widths) == 0 || slices.Max(breakpoints) > srcWidth {
			widths = append(widths, srcWidth)
		}
	default:
		densities := args.OutputPixelDensities
		if len(densities) == 0 {
			densities = defaultConstrainedDensities
		}
		for _, d := range densities {
			if w := round(float64(width) * d); w > 0 && w <= srcWidth {
				widths = append(widths, w)
			}
		}
		widths = append(widths, min(width, srcWidth))
	}

	slices.Sort(widths)
	return slices.Compact(widths)
}

func srcSet(ref AssetRef, loc Location, args Args, width, height int, widths []int, format string) string {
	entries := make([]string, 0, len(widths))
	for _, w := range widths {
		h := round(float64(w) * float64(height) / float64(width))
		u := BuildURL(ref, loc, URLOptions{Width: w, Height: h, Fit: args.Fit, Format: format})

		if args.Layout == LayoutFixed {
			density := float64(w) / float64(width)
			entries = append(entries, fmt.Sprintf("%s %sx", u, strconv.FormatFloat(density, 'f', -1, 64)))
			continue
		}
		entries = append(entries, fmt.Sprintf("%s %dw", u, w))
	}
	return strings.Join(entries, ",\n")
}

func defaultSizes(layout Layout, width int) string {
	switch layout {
	case LayoutFixed:
		return fmt.Sprintf("%dpx", width)
	case LayoutFullWidth:
		return "100vw"
	default:
		return fmt.Sprintf("(min-width: %dpx) %dpx, 100vw", width, width)
	}
}

func resolveNode(node any) (resolvedImage, bool) {
	switch n := node.(type) {
	case nil:
		return resolvedImage{}, false
	case string:
		ref, err := ParseAssetID(n)
		if err != nil {
			return resolvedImage{}, false
		}
		return resolvedImage{ref: ref}, true
	case AssetRef:
		return resolvedImage{ref: n}, true
	case *Asset:
		if n == nil {
			return resolvedImage{}, false
		}
		return resolveNode(*n)
	case Asset:
		ref, err := ParseAssetID(n.ID)
		if err != nil {
			return resolvedImage{}, false
		}
		return resolvedImage{ref: ref, metadata: n.Metadata}, true
	case map[string]any:
		if ref, ok := n["_ref"].(string); ok {
			return resolveNode(ref)
		}
		if id, ok := n["_id"].(string); ok {
			img, ok := resolveNode(id)
			if !ok {
				return resolvedImage{}, false
			}
			img.metadata = decodeMetadata(n["metadata"])
			return img, true
		}
		if asset, ok := n["asset"]; ok && asset != nil {
			return resolveNode(asset)
		}
	}
	return resolvedImage{}, false
}

// decodeMetadata converts a loosely typed metadata object into Metadata.
func decodeMetadata(v any) *Metadata {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil
	}
	return &md
}

func round(f float64) int {
	return int(math.Round(f))
}
