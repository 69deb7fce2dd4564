package imagedata

import (
	"fmt"
	"net/url"
	"strconv"
)

const cdnBase = "https://cdn.sanity.io/images"

// SourceURL returns the untransformed CDN url of the referenced image.
func SourceURL(ref AssetRef, loc Location) string {
	return fmt.Sprintf("%s/%s/%s/%s-%dx%d.%s", cdnBase, loc.ProjectID, loc.Dataset, ref.Hash, ref.Width, ref.Height, ref.Extension)
}

// URLOptions are the transformations applied by the image CDN.
type URLOptions struct {
	Width  int
	Height int
	Fit    Fit
	Format string
}

// BuildURL returns the CDN url for ref with the given transformations.
// An empty Format lets the CDN negotiate the output format.
func BuildURL(ref AssetRef, loc Location, opts URLOptions) string {
	q := url.Values{}
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		q.Set("fit", string(opts.Fit))
	}
	switch opts.Format {
	case "", "auto":
		q.Set("auto", "format")
	default:
		q.Set("fm", opts.Format)
	}

	return SourceURL(ref, loc) + "?" + q.Encode()
}
