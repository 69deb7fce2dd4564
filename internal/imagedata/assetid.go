package imagedata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidAssetID = errors.New("invalid image asset id")

var assetIDPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z]+)$`)

// AssetRef is the decoded form of an image asset id, e.g.
// image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg.
type AssetRef struct {
	Hash      string
	Width     int
	Height    int
	Extension string
}

// ParseAssetID decodes an image asset id.
func ParseAssetID(id string) (AssetRef, error) {
	m := assetIDPattern.FindStringSubmatch(id)
	if m == nil {
		return AssetRef{}, fmt.Errorf("%w: %q", ErrInvalidAssetID, id)
	}

	w, err := strconv.Atoi(m[2])
	if err != nil {
		return AssetRef{}, fmt.Errorf("%w: width: %v", ErrInvalidAssetID, err)
	}
	h, err := strconv.Atoi(m[3])
	if err != nil {
		return AssetRef{}, fmt.Errorf("%w: height: %v", ErrInvalidAssetID, err)
	}
	if w == 0 || h == 0 {
		return AssetRef{}, fmt.Errorf("%w: zero dimension in %q", ErrInvalidAssetID, id)
	}

	return AssetRef{Hash: m[1], Width: w, Height: h, Extension: m[4]}, nil
}

// ID re-encodes the reference as an asset id.
func (r AssetRef) ID() string {
	return fmt.Sprintf("image-%s-%dx%d-%s", r.Hash, r.Width, r.Height, r.Extension)
}

// AspectRatio returns width divided by height.
func (r AssetRef) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}
