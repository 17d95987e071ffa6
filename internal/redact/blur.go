// Package redact obscures rectangular regions of a rendered page raster.
package redact

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// DefaultRadius is the blur radius used when the caller does not choose one.
const DefaultRadius = 10

// Obscure returns a copy of src in which every region's pixel rectangle is
// replaced by a Gaussian-blurred rendering of the same area. Pixels outside
// every region are bit-identical to src. Regions may overlap: each region
// copies from the same whole-image blur, so repeated application over a
// shared sub-area composes to the identical result and never restores
// detail. The transform is lossy; there is no inverse filter that recovers
// the original text.
func Obscure(src image.Image, regions []Rect, radius float64) *image.NRGBA {
	out := imaging.Clone(src)
	if len(regions) == 0 {
		return out
	}
	if radius <= 0 {
		radius = DefaultRadius
	}

	blurred := imaging.Blur(src, radius)
	bounds := out.Bounds()
	for _, region := range regions {
		if region.Empty() {
			continue
		}
		px := region.Pixels().Intersect(bounds)
		if px.Empty() {
			continue
		}
		draw.Draw(out, px, blurred, px.Min, draw.Src)
	}
	return out
}
