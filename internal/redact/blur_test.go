package redact

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerboard builds a raster with maximal high-frequency content, so a
// blur is unmistakable.
func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// hfEnergy sums absolute horizontal neighbor differences of the red
// channel inside rect. Blurred areas score much lower.
func hfEnergy(img image.Image, rect image.Rectangle) int {
	var total int
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X-1; x++ {
			r0, _, _, _ := img.At(x, y).RGBA()
			r1, _, _, _ := img.At(x+1, y).RGBA()
			d := int(r0>>8) - int(r1>>8)
			if d < 0 {
				d = -d
			}
			total += d
		}
	}
	return total
}

func samePixels(a, b image.Image, rect image.Rectangle) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestObscureNoRegionsLeavesImageUntouched(t *testing.T) {
	src := checkerboard(64, 64)

	out := Obscure(src, nil, 10)

	assert.True(t, samePixels(src, out, src.Bounds()))
}

func TestObscureBlursOnlyTheRegion(t *testing.T) {
	src := checkerboard(64, 64)
	region := Rect{X0: 16, Y0: 16, X1: 48, Y1: 48}

	out := Obscure(src, []Rect{region}, 10)

	inside := image.Rect(16, 16, 48, 48)
	require.Less(t, hfEnergy(out, inside.Inset(2)), hfEnergy(src, inside.Inset(2)),
		"region must lose high-frequency content")

	// Strips strictly outside the region are bit-identical.
	assert.True(t, samePixels(src, out, image.Rect(0, 0, 64, 16)))
	assert.True(t, samePixels(src, out, image.Rect(0, 48, 64, 64)))
	assert.True(t, samePixels(src, out, image.Rect(0, 16, 16, 48)))
	assert.True(t, samePixels(src, out, image.Rect(48, 16, 64, 48)))
}

func TestObscureOverlappingRegionsNeverRestoreDetail(t *testing.T) {
	src := checkerboard(64, 64)
	regions := []Rect{
		{X0: 8, Y0: 8, X1: 40, Y1: 40},
		{X0: 24, Y0: 24, X1: 56, Y1: 56},
	}

	once := Obscure(src, regions, 10)
	twice := Obscure(once, regions, 10)

	overlap := image.Rect(24, 24, 40, 40)
	assert.LessOrEqual(t, hfEnergy(twice, overlap), hfEnergy(once, overlap))
	assert.Less(t, hfEnergy(once, overlap), hfEnergy(src, overlap))
}

func TestObscureClampsRegionsToImageBounds(t *testing.T) {
	src := checkerboard(32, 32)

	// Region partly off-canvas must not panic and must still blur the
	// covered part.
	out := Obscure(src, []Rect{{X0: 24, Y0: 24, X1: 100, Y1: 100}}, 10)

	assert.Less(t, hfEnergy(out, image.Rect(26, 26, 32, 32)), hfEnergy(src, image.Rect(26, 26, 32, 32)))
	assert.True(t, samePixels(src, out, image.Rect(0, 0, 32, 24)))
}

func TestObscureDefaultsRadius(t *testing.T) {
	src := checkerboard(32, 32)

	out := Obscure(src, []Rect{{X0: 0, Y0: 0, X1: 32, Y1: 32}}, 0)

	assert.Less(t, hfEnergy(out, src.Bounds()), hfEnergy(src, src.Bounds()))
}
