package redact

import "image"

// Rect is an axis-aligned box. Units depend on context: page points for
// regions coming out of the text layer, pixels after scaling to a render.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Scale maps the box from page units into the pixel space of a page
// rendered at the given zoom factor. Each coordinate is multiplied by
// factor; no rounding happens here.
func (r Rect) Scale(factor float64) Rect {
	return Rect{
		X0: r.X0 * factor,
		Y0: r.Y0 * factor,
		X1: r.X1 * factor,
		Y1: r.Y1 * factor,
	}
}

// Pixels converts the box to an image rectangle. Coordinates truncate
// toward zero, matching what a renderer does when it maps a point into a
// pixel address.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(int(r.X0), int(r.Y0), int(r.X1), int(r.Y1))
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}
