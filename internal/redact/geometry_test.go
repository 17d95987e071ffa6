package redact

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectScale(t *testing.T) {
	box := Rect{X0: 10.5, Y0: 20.25, X1: 30, Y1: 40}

	scaled := box.Scale(2)

	assert.Equal(t, Rect{X0: 21, Y0: 40.5, X1: 60, Y1: 80}, scaled)
	// The input box is untouched.
	assert.Equal(t, Rect{X0: 10.5, Y0: 20.25, X1: 30, Y1: 40}, box)
}

// Pinned pixel boxes for the 2x render factor the pipeline uses.
func TestRectScaleToPixelsAt2x(t *testing.T) {
	tests := []struct {
		name string
		box  Rect
		want image.Rectangle
	}{
		{
			name: "integral box",
			box:  Rect{X0: 10, Y0: 20, X1: 30, Y1: 40},
			want: image.Rect(20, 40, 60, 80),
		},
		{
			name: "fractional coordinates truncate toward zero",
			box:  Rect{X0: 10.9, Y0: 20.4, X1: 30.7, Y1: 40.3},
			want: image.Rect(21, 40, 61, 80),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.box.Scale(2).Pixels())
		})
	}
}

func TestRectEmpty(t *testing.T) {
	assert.True(t, Rect{X0: 5, Y0: 5, X1: 5, Y1: 10}.Empty())
	assert.True(t, Rect{X0: 5, Y0: 10, X1: 10, Y1: 10}.Empty())
	assert.False(t, Rect{X0: 5, Y0: 5, X1: 6, Y1: 6}.Empty())
}
