package pipeline

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Renderer rasterizes document pages. The pipeline depends on this
// interface so tests can substitute a synthetic renderer.
type Renderer interface {
	Open(data []byte) (Doc, error)
}

// Doc is an open document handle for page rendering. Page indexes are
// zero-based.
type Doc interface {
	RenderPage(pageIndex int, zoom float64) (image.Image, error)
	Close() error
}

// MuPDFRenderer renders pages through the MuPDF bindings.
type MuPDFRenderer struct{}

func (MuPDFRenderer) Open(data []byte) (Doc, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	return &muDoc{doc: doc}, nil
}

type muDoc struct {
	doc *fitz.Document
}

// RenderPage rasterizes one page. Zoom 1.0 corresponds to 72 DPI, so a
// point in page units maps to zoom pixels.
func (d *muDoc) RenderPage(pageIndex int, zoom float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(pageIndex, 72*zoom)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex+1, err)
	}
	return img, nil
}

func (d *muDoc) Close() error {
	return d.doc.Close()
}
