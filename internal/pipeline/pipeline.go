// Package pipeline detects sensitive regions in a PDF and produces the two
// durable renditions: the untouched original and a copy whose affected
// pages are overlaid with a blurred raster.
package pipeline

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Lllllllleong/pdfvault/internal/models"
	"github.com/Lllllllleong/pdfvault/internal/pii"
	"github.com/Lllllllleong/pdfvault/internal/redact"
	"github.com/Lllllllleong/pdfvault/internal/textlayer"
)

// DefaultZoom is the rasterization scale for redacted pages. Rendering at
// 2x keeps region boundaries precise without ballooning the output.
const DefaultZoom = 2.0

// Result holds both rendition byte streams and the audit trail of what was
// obscured. Region source text is already gone at this point.
type Result struct {
	Original   []byte
	Redacted   []byte
	PageCount  int
	Redactions []models.RedactionEntry
}

// Pipeline runs the detection and redaction steps for one document at a
// time. It holds no per-document state and is safe to share across
// concurrent runs.
type Pipeline struct {
	catalog  *pii.Catalog
	renderer Renderer
	zoom     float64
}

func New(catalog *pii.Catalog, renderer Renderer) *Pipeline {
	return &Pipeline{catalog: catalog, renderer: renderer, zoom: DefaultZoom}
}

// Run scans every page of the document, blurs detected regions, and
// reassembles the redacted rendition. Pages with no regions keep their
// vector content untouched; a document with no regions at all yields a
// redacted stream byte-identical to the original.
//
// The redacted rendition overlays rasters on top of the page content
// stream; it does not strip the underlying text objects. The guarantee is
// about rendered pixels, not about the raw content stream.
func (p *Pipeline) Run(logCtx *slog.Logger, data []byte, blurRadius float64) (*Result, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	pageCount, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}

	pages, err := textlayer.ExtractPages(data)
	if err != nil {
		return nil, err
	}

	perPage := make(map[int][]textlayer.Region, len(pages))
	var audit []models.RedactionEntry
	for _, page := range pages {
		regions := textlayer.Scan(page, p.catalog)
		if len(regions) == 0 {
			continue
		}
		perPage[page.Index] = regions
		for _, r := range regions {
			audit = append(audit, models.RedactionEntry{Page: r.PageIndex + 1, Kind: r.Kind.String()})
		}
	}

	result := &Result{
		Original:   data,
		PageCount:  pageCount,
		Redactions: audit,
	}

	if len(perPage) == 0 {
		logCtx.Info("No sensitive regions detected; redacted rendition equals original.")
		result.Redacted = data
		return result, nil
	}

	rasters, err := p.renderRedactedPages(data, perPage, blurRadius)
	if err != nil {
		return nil, err
	}

	redacted, err := overlayRasters(data, rasters, conf)
	if err != nil {
		return nil, err
	}
	result.Redacted = redacted

	logCtx.Info("Redaction pipeline complete.",
		"pageCount", pageCount,
		"redactedPages", len(perPage),
		"regions", len(audit),
	)
	return result, nil
}

// renderRedactedPages rasterizes each affected page at the fixed zoom,
// obscures its regions in pixel space, and returns the PNG-encoded pages
// keyed by zero-based page index.
func (p *Pipeline) renderRedactedPages(data []byte, perPage map[int][]textlayer.Region, blurRadius float64) (map[int][]byte, error) {
	doc, err := p.renderer.Open(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	rasters := make(map[int][]byte, len(perPage))
	for pageIndex, regions := range perPage {
		img, err := doc.RenderPage(pageIndex, p.zoom)
		if err != nil {
			return nil, err
		}

		boxes := make([]redact.Rect, 0, len(regions))
		for _, r := range regions {
			boxes = append(boxes, r.Box.Scale(p.zoom))
		}

		obscured := redact.Obscure(img, boxes, blurRadius)

		var buf bytes.Buffer
		if err := png.Encode(&buf, obscured); err != nil {
			return nil, fmt.Errorf("failed to encode page %d raster: %w", pageIndex+1, err)
		}
		rasters[pageIndex] = buf.Bytes()
	}
	return rasters, nil
}
