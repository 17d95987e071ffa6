// Package textlayer models a page's structured text layer and scans it
// for sensitive regions. Detection is text-layer-only: PII that exists
// solely as image content is out of reach here.
package textlayer

import (
	"strings"

	"github.com/Lllllllleong/pdfvault/internal/pii"
	"github.com/Lllllllleong/pdfvault/internal/redact"
)

// Span is a contiguous run of text with one bounding box, in page units
// with the origin at the top-left corner (the orientation a renderer uses).
type Span struct {
	Text string
	Box  redact.Rect
}

// Line is an ordered sequence of spans sharing a baseline.
type Line struct {
	Spans []Span
}

// Block is an ordered sequence of lines. A block with no lines is a
// non-text block (for example a pure image) and contributes no regions.
type Block struct {
	Lines []Line
}

// Page is one page's text layer plus its dimensions in page units.
type Page struct {
	Index  int
	Width  float64
	Height float64
	Blocks []Block
}

// Region is one detected sensitive area. Box covers the whole span the
// match occurred in, in page units. SourceText is kept only for the
// duration of the pipeline run and never persisted.
type Region struct {
	PageIndex  int
	Box        redact.Rect
	Kind       pii.Kind
	SourceText string
}

// Scan applies the catalog to every span of the page and returns one
// region per (span, matched kind) pair, in block, line, span, kind order.
// Repeated same-kind hits inside one span share its box and collapse into
// a single region.
func Scan(page Page, catalog *pii.Catalog) []Region {
	var regions []Region
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			if !catalog.Contains(lineText(line)) {
				continue
			}
			for _, span := range line.Spans {
				seen := pii.Kind(-1)
				for _, m := range catalog.Match(span.Text) {
					// Match groups hits by kind, so repeats are adjacent.
					if m.Kind == seen {
						continue
					}
					seen = m.Kind
					regions = append(regions, Region{
						PageIndex:  page.Index,
						Box:        span.Box,
						Kind:       m.Kind,
						SourceText: span.Text,
					})
				}
			}
		}
	}
	return regions
}

func lineText(line Line) string {
	parts := make([]string, 0, len(line.Spans))
	for _, s := range line.Spans {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
