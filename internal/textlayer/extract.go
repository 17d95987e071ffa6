package textlayer

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/Lllllllleong/pdfvault/internal/redact"
)

// Approximate ascent and descent of a text fragment as fractions of its
// font size. The text layer reports only the baseline position, so the
// vertical extent of a span is reconstructed from these.
const (
	ascentRatio  = 0.8
	descentRatio = 0.25
)

// Fragments further apart than this many font sizes start a new span;
// smaller gaps inside a span become a single space. Baselines closer than
// lineMergeRatio font sizes belong to the same line.
const (
	spanBreakRatio = 2.0
	wordGapRatio   = 0.2
	lineMergeRatio = 0.5
)

// Letter-size fallback for pages that carry no MediaBox of their own.
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// ExtractPages reads the embedded text layer of every page. The returned
// slice always has one entry per document page, in page order; pages whose
// content stream cannot be interpreted come back with no blocks rather
// than failing the whole document.
//
// Positioning comes from the content-stream interpreter, which reports one
// placed glyph at a time, so each page gets a single synthetic block whose
// lines are rebuilt from glyph baselines.
func ExtractPages(data []byte) ([]Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF text layer: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]Page, 0, pageCount)
	for num := 1; num <= pageCount; num++ {
		p := reader.Page(num)
		page := Page{Index: num - 1, Width: defaultPageWidth, Height: defaultPageHeight}
		if !p.V.IsNull() {
			page.Width, page.Height = pageSize(p)
			if lines := extractLines(p, page.Height); len(lines) > 0 {
				page.Blocks = []Block{{Lines: lines}}
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// pageSize resolves the page MediaBox, walking up the page tree for
// inherited boxes.
func pageSize(p pdf.Page) (float64, float64) {
	v := p.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			w := mb.Index(2).Float64() - mb.Index(0).Float64()
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

// extractLines interprets the page's content stream and regroups the
// positioned glyphs into baseline-ordered lines. Content panics on streams
// it cannot interpret; such a page is treated like an image page.
func extractLines(p pdf.Page, pageHeight float64) (lines []Line) {
	defer func() {
		if recover() != nil {
			lines = nil
		}
	}()

	var fragments []pdf.Text
	for _, f := range p.Content().Text {
		// The interpreter emits a synthetic newline after each TJ array.
		if f.S == "\n" || f.S == "" {
			continue
		}
		fragments = append(fragments, f)
	}
	if len(fragments) == 0 {
		return nil
	}

	// Top to bottom, then left to right. PDF y grows upward.
	sort.Sort(pdf.TextVertical(fragments))

	var row []pdf.Text
	flushRow := func() {
		if len(row) == 0 {
			return
		}
		if spans := mergeFragments(row, pageHeight); len(spans) > 0 {
			lines = append(lines, Line{Spans: spans})
		}
		row = nil
	}
	for _, f := range fragments {
		if len(row) > 0 && !sameBaseline(row[0], f) {
			flushRow()
		}
		row = append(row, f)
	}
	flushRow()
	return lines
}

func sameBaseline(anchor, f pdf.Text) bool {
	size := anchor.FontSize
	if f.FontSize > size {
		size = f.FontSize
	}
	if size <= 0 {
		size = 12
	}
	return math.Abs(anchor.Y-f.Y) <= size*lineMergeRatio
}

// mergeFragments joins the positioned glyphs of one line into spans, left
// to right. Span boxes are flipped from the PDF's bottom-left origin into
// the top-left origin the rest of the pipeline works in.
func mergeFragments(fragments []pdf.Text, pageHeight float64) []Span {
	sorted := make([]pdf.Text, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var spans []Span
	var buf bytes.Buffer
	var x0, x1, baseline, fontSize float64

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, Span{
			Text: buf.String(),
			Box: redact.Rect{
				X0: x0,
				Y0: pageHeight - baseline - fontSize*ascentRatio,
				X1: x1,
				Y1: pageHeight - baseline + fontSize*descentRatio,
			},
		})
		buf.Reset()
	}

	for _, f := range sorted {
		size := f.FontSize
		if size <= 0 {
			size = 12
		}
		if buf.Len() == 0 {
			x0, x1, baseline, fontSize = f.X, f.X, f.Y, size
		} else {
			gap := f.X - x1
			if gap > size*spanBreakRatio {
				flush()
				x0, x1, baseline, fontSize = f.X, f.X, f.Y, size
			} else if gap > size*wordGapRatio {
				buf.WriteByte(' ')
			}
		}
		if size > fontSize {
			fontSize = size
		}
		buf.WriteString(f.S)
		if end := f.X + f.W; end > x1 {
			x1 = end
		}
	}
	flush()
	return spans
}
