// Package pdftest builds minimal, valid PDF documents for tests. Pages use
// uncompressed content streams and the built-in Helvetica font with an
// explicit widths table, so both the text-layer reader and pdfcpu can
// process the output without external fixtures.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth  = 612
	pageHeight = 792

	fontSize    = 12.0
	lineSpacing = 20.0
	marginLeft  = 72.0
	firstLineY  = 700.0

	// Every glyph 500/1000 units wide keeps width math in tests trivial:
	// a character advances fontSize/2 points.
	glyphWidth = 500
)

// SinglePage returns a one-page PDF with the given text lines.
func SinglePage(lines ...string) []byte {
	return MultiPage([][]string{lines})
}

// MultiPage returns a PDF with one entry per page, each a list of text
// lines drawn top to bottom.
func MultiPage(pages [][]string) []byte {
	type object struct {
		num  int
		body []byte
	}
	var objects []object

	fontNum := 3 + 2*len(pages)
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	objects = append(objects,
		object{1, []byte("<< /Type /Catalog /Pages 2 0 R >>")},
		object{2, []byte(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
			strings.Join(kids, " "), len(pages)))},
	)

	for i, lines := range pages {
		pageNum := 3 + 2*i
		contentNum := pageNum + 1

		var content bytes.Buffer
		content.WriteString(fmt.Sprintf("BT\n/F1 %g Tf\n%g %g Td\n", fontSize, marginLeft, firstLineY))
		for j, line := range lines {
			if j > 0 {
				content.WriteString(fmt.Sprintf("0 -%g Td\n", lineSpacing))
			}
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escapeString(line)))
		}
		content.WriteString("ET")

		objects = append(objects,
			object{pageNum, []byte(fmt.Sprintf(
				"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
				pageWidth, pageHeight, fontNum, contentNum))},
			object{contentNum, []byte(fmt.Sprintf(
				"<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.Bytes()))},
		)
	}

	widths := make([]string, 95)
	for i := range widths {
		widths[i] = fmt.Sprintf("%d", glyphWidth)
	}
	objects = append(objects, object{fontNum, []byte(fmt.Sprintf(
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] /Encoding /WinAnsiEncoding >>",
		strings.Join(widths, " ")))})

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int, len(objects))
	for _, obj := range objects {
		offsets[obj.num] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", obj.num, obj.body)
	}

	xrefOffset := out.Len()
	size := len(objects) + 1
	fmt.Fprintf(&out, "xref\n0 %d\n", size)
	out.WriteString("0000000000 65535 f \n")
	for num := 1; num < size; num++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefOffset)
	return out.Bytes()
}

// LineBaseline returns the PDF-space baseline y of the given zero-based
// line index, matching the layout SinglePage produces.
func LineBaseline(lineIndex int) float64 {
	return firstLineY - float64(lineIndex)*lineSpacing
}

// PageHeight returns the fixture page height in points.
func PageHeight() float64 { return pageHeight }

// TextWidth returns the drawn width in points of a string in the fixture
// font.
func TextWidth(s string) float64 {
	return float64(len(s)) * fontSize * glyphWidth / 1000
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
