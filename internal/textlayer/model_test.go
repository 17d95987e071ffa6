package textlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/pdfvault/internal/pii"
	"github.com/Lllllllleong/pdfvault/internal/redact"
)

func span(text string, box redact.Rect) Span {
	return Span{Text: text, Box: box}
}

func TestScanFindsRegionsPerSpanAndKind(t *testing.T) {
	emailBox := redact.Rect{X0: 72, Y0: 90, X1: 200, Y1: 102}
	phoneBox := redact.Rect{X0: 72, Y0: 110, X1: 210, Y1: 122}

	page := Page{
		Index:  0,
		Width:  612,
		Height: 792,
		Blocks: []Block{{
			Lines: []Line{
				{Spans: []Span{span("Email: a@b.com", emailBox)}},
				{Spans: []Span{span("Call 212-555-0100", phoneBox)}},
				{Spans: []Span{span("nothing sensitive", redact.Rect{X0: 72, Y0: 130, X1: 180, Y1: 142})}},
			},
		}},
	}

	regions := Scan(page, pii.NewCatalog())

	require.Len(t, regions, 2)
	assert.Equal(t, pii.Email, regions[0].Kind)
	assert.Equal(t, emailBox, regions[0].Box)
	assert.Equal(t, "Email: a@b.com", regions[0].SourceText)
	assert.Equal(t, pii.Phone, regions[1].Kind)
	assert.Equal(t, phoneBox, regions[1].Box)
	assert.Equal(t, 0, regions[1].PageIndex)
}

func TestScanSkipsBlocksWithoutLines(t *testing.T) {
	page := Page{
		Index: 3,
		Blocks: []Block{
			{}, // image block, no text lines
			{Lines: []Line{{Spans: []Span{span("ssn 123-45-6789", redact.Rect{X0: 10, Y0: 10, X1: 90, Y1: 20})}}}},
		},
	}

	regions := Scan(page, pii.NewCatalog())

	require.Len(t, regions, 1)
	assert.Equal(t, pii.NationalID, regions[0].Kind)
	assert.Equal(t, 3, regions[0].PageIndex)
}

func TestScanEmptyPage(t *testing.T) {
	assert.Empty(t, Scan(Page{Index: 0}, pii.NewCatalog()))
}

func TestScanCollapsesRepeatedKindInOneSpan(t *testing.T) {
	box := redact.Rect{X0: 10, Y0: 10, X1: 400, Y1: 22}
	page := Page{
		Blocks: []Block{{
			Lines: []Line{{Spans: []Span{span("a@b.com and c@d.com", box)}}},
		}},
	}

	regions := Scan(page, pii.NewCatalog())

	// Two hits of the same kind share the span's box; one region covers
	// both.
	require.Len(t, regions, 1)
	assert.Equal(t, pii.Email, regions[0].Kind)
	assert.Equal(t, box, regions[0].Box)
}

func TestScanOneSpanMatchingTwoKinds(t *testing.T) {
	box := redact.Rect{X0: 10, Y0: 10, X1: 300, Y1: 22}
	page := Page{
		Blocks: []Block{{
			Lines: []Line{{Spans: []Span{span("a@b.com / 212-555-0100", box)}}},
		}},
	}

	regions := Scan(page, pii.NewCatalog())

	// Two kinds in one span produce two regions with the same box;
	// overlapping redaction is intentional over-redaction.
	require.Len(t, regions, 2)
	assert.Equal(t, regions[0].Box, regions[1].Box)
}
