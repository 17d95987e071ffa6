package textlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/pdfvault/internal/pdftest"
	"github.com/Lllllllleong/pdfvault/internal/pii"
)

func TestExtractPagesReadsTextLayer(t *testing.T) {
	data := pdftest.SinglePage("Email: a@b.com", "Call 212-555-0100")

	pages, err := ExtractPages(data)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, 0, page.Index)
	assert.InDelta(t, 612, page.Width, 0.01)
	assert.InDelta(t, 792, page.Height, 0.01)

	require.Len(t, page.Blocks, 1)
	require.Len(t, page.Blocks[0].Lines, 2)

	var texts []string
	for _, line := range page.Blocks[0].Lines {
		for _, s := range line.Spans {
			texts = append(texts, s.Text)
		}
	}
	assert.Equal(t, []string{"Email: a@b.com", "Call 212-555-0100"}, texts)
}

func TestExtractPagesSpanBoxes(t *testing.T) {
	line := "Email: a@b.com"
	data := pdftest.SinglePage(line)

	pages, err := ExtractPages(data)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Blocks, 1)
	require.Len(t, pages[0].Blocks[0].Lines, 1)
	require.Len(t, pages[0].Blocks[0].Lines[0].Spans, 1)

	box := pages[0].Blocks[0].Lines[0].Spans[0].Box
	baseline := pdftest.LineBaseline(0)
	pageH := pdftest.PageHeight()

	assert.InDelta(t, 72, box.X0, 0.5)
	assert.InDelta(t, 72+pdftest.TextWidth(line), box.X1, 0.5)
	assert.InDelta(t, pageH-baseline-12*ascentRatio, box.Y0, 0.5)
	assert.InDelta(t, pageH-baseline+12*descentRatio, box.Y1, 0.5)
}

func TestExtractPagesSeparatesBaselines(t *testing.T) {
	data := pdftest.SinglePage("Email: a@b.com", "Call 212-555-0100")

	pages, err := ExtractPages(data)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Blocks, 1)
	lines := pages[0].Blocks[0].Lines
	require.Len(t, lines, 2)

	first := lines[0].Spans[0].Box
	second := lines[1].Spans[0].Box
	assert.False(t, first.Empty())
	assert.False(t, second.Empty())
	assert.Greater(t, second.Y0, first.Y1, "lines keep distinct vertical extents")
}

func TestExtractPagesMultiPage(t *testing.T) {
	data := pdftest.MultiPage([][]string{
		{"first page, nothing sensitive"},
		{"ssn 123-45-6789"},
		{},
	})

	pages, err := ExtractPages(data)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, 1, pages[1].Index)
	regions := Scan(pages[1], pii.NewCatalog())
	require.Len(t, regions, 1)
	assert.Equal(t, pii.NationalID, regions[0].Kind)
	assert.Equal(t, 1, regions[0].PageIndex)

	// The empty page still appears, with no text blocks.
	assert.Empty(t, pages[2].Blocks)
}

func TestExtractPagesRejectsGarbage(t *testing.T) {
	_, err := ExtractPages([]byte("not a pdf"))
	assert.Error(t, err)
}
