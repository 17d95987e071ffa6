package pipeline

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Each raster was rendered from its own page at a fixed zoom, so its
// aspect ratio matches the page exactly and a relative scale of 1 covers
// the full canvas.
const rasterStampDesc = "pos:c, scale:1.0 rel, rot:0, op:1"

// overlayRasters stamps each redacted raster over its page, on top of the
// existing content, and returns the reassembled document. Pages without a
// raster pass through with their content streams unchanged, so page count
// and order always match the input.
func overlayRasters(data []byte, rasters map[int][]byte, conf *pdfmodel.Configuration) ([]byte, error) {
	stamps := make(map[int]*pdfmodel.Watermark, len(rasters))
	for pageIndex, raster := range rasters {
		wm, err := api.ImageWatermarkForReader(bytes.NewReader(raster), rasterStampDesc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("failed to build raster stamp for page %d: %w", pageIndex+1, err)
		}
		stamps[pageIndex+1] = wm
	}

	var out bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(data), &out, stamps, conf); err != nil {
		return nil, fmt.Errorf("failed to reassemble redacted document: %w", err)
	}
	return out.Bytes(), nil
}
