package geometry

import (
	"context"
	"image"

	"chempaper-backend/internal/shared/telemetry"
)

// PageSize is a page's media box in points.
type PageSize struct {
	Width  float64
	Height float64
}

// defaultPageSize is US Letter, used when page metadata is unavailable.
var defaultPageSize = PageSize{Width: 612, Height: 792}

// Padding widens a mapped rect, in page points.
type Padding struct {
	Top        float64
	Bottom     float64
	Horizontal float64
}

// CaptionInclusivePadding assumes the reported box already covers the
// caption and pads evenly.
var CaptionInclusivePadding = Padding{Top: 20, Bottom: 20, Horizontal: 20}

// CaptionRecoveryPadding reaches further below the box to pick up captions
// the model left out.
var CaptionRecoveryPadding = Padding{Top: 10, Bottom: 40, Horizontal: 20}

// PolicyFromName maps a config value to a padding policy.
func PolicyFromName(name string) Padding {
	if name == "caption-recovery" {
		return CaptionRecoveryPadding
	}
	return CaptionInclusivePadding
}

// Figure is the geometric slice of a reported figure.
type Figure struct {
	Label      string
	PageNumber int
	BBox       []int
}

// Rect is an axis-aligned region in page points.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// PageRenderer rasterizes one page of a PDF.
type PageRenderer interface {
	PageCount(pdf []byte) (int, error)
	Render(ctx context.Context, pdf []byte, pageNumber, dpi int) (image.Image, error)
}

// Mapper converts normalized bounding boxes into PNG crops.
type Mapper struct {
	Renderer PageRenderer
	DPI      int
	Padding  Padding
}

func NewMapper(renderer PageRenderer, dpi int, padding Padding) *Mapper {
	if dpi <= 0 {
		dpi = 200
	}
	return &Mapper{Renderer: renderer, DPI: dpi, Padding: padding}
}

// MapRect converts a [y_min, x_min, y_max, x_max] box on the 0-1000 scale
// into a padded, clamped rect on a width×height page. Returns false for a
// malformed box (wrong arity or inverted coordinates).
func MapRect(bbox []int, width, height float64, pad Padding) (Rect, bool) {
	if len(bbox) != 4 {
		return Rect{}, false
	}
	yMin, xMin, yMax, xMax := float64(bbox[0]), float64(bbox[1]), float64(bbox[2]), float64(bbox[3])
	if yMin > yMax || xMin > xMax {
		return Rect{}, false
	}
	r := Rect{
		X1: clamp(0, width, xMin/1000*width-pad.Horizontal),
		Y1: clamp(0, height, yMin/1000*height-pad.Top),
		X2: clamp(0, width, xMax/1000*width+pad.Horizontal),
		Y2: clamp(0, height, yMax/1000*height+pad.Bottom),
	}
	return r, true
}

// Extract produces one PNG per figure, positionally. A nil entry means
// that figure's crop failed; no failure aborts the batch. The input
// figures are never modified.
func (m *Mapper) Extract(ctx context.Context, pdf []byte, figures []Figure, pages []PageSize) [][]byte {
	crops := make([][]byte, len(figures))
	if len(figures) == 0 {
		return crops
	}

	pageCount, err := m.Renderer.PageCount(pdf)
	if err != nil {
		telemetry.Error("geometry.page_count", map[string]any{"error": err.Error()})
		return crops
	}

	rendered := make(map[int]image.Image)
	for i, fig := range figures {
		crop, err := m.extractOne(ctx, pdf, fig, pageCount, pages, rendered)
		if err != nil {
			telemetry.Error("geometry.figure_skipped", map[string]any{
				"label":  fig.Label,
				"page":   fig.PageNumber,
				"bbox":   fig.BBox,
				"reason": err.Error(),
			})
			continue
		}
		crops[i] = crop
	}
	return crops
}

func (m *Mapper) extractOne(ctx context.Context, pdf []byte, fig Figure, pageCount int, pages []PageSize, rendered map[int]image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fig.PageNumber < 1 || fig.PageNumber > pageCount {
		return nil, errPageOutOfRange(fig.PageNumber, pageCount)
	}

	size := defaultPageSize
	if idx := fig.PageNumber - 1; idx < len(pages) && pages[idx].Width > 0 && pages[idx].Height > 0 {
		size = pages[idx]
	}

	rect, ok := MapRect(fig.BBox, size.Width, size.Height, m.Padding)
	if !ok {
		return nil, errMalformedBBox(fig.BBox)
	}

	img, ok := rendered[fig.PageNumber]
	if !ok {
		var err error
		img, err = m.Renderer.Render(ctx, pdf, fig.PageNumber, m.DPI)
		if err != nil {
			return nil, err
		}
		rendered[fig.PageNumber] = img
	}

	return cropPNG(img, rect, float64(m.DPI)/72)
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
