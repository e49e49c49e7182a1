package geometry

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
)

func errPageOutOfRange(page, count int) error {
	return fmt.Errorf("page %d out of range (document has %d pages)", page, count)
}

func errMalformedBBox(bbox []int) error {
	return fmt.Errorf("malformed bbox %v", bbox)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropPNG cuts the point-space rect out of a page image rendered at the
// given scale (DPI/72) and encodes it as PNG. Outward rounding keeps edge
// pixels that a strict truncation would drop.
func cropPNG(img image.Image, r Rect, scale float64) ([]byte, error) {
	bounds := img.Bounds()
	px := image.Rect(
		bounds.Min.X+int(math.Floor(r.X1*scale)),
		bounds.Min.Y+int(math.Floor(r.Y1*scale)),
		bounds.Min.X+int(math.Ceil(r.X2*scale)),
		bounds.Min.Y+int(math.Ceil(r.Y2*scale)),
	).Intersect(bounds)

	if px.Empty() || px.Dx() < 1 || px.Dy() < 1 {
		return nil, fmt.Errorf("degenerate crop region %v", px)
	}

	sub, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("page image type %T does not support cropping", img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sub.SubImage(px)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
