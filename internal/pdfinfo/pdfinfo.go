// Package pdfinfo reads page geometry from raw PDF bytes.
// Library used: github.com/ledongthuc/pdf.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"chempaper-backend/internal/geometry"
)

// Reader inspects PDF page structure without rasterizing anything.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Count returns the number of pages.
func (Reader) Count(data []byte) (int, error) {
	r, err := open(data)
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// Sizes returns each page's media box in points, in page order. A page
// with no resolvable media box gets the US Letter default.
func (Reader) Sizes(data []byte) ([]geometry.PageSize, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}

	n := r.NumPage()
	sizes := make([]geometry.PageSize, n)
	for i := 1; i <= n; i++ {
		sizes[i-1] = pageSize(r.Page(i))
	}
	return sizes, nil
}

func open(data []byte) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return r, nil
}

func pageSize(page pdf.Page) geometry.PageSize {
	box := mediaBox(page.V)
	if box.IsNull() || box.Len() != 4 {
		return geometry.PageSize{Width: 612, Height: 792}
	}

	x1, y1 := box.Index(0).Float64(), box.Index(1).Float64()
	x2, y2 := box.Index(2).Float64(), box.Index(3).Float64()
	w, h := x2-x1, y2-y1
	if w <= 0 || h <= 0 {
		return geometry.PageSize{Width: 612, Height: 792}
	}
	return geometry.PageSize{Width: w, Height: h}
}

// mediaBox resolves MediaBox on the page or, failing that, up the Pages
// tree via Parent, as inheritance allows.
func mediaBox(v pdf.Value) pdf.Value {
	for !v.IsNull() {
		if box := v.Key("MediaBox"); !box.IsNull() {
			return box
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
