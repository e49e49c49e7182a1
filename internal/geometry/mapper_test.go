package geometry

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// fakeRenderer serves a fixed-size page image for any page, scaled from
// a notional 612x792pt page at the requested DPI.
type fakeRenderer struct {
	pages  int
	width  float64
	height float64
	calls  int
}

func (f *fakeRenderer) PageCount(pdf []byte) (int, error) {
	return f.pages, nil
}

func (f *fakeRenderer) Render(ctx context.Context, pdf []byte, pageNumber, dpi int) (image.Image, error) {
	f.calls++
	scale := float64(dpi) / 72
	w := int(math.Ceil(f.width * scale))
	h := int(math.Ceil(f.height * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0x40, A: 0xff})
		}
	}
	return img, nil
}

type failingRenderer struct{}

func (failingRenderer) PageCount(pdf []byte) (int, error) { return 1, nil }
func (failingRenderer) Render(ctx context.Context, pdf []byte, pageNumber, dpi int) (image.Image, error) {
	return nil, fmt.Errorf("render failed")
}

func TestMapRectLetterPortrait(t *testing.T) {
	// 612x792pt portrait page, box [100, 100, 300, 400], even 20pt padding.
	rect, ok := MapRect([]int{100, 100, 300, 400}, 612, 792, CaptionInclusivePadding)
	if !ok {
		t.Fatal("expected a valid rect")
	}

	want := Rect{X1: 41.2, Y1: 59.2, X2: 264.8, Y2: 257.6}
	const eps = 1e-9
	if math.Abs(rect.X1-want.X1) > eps || math.Abs(rect.Y1-want.Y1) > eps ||
		math.Abs(rect.X2-want.X2) > eps || math.Abs(rect.Y2-want.Y2) > eps {
		t.Fatalf("MapRect = %+v, want %+v", rect, want)
	}
}

func TestMapRectClampInvariant(t *testing.T) {
	const w, h = 612.0, 792.0
	boxes := [][]int{
		{0, 0, 1000, 1000},
		{0, 0, 0, 0},
		{990, 990, 1000, 1000},
		{5, 5, 10, 10},
		{100, 100, 300, 400},
		{500, 0, 1000, 500},
	}
	for _, pad := range []Padding{CaptionInclusivePadding, CaptionRecoveryPadding} {
		for _, bbox := range boxes {
			rect, ok := MapRect(bbox, w, h, pad)
			if !ok {
				t.Fatalf("MapRect(%v) unexpectedly failed", bbox)
			}
			if rect.X1 < 0 || rect.Y1 < 0 || rect.X2 > w || rect.Y2 > h {
				t.Errorf("MapRect(%v, pad %+v) = %+v escapes the page", bbox, pad, rect)
			}
			if rect.X1 > rect.X2 || rect.Y1 > rect.Y2 {
				t.Errorf("MapRect(%v, pad %+v) = %+v is inverted", bbox, pad, rect)
			}
		}
	}
}

func TestMapRectMalformed(t *testing.T) {
	cases := [][]int{
		nil,
		{},
		{1, 2, 3},
		{1, 2, 3, 4, 5},
		{300, 100, 100, 400}, // y_min > y_max
		{100, 400, 300, 100}, // x_min > x_max
	}
	for _, bbox := range cases {
		if _, ok := MapRect(bbox, 612, 792, CaptionInclusivePadding); ok {
			t.Errorf("MapRect(%v) = ok, want rejection", bbox)
		}
	}
}

func TestPolicyFromName(t *testing.T) {
	if got := PolicyFromName("caption-recovery"); got != CaptionRecoveryPadding {
		t.Errorf("caption-recovery = %+v", got)
	}
	if got := PolicyFromName("caption-inclusive"); got != CaptionInclusivePadding {
		t.Errorf("caption-inclusive = %+v", got)
	}
	if got := PolicyFromName(""); got != CaptionInclusivePadding {
		t.Errorf("default = %+v", got)
	}
}

func TestExtractPositionalAndDegraded(t *testing.T) {
	renderer := &fakeRenderer{pages: 3, width: 612, height: 792}
	m := NewMapper(renderer, 96, CaptionInclusivePadding)
	pages := []PageSize{{612, 792}, {612, 792}, {612, 792}}

	figures := []Figure{
		{Label: "Figure 1", PageNumber: 1, BBox: []int{100, 100, 300, 400}},
		{Label: "Figure 2", PageNumber: 99, BBox: []int{100, 100, 300, 400}}, // out of range
		{Label: "Figure 3", PageNumber: 2, BBox: []int{300, 100, 100, 400}},  // inverted
		{Label: "Table 1", PageNumber: 3, BBox: []int{50, 50, 500, 900}},
	}

	crops := m.Extract(context.Background(), nil, figures, pages)
	if len(crops) != len(figures) {
		t.Fatalf("got %d crops, want %d", len(crops), len(figures))
	}
	if crops[0] == nil {
		t.Error("figure 1 crop missing")
	}
	if crops[1] != nil {
		t.Error("out-of-range page should yield no crop")
	}
	if crops[2] != nil {
		t.Error("inverted bbox should yield no crop")
	}
	if crops[3] == nil {
		t.Error("table 1 crop missing")
	}

	for i, crop := range crops {
		if crop == nil {
			continue
		}
		if _, err := png.Decode(bytes.NewReader(crop)); err != nil {
			t.Errorf("crop %d is not valid PNG: %v", i, err)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	figures := []Figure{{Label: "Figure 1", PageNumber: 1, BBox: []int{100, 100, 300, 400}}}
	pages := []PageSize{{612, 792}}

	run := func() [][]byte {
		m := NewMapper(&fakeRenderer{pages: 1, width: 612, height: 792}, 96, CaptionInclusivePadding)
		return m.Extract(context.Background(), nil, figures, pages)
	}

	first, second := run(), run()
	if !bytes.Equal(first[0], second[0]) {
		t.Fatal("identical inputs produced different PNG bytes")
	}
}

func TestExtractCachesRenderedPages(t *testing.T) {
	renderer := &fakeRenderer{pages: 1, width: 612, height: 792}
	m := NewMapper(renderer, 96, CaptionInclusivePadding)
	figures := []Figure{
		{Label: "Figure 1", PageNumber: 1, BBox: []int{100, 100, 300, 400}},
		{Label: "Figure 2", PageNumber: 1, BBox: []int{500, 100, 700, 400}},
	}

	m.Extract(context.Background(), nil, figures, []PageSize{{612, 792}})
	if renderer.calls != 1 {
		t.Fatalf("page rendered %d times, want 1", renderer.calls)
	}
}

func TestExtractRenderFailureDegrades(t *testing.T) {
	m := NewMapper(failingRenderer{}, 96, CaptionInclusivePadding)
	figures := []Figure{{Label: "Figure 1", PageNumber: 1, BBox: []int{100, 100, 300, 400}}}

	crops := m.Extract(context.Background(), nil, figures, []PageSize{{612, 792}})
	if len(crops) != 1 || crops[0] != nil {
		t.Fatalf("render failure should yield a nil crop, got %v", crops)
	}
}

func TestExtractDoesNotMutateFigures(t *testing.T) {
	renderer := &fakeRenderer{pages: 1, width: 612, height: 792}
	m := NewMapper(renderer, 96, CaptionInclusivePadding)
	figures := []Figure{{Label: "Figure 1", PageNumber: 1, BBox: []int{100, 100, 300, 400}}}

	m.Extract(context.Background(), nil, figures, []PageSize{{612, 792}})

	if figures[0].Label != "Figure 1" || figures[0].PageNumber != 1 {
		t.Fatal("figure metadata changed")
	}
	want := []int{100, 100, 300, 400}
	for i, v := range figures[0].BBox {
		if v != want[i] {
			t.Fatalf("bbox changed: %v", figures[0].BBox)
		}
	}
}
