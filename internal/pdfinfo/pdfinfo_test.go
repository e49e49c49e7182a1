package pdfinfo

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestPageSizeDefaultsWhenMediaBoxMissing(t *testing.T) {
	size := pageSize(pdf.Page{})
	if size.Width != 612 || size.Height != 792 {
		t.Fatalf("size = %+v, want US Letter default", size)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := open([]byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for non-PDF bytes")
	}
}
