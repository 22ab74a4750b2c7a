package computo

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestNumberRowCrops_ContiguousAcrossSkippedPages(t *testing.T) {
	// Pages 2 and 3 were skipped upstream; the surviving pages still get a
	// gap-free ordinal sequence in page-then-row order.
	pages := []pageCrops{
		{page: 1, rows: []croppedRow{
			{box: Rect{Y0: 46, Y1: 224}, image: []byte{1}},
			{box: Rect{Y0: 212, Y1: 424}, image: []byte{2}},
		}},
		{page: 4, rows: []croppedRow{
			{box: Rect{Y0: 46, Y1: 150}, image: []byte{3}},
			{box: Rect{Y0: 140, Y1: 300}, image: []byte{4}},
			{box: Rect{Y0: 290, Y1: 460}, image: []byte{5}},
		}},
	}

	crops := numberRowCrops(pages)
	if len(crops) != 5 {
		t.Fatalf("expected 5 crops, got %d", len(crops))
	}

	for i, crop := range crops {
		if crop.GlobalOrdinal != i+1 {
			t.Errorf("crop %d: ordinal = %d, want %d", i, crop.GlobalOrdinal, i+1)
		}
	}

	// Row indexes restart on each page.
	wantPages := []int{1, 1, 4, 4, 4}
	wantRows := []int{1, 2, 1, 2, 3}
	for i, crop := range crops {
		if crop.Page != wantPages[i] || crop.RowIndex != wantRows[i] {
			t.Errorf("crop %d: page/row = %d/%d, want %d/%d",
				i, crop.Page, crop.RowIndex, wantPages[i], wantRows[i])
		}
	}

	// Row boxes and images ride along unchanged.
	if crops[2].Box.Y1 != 150 || crops[2].ImageBytes[0] != 3 {
		t.Errorf("crop 2 carries wrong payload: %+v", crops[2])
	}
}

func TestNumberRowCrops_Empty(t *testing.T) {
	if crops := numberRowCrops(nil); len(crops) != 0 {
		t.Errorf("expected no crops, got %d", len(crops))
	}
}

func TestEncodeCrop(t *testing.T) {
	rendered := image.NewRGBA(image.Rect(0, 0, 200, 200))
	crop, err := encodeCrop(rendered, Rect{X0: 10, Y0: 10, X1: 60, Y1: 40}, 2)
	if err != nil {
		t.Fatalf("encodeCrop failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(crop))
	if err != nil {
		t.Fatalf("crop is not valid PNG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("crop size = %dx%d, want 100x60", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodeCrop_OutsideRenderedArea(t *testing.T) {
	rendered := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if _, err := encodeCrop(rendered, Rect{X0: 200, Y0: 200, X1: 300, Y1: 300}, 1); err == nil {
		t.Error("expected error for crop outside the rendered area")
	}
}
