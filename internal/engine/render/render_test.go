package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"labelr/internal/engine/layout"
)

func testLabel(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func a4Params() layout.Params {
	return layout.Params{
		LabelWidth:  38,
		LabelHeight: 100,
		PaperWidth:  210,
		PaperHeight: 297,
		Margins:     layout.Insets{Top: 1, Bottom: 1, Left: 1, Right: 1},
		Padding:     layout.Insets{Top: 1, Bottom: 1, Left: 1, Right: 1},
		Spacing:     1,
	}
}

func TestPagePreview(t *testing.T) {
	pv, err := PagePreview(testLabel(120, 300), a4Params(), 900)
	if err != nil {
		t.Fatalf("PagePreview() error = %v", err)
	}

	if pv.Grid.Columns != 5 || pv.Grid.Rows != 2 {
		t.Errorf("grid = %dx%d, want 5x2", pv.Grid.Columns, pv.Grid.Rows)
	}

	b := pv.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatalf("preview has empty bounds: %v", b)
	}
	// A4 at 900 max px: scale = 900/297 ~ 3.03 px/mm, within [2, 12].
	if b.Dy() < 297*2 || b.Dy() > 297*12 {
		t.Errorf("preview height %d outside clamped scale range", b.Dy())
	}
	// Portrait page stays portrait.
	if b.Dx() >= b.Dy() {
		t.Errorf("preview %dx%d not portrait", b.Dx(), b.Dy())
	}
}

func TestPagePreviewScaleClampSmallPaper(t *testing.T) {
	p := a4Params()
	p.PaperWidth = 33
	p.PaperHeight = 25
	p.LabelWidth = 20
	p.LabelHeight = 15

	pv, err := PagePreview(testLabel(40, 30), p, 900)
	if err != nil {
		t.Fatalf("PagePreview() error = %v", err)
	}

	// 900/33 would be ~27 px/mm; clamp caps it at 12.
	if got := pv.Image.Bounds().Dx(); got > 33*12 {
		t.Errorf("preview width %d exceeds max scale", got)
	}
}

func TestPagePreviewRejectsDegenerateLayout(t *testing.T) {
	p := a4Params()
	p.Margins.Left = 500

	if _, err := PagePreview(testLabel(10, 10), p, 900); err == nil {
		t.Error("PagePreview accepted margins exceeding the paper")
	}
}

func TestPagePDF(t *testing.T) {
	var buf bytes.Buffer
	grid, err := PagePDF(testLabel(120, 300), a4Params(), &buf)
	if err != nil {
		t.Fatalf("PagePDF() error = %v", err)
	}

	if grid.Count() != 10 {
		t.Errorf("Count() = %d, want 10", grid.Count())
	}
	if buf.Len() == 0 {
		t.Fatal("PagePDF wrote no bytes")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header: %q", buf.Bytes()[:8])
	}
}

func TestPagePDFAutoFit(t *testing.T) {
	label := testLabel(378, 189)

	p := a4Params()
	p.AutoFit = true
	p = layout.ResolveAutoFit(p, 378, 189)

	var buf bytes.Buffer
	grid, err := PagePDF(label, p, &buf)
	if err != nil {
		t.Fatalf("PagePDF() error = %v", err)
	}
	if grid.Columns < 1 || grid.Rows < 1 {
		t.Errorf("auto-fit grid = %dx%d, want at least 1x1", grid.Columns, grid.Rows)
	}
}

func TestShrinkToFit(t *testing.T) {
	img := testLabel(400, 200)

	small := shrinkToFit(img, 100, 100)
	if small.Bounds().Dx() != 100 || small.Bounds().Dy() != 50 {
		t.Errorf("shrinkToFit = %v, want 100x50", small.Bounds())
	}

	// Never enlarges.
	same := shrinkToFit(img, 1000, 1000)
	if same.Bounds() != img.Bounds() {
		t.Errorf("shrinkToFit enlarged image to %v", same.Bounds())
	}
}
