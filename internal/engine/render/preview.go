package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"labelr/internal/engine/layout"
)

const (
	minPreviewScale = 2  // px per mm
	maxPreviewScale = 12 // px per mm

	DefaultPreviewMaxPx = 900
)

// Preview is an on-screen rendition of the tiled page.
type Preview struct {
	Image image.Image
	Grid  layout.Grid
}

// PagePreview rasterizes the tiled page for display. maxPx bounds the longer
// page axis; the resulting px-per-mm scale is clamped so tiny paper sizes
// stay readable and large ones stay cheap.
func PagePreview(label image.Image, p layout.Params, maxPx int) (*Preview, error) {
	grid, err := layout.Compute(p)
	if err != nil {
		return nil, err
	}

	if maxPx <= 0 {
		maxPx = DefaultPreviewMaxPx
	}
	scale := float64(maxPx) / math.Max(grid.PaperW, grid.PaperH)
	scale = math.Min(math.Max(scale, minPreviewScale), maxPreviewScale)

	toPx := func(mm float64) int { return int(math.Round(mm * scale)) }

	dc := gg.NewContext(toPx(grid.PaperW), toPx(grid.PaperH))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	thumb := shrinkToFit(label,
		toPx(grid.LabelW-grid.Padding.Horizontal()),
		toPx(grid.LabelH-grid.Padding.Vertical()))
	tb := thumb.Bounds()

	for _, pl := range grid.Placements() {
		x, y := toPx(pl.X), toPx(pl.Y)
		w, h := toPx(grid.LabelW), toPx(grid.LabelH)

		// Label cell outline.
		dc.SetHexColor("#666666")
		dc.SetLineWidth(2)
		dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
		dc.Stroke()

		// Padded content box outline.
		ix, iy, iw, ih := grid.ContentBox(pl)
		dc.SetHexColor("#cccccc")
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(toPx(ix)), float64(toPx(iy)), float64(toPx(iw)), float64(toPx(ih)))
		dc.Stroke()

		dc.DrawImage(thumb,
			toPx(ix)+(toPx(iw)-tb.Dx())/2,
			toPx(iy)+(toPx(ih)-tb.Dy())/2)
	}

	return &Preview{Image: dc.Image(), Grid: grid}, nil
}

// shrinkToFit scales img down to fit within maxW x maxH, preserving aspect
// ratio and never enlarging.
func shrinkToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}

	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
