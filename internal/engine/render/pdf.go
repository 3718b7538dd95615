package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"labelr/internal/engine/layout"
)

// PagePDF writes a single-page PDF with the label stamped at every grid
// placement. Placements come from the same top-left mm space as the preview;
// fpdf's coordinate system is top-down, so rows land in the same order in
// both outputs.
func PagePDF(label image.Image, p layout.Params, w io.Writer) (layout.Grid, error) {
	grid, err := layout.Compute(p)
	if err != nil {
		return layout.Grid{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, label); err != nil {
		return layout.Grid{}, fmt.Errorf("encode label png: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: grid.PaperW, Ht: grid.PaperH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("label", opts, &buf)

	lb := label.Bounds()
	aspect := float64(lb.Dx()) / float64(lb.Dy())

	for _, pl := range grid.Placements() {
		ix, iy, iw, ih := grid.ContentBox(pl)

		// Fit the image inside the padded box, centered, aspect preserved.
		fw, fh := iw, iw/aspect
		if fh > ih {
			fh = ih
			fw = ih * aspect
		}
		pdf.ImageOptions("label",
			ix+(iw-fw)/2, iy+(ih-fh)/2, fw, fh,
			false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return layout.Grid{}, fmt.Errorf("write pdf: %w", err)
	}
	return grid, nil
}
