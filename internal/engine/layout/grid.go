package layout

import (
	"errors"
	"math"
)

// Grid is the resolved placement plan for one page: oriented mm dimensions
// plus the column/row counts. Placements share a top-left-origin mm
// coordinate space consumed unchanged by both the raster preview and the PDF
// renderer.
type Grid struct {
	LabelW, LabelH float64 // oriented label size, mm
	PaperW, PaperH float64 // oriented paper size, mm
	Columns, Rows  int
	Margins        Insets
	Padding        Insets
	Spacing        float64
}

// Placement is the top-left corner of one label cell in page mm.
type Placement struct {
	Column, Row int
	X, Y        float64
}

// Compute resolves Params into a Grid. The grid is always at least 1x1, even
// when a single label overflows the usable area.
func Compute(p Params) (Grid, error) {
	if err := p.Validate(); err != nil {
		return Grid{}, err
	}

	lw, lh := p.orientedLabel()
	pw, ph := p.orientedPaper()

	if lw-p.Padding.Horizontal() <= 0 || lh-p.Padding.Vertical() <= 0 {
		return Grid{}, errors.New("padding leaves no content area inside the label")
	}

	usableW := pw - p.Margins.Horizontal()
	usableH := ph - p.Margins.Vertical()

	return Grid{
		LabelW:  lw,
		LabelH:  lh,
		PaperW:  pw,
		PaperH:  ph,
		Columns: cellCount(usableW, lw, p.Spacing),
		Rows:    cellCount(usableH, lh, p.Spacing),
		Margins: p.Margins,
		Padding: p.Padding,
		Spacing: p.Spacing,
	}, nil
}

// cellCount packs cells of extent plus spacing into the usable extent. The
// trailing cell needs no spacing after it, hence the +spacing on both sides
// of the division.
func cellCount(usable, extent, spacing float64) int {
	if extent <= 0 {
		return 1
	}
	n := int(math.Floor((usable + spacing) / (extent + spacing)))
	if n < 1 {
		n = 1
	}
	return n
}

func (g Grid) Placements() []Placement {
	placements := make([]Placement, 0, g.Columns*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			placements = append(placements, Placement{
				Column: c,
				Row:    r,
				X:      g.Margins.Left + float64(c)*(g.LabelW+g.Spacing),
				Y:      g.Margins.Top + float64(r)*(g.LabelH+g.Spacing),
			})
		}
	}
	return placements
}

// ContentBox is the padded inner box of a placement in page mm, where the
// composed image actually lands.
func (g Grid) ContentBox(pl Placement) (x, y, w, h float64) {
	return pl.X + g.Padding.Left,
		pl.Y + g.Padding.Top,
		g.LabelW - g.Padding.Horizontal(),
		g.LabelH - g.Padding.Vertical()
}

// Count is the number of labels placed on the page.
func (g Grid) Count() int {
	return g.Columns * g.Rows
}

// AutoFitLabel derives the label mm from the composed image's pixel
// dimensions at the active DPI, with a fixed allowance per axis, clamped to
// the usable page area less spacing and floored at 5 mm. The result replaces
// LabelWidth/LabelHeight in p.
func AutoFitLabel(imgWPx, imgHPx int, p Params) (w, h float64) {
	pxPerMM := p.PxPerMM()
	w = float64(imgWPx)/pxPerMM + autoFitAllowanceMM
	h = float64(imgHPx)/pxPerMM + autoFitAllowanceMM
	if p.LabelLandscape {
		w, h = h, w
	}

	pw, ph := p.orientedPaper()
	usableW := pw - p.Margins.Horizontal()
	usableH := ph - p.Margins.Vertical()

	w = clampAxis(w, usableW-p.Spacing)
	h = clampAxis(h, usableH-p.Spacing)

	return round1(w), round1(h)
}

// ResolveAutoFit replaces the label dimensions in p with the auto-fit result.
// The landscape swap is already applied by AutoFitLabel, so the flag is
// cleared to keep Compute from swapping twice.
func ResolveAutoFit(p Params, imgWPx, imgHPx int) Params {
	w, h := AutoFitLabel(imgWPx, imgHPx, p)
	p.LabelWidth = w
	p.LabelHeight = h
	p.LabelLandscape = false
	return p
}

func clampAxis(v, limit float64) float64 {
	if limit < autoFitFloorMM {
		limit = autoFitFloorMM
	}
	if v > limit {
		v = limit
	}
	if v < autoFitFloorMM {
		v = autoFitFloorMM
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
