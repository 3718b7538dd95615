package layout

import "errors"

const (
	MMPerInch  = 25.4
	DefaultDPI = 96

	// Auto-fit adds this allowance around the composed image on each axis.
	autoFitAllowanceMM = 4
	// Auto-fit never yields a label thinner than this.
	autoFitFloorMM = 5
)

// Insets are the four mm distances framing a rectangle: page margins, or the
// padding between a label cell and its content.
type Insets struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

func (i Insets) Horizontal() float64 { return i.Left + i.Right }
func (i Insets) Vertical() float64   { return i.Top + i.Bottom }

func (i Insets) nonNegative() bool {
	return i.Top >= 0 && i.Bottom >= 0 && i.Left >= 0 && i.Right >= 0
}

// Params is the full set of mm layout knobs for tiling one label across a
// page. All dimensions refer to the portrait orientation; the landscape flags
// swap axes when the grid is computed.
type Params struct {
	LabelWidth  float64 `json:"label_width"`
	LabelHeight float64 `json:"label_height"`
	PaperWidth  float64 `json:"paper_width"`
	PaperHeight float64 `json:"paper_height"`
	Margins     Insets  `json:"margins"`
	Padding     Insets  `json:"padding"`
	Spacing     float64 `json:"spacing"`

	LabelLandscape bool `json:"label_landscape"`
	PageLandscape  bool `json:"page_landscape"`

	// AutoFit derives the label size from the composed image instead of
	// LabelWidth/LabelHeight.
	AutoFit bool `json:"auto_fit"`

	DPI float64 `json:"dpi"`
}

func (p Params) PxPerMM() float64 {
	dpi := p.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return dpi / MMPerInch
}

// orientedLabel returns label mm with the landscape swap applied.
func (p Params) orientedLabel() (w, h float64) {
	if p.LabelLandscape {
		return p.LabelHeight, p.LabelWidth
	}
	return p.LabelWidth, p.LabelHeight
}

// orientedPaper returns paper mm with the landscape swap applied.
func (p Params) orientedPaper() (w, h float64) {
	if p.PageLandscape {
		return p.PaperHeight, p.PaperWidth
	}
	return p.PaperWidth, p.PaperHeight
}

func (p Params) Validate() error {
	if p.PaperWidth <= 0 || p.PaperHeight <= 0 {
		return errors.New("paper dimensions must be positive")
	}
	if !p.AutoFit && (p.LabelWidth <= 0 || p.LabelHeight <= 0) {
		return errors.New("label dimensions must be positive")
	}
	if !p.Margins.nonNegative() {
		return errors.New("margins must not be negative")
	}
	if !p.Padding.nonNegative() {
		return errors.New("padding must not be negative")
	}
	if p.Spacing < 0 {
		return errors.New("spacing must not be negative")
	}

	pw, ph := p.orientedPaper()
	if pw-p.Margins.Horizontal() <= 0 || ph-p.Margins.Vertical() <= 0 {
		return errors.New("margins leave no usable page area")
	}
	return nil
}
