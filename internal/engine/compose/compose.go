package compose

import (
	"errors"
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"labelr/internal/engine/text"
)

// Position places the description relative to the symbol.
type Position string

const (
	PositionBottom Position = "bottom"
	PositionRight  Position = "right"
)

const (
	pad     = 8 // outer padding around the composed label, px
	lineGap = 2 // vertical gap between wrapped lines, px

	MinFontSize = 8
	MaxFontSize = 72
	MinGap      = -50
	MaxGap      = 50

	wrapRatioBottom = 0.95
	wrapRatioRight  = 0.70

	DefaultFontSize      = 14
	DefaultGap           = 5
	DefaultSymbolWidthPx = 420
)

// Options controls how a symbol and its description are merged into one
// label raster. Gap is a pointer because zero is a legal explicit value;
// leaving it unset means DefaultGap.
type Options struct {
	Description   string   `json:"description"`
	Position      Position `json:"position"`
	FontSize      float64  `json:"font_size"`
	Gap           *int     `json:"gap"` // symbol to text distance, may be negative
	SymbolWidthPx int      `json:"symbol_width_px"`
}

// GapOrDefault resolves the symbol-to-text distance, falling back to
// DefaultGap when the field was omitted.
func (o Options) GapOrDefault() int {
	if o.Gap == nil {
		return DefaultGap
	}
	return *o.Gap
}

func (o *Options) normalize() error {
	if o.Position == "" {
		o.Position = PositionBottom
	}
	if o.Position != PositionBottom && o.Position != PositionRight {
		return errors.New("position must be 'bottom' or 'right'")
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.FontSize < MinFontSize || o.FontSize > MaxFontSize {
		return errors.New("font_size must be between 8 and 72")
	}
	if g := o.GapOrDefault(); g < MinGap || g > MaxGap {
		return errors.New("gap must be between -50 and 50")
	}
	if o.SymbolWidthPx == 0 {
		o.SymbolWidthPx = DefaultSymbolWidthPx
	}
	if o.SymbolWidthPx < 0 {
		return errors.New("symbol_width_px must be positive")
	}
	return nil
}

// Compose renders the symbol with its wrapped description onto a white
// canvas. The symbol is shrunk to the target width when wider, never
// enlarged.
func Compose(src *text.Source, symbolImg image.Image, opts Options) (image.Image, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	face, err := src.Face(opts.FontSize)
	if err != nil {
		return nil, err
	}
	gap := opts.GapOrDefault()

	bc := shrinkToWidth(symbolImg, opts.SymbolWidthPx)
	bw := bc.Bounds().Dx()
	bh := bc.Bounds().Dy()

	desc := text.Normalize(opts.Description)
	wrapRatio := wrapRatioBottom
	if opts.Position == PositionRight {
		wrapRatio = wrapRatioRight
	}

	var lines []string
	if desc != "" {
		lines = text.Wrap(face, desc, int(float64(bw)*wrapRatio))
	}

	lineH := text.LineHeight(face)
	ascent := face.Metrics().Ascent.Ceil()
	descH := len(lines) * (lineH + lineGap)
	descW := 0
	for _, ln := range lines {
		if w := text.Width(face, ln); w > descW {
			descW = w
		}
	}

	if opts.Position == PositionBottom {
		canvasW := max(bw, descW) + pad*2
		canvasH := bh + descH + gap + pad*2

		dc := newWhiteContext(canvasW, canvasH)
		dc.DrawImage(bc, (canvasW-bw)/2, pad)

		dc.SetRGB(0, 0, 0)
		dc.SetFontFace(face)
		y := pad + bh + gap
		for _, ln := range lines {
			x := (canvasW - text.Width(face, ln)) / 2
			dc.DrawString(ln, float64(x), float64(y+ascent))
			y += lineH + lineGap
		}
		return dc.Image(), nil
	}

	canvasW := bw + gap + descW + pad*2
	canvasH := max(bh, descH) + pad*2

	dc := newWhiteContext(canvasW, canvasH)
	dc.DrawImage(bc, pad, pad+(canvasH-pad*2-bh)/2)

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)
	x := pad + bw + gap
	y := pad + (canvasH-pad*2-descH)/2
	for _, ln := range lines {
		dc.DrawString(ln, float64(x), float64(y+ascent))
		y += lineH + lineGap
	}
	return dc.Image(), nil
}

func newWhiteContext(w, h int) *gg.Context {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

func shrinkToWidth(img image.Image, targetW int) image.Image {
	b := img.Bounds()
	if b.Dx() <= targetW {
		return img
	}

	scale := float64(targetW) / float64(b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, targetW, int(float64(b.Dy())*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
