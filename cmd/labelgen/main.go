package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"labelr/internal/engine/compose"
	"labelr/internal/engine/layout"
	"labelr/internal/engine/render"
	"labelr/internal/engine/symbol"
	"labelr/internal/engine/text"
	"labelr/internal/pkg/logger"
	"labelr/internal/platform/config"
)

func main() {
	code := flag.String("code", "", "Data to encode (required)")
	description := flag.String("description", "", "Description text wrapped next to the symbol")
	kind := flag.String("symbol", "code128", "Symbol kind: code128 or qr")
	position := flag.String("text-position", "bottom", "Description placement: bottom or right")
	fontSize := flag.Float64("font-size", compose.DefaultFontSize, "Description font size in points")
	gap := flag.Int("gap", compose.DefaultGap, "Symbol to text distance in pixels, may be negative")

	labelPreset := flag.String("label-preset", "", "Label preset name, e.g. 38x100")
	labelW := flag.Float64("label-width", 0, "Label width in mm (overrides preset)")
	labelH := flag.Float64("label-height", 0, "Label height in mm (overrides preset)")
	paperPreset := flag.String("paper-preset", "A4", "Paper preset name")
	paperW := flag.Float64("paper-width", 0, "Paper width in mm (overrides preset)")
	paperH := flag.Float64("paper-height", 0, "Paper height in mm (overrides preset)")

	margin := flag.Float64("margin", 1, "Page margin in mm, all sides")
	padding := flag.Float64("padding", 1, "Cell padding in mm, all sides")
	spacing := flag.Float64("spacing", 1, "Spacing between labels in mm")
	autoFit := flag.Bool("auto-fit", false, "Derive label size from the composed image")
	labelLandscape := flag.Bool("label-landscape", false, "Rotate the label cell")
	pageLandscape := flag.Bool("page-landscape", false, "Rotate the paper")
	dpi := flag.Float64("dpi", 0, "Raster density for mm conversion (default from config)")

	out := flag.String("out", "", "Output path, .pdf for a page or .png for a preview (required)")
	previewMax := flag.Int("preview-max", 0, "Longest preview edge in pixels (default from config)")
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")

	flag.Parse()

	if *code == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Logging)

	symbolKind, err := symbol.ParseKind(*kind)
	if err != nil {
		log.Fatal(err)
	}
	symbolImg, err := symbol.Generate(symbolKind, *code)
	if err != nil {
		log.Fatalf("Failed to generate symbol: %v", err)
	}

	fonts := text.LoadSource(cfg.Render.FontPath)
	label, err := compose.Compose(fonts, symbolImg, compose.Options{
		Description:   *description,
		Position:      compose.Position(*position),
		FontSize:      *fontSize,
		Gap:           gap,
		SymbolWidthPx: cfg.Render.SymbolWidthPx,
	})
	if err != nil {
		log.Fatalf("Failed to compose label: %v", err)
	}

	params, err := resolveParams(*labelPreset, *labelW, *labelH, *paperPreset, *paperW, *paperH)
	if err != nil {
		log.Fatal(err)
	}
	params.Margins = layout.Insets{Top: *margin, Bottom: *margin, Left: *margin, Right: *margin}
	params.Padding = layout.Insets{Top: *padding, Bottom: *padding, Left: *padding, Right: *padding}
	params.Spacing = *spacing
	params.LabelLandscape = *labelLandscape
	params.PageLandscape = *pageLandscape
	params.AutoFit = *autoFit
	params.DPI = *dpi
	if params.DPI <= 0 {
		params.DPI = cfg.Render.DPI
	}
	if params.AutoFit {
		b := label.Bounds()
		params = layout.ResolveAutoFit(params, b.Dx(), b.Dy())
		log.Printf("Auto-fit label size: %.1fx%.1f mm", params.LabelWidth, params.LabelHeight)
	}

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".pdf":
		err = writePDF(label, params, *out)
	case ".png":
		maxPx := *previewMax
		if maxPx <= 0 {
			maxPx = cfg.Preview.MaxPx
		}
		err = writePreview(label, params, maxPx, *out)
	default:
		err = fmt.Errorf("unsupported output extension %q: use .pdf or .png", filepath.Ext(*out))
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %s\n", *out)
}

func resolveParams(labelPreset string, labelW, labelH float64, paperPreset string, paperW, paperH float64) (layout.Params, error) {
	var p layout.Params

	if labelPreset != "" {
		size, err := layout.LabelPreset(labelPreset)
		if err != nil {
			return p, err
		}
		p.LabelWidth, p.LabelHeight = size.Width, size.Height
	}
	if labelW > 0 {
		p.LabelWidth = labelW
	}
	if labelH > 0 {
		p.LabelHeight = labelH
	}

	if paperPreset != "" {
		size, err := layout.PaperPreset(paperPreset)
		if err != nil {
			return p, err
		}
		p.PaperWidth, p.PaperHeight = size.Width, size.Height
	}
	if paperW > 0 {
		p.PaperWidth = paperW
	}
	if paperH > 0 {
		p.PaperHeight = paperH
	}

	return p, nil
}

func writePDF(label image.Image, params layout.Params, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	grid, err := render.PagePDF(label, params, f)
	if err != nil {
		return err
	}
	log.Printf("Placed %d labels (%d columns x %d rows)", grid.Count(), grid.Columns, grid.Rows)
	return nil
}

func writePreview(label image.Image, params layout.Params, maxPx int, path string) error {
	preview, err := render.PagePreview(label, params, maxPx)
	if err != nil {
		return err
	}
	log.Printf("Placed %d labels (%d columns x %d rows)", preview.Grid.Count(), preview.Grid.Columns, preview.Grid.Rows)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return png.Encode(f, preview.Image)
}
