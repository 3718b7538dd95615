package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apiContext "labelr/internal/api/context"
	"labelr/internal/engine/compose"
	"labelr/internal/engine/history"
	"labelr/internal/engine/layout"
	"labelr/internal/engine/render"
	"labelr/internal/pkg/errors"
	"labelr/internal/platform/auth"
	"labelr/internal/platform/config"
)

type PageHandler struct {
	composer *Composer
	recorder *history.Recorder
	metrics  *Metrics
	preview  config.PreviewConfig
	defaults config.RenderConfig
}

func NewPageHandler(c *Composer, recorder *history.Recorder, metrics *Metrics, preview config.PreviewConfig, defaults config.RenderConfig) *PageHandler {
	return &PageHandler{
		composer: c,
		recorder: recorder,
		metrics:  metrics,
		preview:  preview,
		defaults: defaults,
	}
}

type PageRequest struct {
	Code        string          `json:"code"`
	SymbolKind  string          `json:"symbol_kind"`
	Compose     compose.Options `json:"compose"`
	Layout      layout.Params   `json:"layout"`
	LabelPreset string          `json:"label_preset"`
	PaperPreset string          `json:"paper_preset"`
}

// resolveLayout fills the request's layout from presets and config defaults.
func (h *PageHandler) resolveLayout(req *PageRequest) error {
	if req.LabelPreset != "" {
		s, err := layout.LabelPreset(req.LabelPreset)
		if err != nil {
			return err
		}
		req.Layout.LabelWidth = s.Width
		req.Layout.LabelHeight = s.Height
	}
	if req.PaperPreset != "" {
		s, err := layout.PaperPreset(req.PaperPreset)
		if err != nil {
			return err
		}
		req.Layout.PaperWidth = s.Width
		req.Layout.PaperHeight = s.Height
	}
	if req.Layout.DPI == 0 {
		req.Layout.DPI = h.defaults.DPI
	}
	return nil
}

// renderPage composes the label, resolves auto-fit, and hands back everything
// the preview and pdf endpoints share.
func (h *PageHandler) renderPage(w http.ResponseWriter, r *http.Request) (*PageRequest, *renderedLabel, bool) {
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return nil, nil, false
	}

	if strings.TrimSpace(req.Code) == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "code is required", nil)
		return nil, nil, false
	}

	if err := h.resolveLayout(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return nil, nil, false
	}

	img, kind, err := h.composer.composeLabel(req.Code, req.SymbolKind, req.Compose)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return nil, nil, false
	}

	if req.Layout.AutoFit {
		b := img.Bounds()
		req.Layout = layout.ResolveAutoFit(req.Layout, b.Dx(), b.Dy())
		w.Header().Set("X-Label-Width-MM", fmt.Sprintf("%g", req.Layout.LabelWidth))
		w.Header().Set("X-Label-Height-MM", fmt.Sprintf("%g", req.Layout.LabelHeight))
	}

	return &req, &renderedLabel{img: img, kind: string(kind)}, true
}

type renderedLabel struct {
	img  image.Image
	kind string
}

// Preview renders the tiled page as a PNG with the grid shape in headers.
func (h *PageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, label, ok := h.renderPage(w, r)
	if !ok {
		return
	}

	pv, err := render.PagePreview(label.img, req.Layout, h.preview.MaxPx)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.metrics.PreviewsTotal.Add(1)
	h.recorder.RecordAsync(h.entry(r, req, label.kind, "preview", pv.Grid))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Grid-Columns", fmt.Sprintf("%d", pv.Grid.Columns))
	w.Header().Set("X-Grid-Rows", fmt.Sprintf("%d", pv.Grid.Rows))
	if err := png.Encode(w, pv.Image); err != nil {
		log.Error().Err(err).Msg("failed to stream page preview")
	}
}

// PDF renders the tiled page as a downloadable single-page PDF named after
// the code.
func (h *PageHandler) PDF(w http.ResponseWriter, r *http.Request) {
	req, label, ok := h.renderPage(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	grid, err := render.PagePDF(label.img, req.Layout, &buf)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.metrics.PDFsTotal.Add(1)
	h.recorder.RecordAsync(h.entry(r, req, label.kind, "pdf", grid))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.pdf"`, sanitizeFilename(req.Code)))
	w.Header().Set("X-Grid-Columns", fmt.Sprintf("%d", grid.Columns))
	w.Header().Set("X-Grid-Rows", fmt.Sprintf("%d", grid.Rows))
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to stream pdf")
	}
}

// Presets lists the built-in label and paper sizes.
func (h *PageHandler) Presets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Labels map[string]layout.Size `json:"labels"`
		Papers map[string]layout.Size `json:"papers"`
	}{
		Labels: layout.LabelPresets,
		Papers: layout.PaperPresets,
	})
}

func (h *PageHandler) entry(r *http.Request, req *PageRequest, kind, output string, grid layout.Grid) *history.Entry {
	e := &history.Entry{
		Code:        req.Code,
		SymbolKind:  kind,
		Output:      output,
		Columns:     grid.Columns,
		Rows:        grid.Rows,
		LabelWidth:  grid.LabelW,
		LabelHeight: grid.LabelH,
		PaperWidth:  grid.PaperW,
		PaperHeight: grid.PaperH,
	}
	if claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims); ok {
		e.UserID = claims.UserID
	}
	return e
}

func sanitizeFilename(code string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return c
		case c == '-' || c == '_' || c == '.':
			return c
		default:
			return '_'
		}
	}, code)
}
