package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	apiContext "labelr/internal/api/context"
	"labelr/internal/engine/history"
	"labelr/internal/engine/layout"
	"labelr/internal/engine/render"
	"labelr/internal/engine/templates"
	"labelr/internal/pkg/errors"
	"labelr/internal/platform/auth"
)

type TemplateHandler struct {
	service  *templates.Service
	composer *Composer
	recorder *history.Recorder
	metrics  *Metrics
	defaults float64 // fallback DPI
}

func NewTemplateHandler(service *templates.Service, c *Composer, recorder *history.Recorder, metrics *Metrics, defaultDPI float64) *TemplateHandler {
	return &TemplateHandler{
		service:  service,
		composer: c,
		recorder: recorder,
		metrics:  metrics,
		defaults: defaultDPI,
	}
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req templates.Template
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims); ok {
		req.CreatedBy = claims.UserID
	}
	if req.Layout.DPI == 0 {
		req.Layout.DPI = h.defaults
	}

	created, err := h.service.CreateTemplate(&req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	list, err := h.service.ListTemplates(limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tpl)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	var req templates.Template
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	updated, err := h.service.UpdateTemplate(params.ByName("template_id"), &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	if err := h.service.ArchiveTemplate(params.ByName("template_id")); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// PDF renders a stored template to its label sheet.
func (h *TemplateHandler) PDF(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	img, kind, err := h.composer.composeLabel(tpl.Code, tpl.SymbolKind, tpl.Compose)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	p := tpl.Layout
	if p.AutoFit {
		b := img.Bounds()
		p = layout.ResolveAutoFit(p, b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	grid, err := render.PagePDF(img, p, &buf)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.metrics.PDFsTotal.Add(1)
	entry := &history.Entry{
		Code:        tpl.Code,
		SymbolKind:  string(kind),
		Output:      "pdf",
		Columns:     grid.Columns,
		Rows:        grid.Rows,
		LabelWidth:  grid.LabelW,
		LabelHeight: grid.LabelH,
		PaperWidth:  grid.PaperW,
		PaperHeight: grid.PaperH,
	}
	if claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims); ok {
		entry.UserID = claims.UserID
	}
	h.recorder.RecordAsync(entry)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.pdf"`, sanitizeFilename(tpl.Code)))
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to stream template pdf")
	}
}

func (h *TemplateHandler) lookup(w http.ResponseWriter, r *http.Request) (*templates.Template, bool) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	tpl, err := h.service.GetTemplate(params.ByName("template_id"))
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return nil, false
	}
	if tpl == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Template not found", nil)
		return nil, false
	}
	return tpl, true
}
