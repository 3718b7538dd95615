package handlers

import (
	"encoding/json"
	"image/png"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"labelr/internal/engine/compose"
	"labelr/internal/pkg/errors"
)

type LabelHandler struct {
	composer *Composer
	metrics  *Metrics
}

func NewLabelHandler(c *Composer, m *Metrics) *LabelHandler {
	return &LabelHandler{composer: c, metrics: m}
}

type ComposeRequest struct {
	Code       string          `json:"code"`
	SymbolKind string          `json:"symbol_kind"`
	Compose    compose.Options `json:"compose"`
}

// Compose renders the composed label and returns it as PNG.
func (h *LabelHandler) Compose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "code is required", nil)
		return
	}

	img, kind, err := h.composer.composeLabel(req.Code, req.SymbolKind, req.Compose)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.metrics.ComposesTotal.Add(1)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Symbol-Kind", string(kind))
	if err := png.Encode(w, img); err != nil {
		log.Error().Err(err).Msg("failed to stream composed label")
	}
}
