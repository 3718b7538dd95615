package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"labelr/internal/engine/history"
	"labelr/internal/pkg/errors"
)

type HistoryHandler struct {
	recorder *history.Recorder
}

func NewHistoryHandler(recorder *history.Recorder) *HistoryHandler {
	return &HistoryHandler{recorder: recorder}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	entries, err := h.recorder.List(limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.recorder.Stats()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
