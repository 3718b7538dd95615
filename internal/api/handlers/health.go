package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"labelr/internal/engine/text"
)

type HealthHandler struct {
	db    *sql.DB
	fonts *text.Source
}

func NewHealthHandler(db *sql.DB, fonts *text.Source) *HealthHandler {
	return &HealthHandler{db: db, fonts: fonts}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if err := h.db.Ping(); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
	} else {
		checks["database"] = "healthy"
	}

	// The font source never fails at runtime, but degraded fallbacks are
	// worth surfacing.
	checks["fonts"] = h.fonts.Origin()

	status := "healthy"
	for _, check := range checks {
		if len(check) >= 9 && check[:9] == "unhealthy" {
			status = "degraded"
			break
		}
	}

	response := struct {
		Status    string            `json:"status"`
		Timestamp int64             `json:"timestamp"`
		Checks    map[string]string `json:"checks"`
	}{
		Status:    status,
		Timestamp: time.Now().Unix(),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
