package handlers

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Metrics holds the process counters exported in Prometheus text format.
type Metrics struct {
	ComposesTotal atomic.Int64
	PreviewsTotal atomic.Int64
	PDFsTotal     atomic.Int64
}

type MetricsHandler struct {
	metrics *Metrics
}

func NewMetricsHandler(m *Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "# HELP labelr_up Is the server up\n")
	fmt.Fprintf(w, "# TYPE labelr_up gauge\n")
	fmt.Fprintf(w, "labelr_up 1\n")
	fmt.Fprintf(w, "# HELP labelr_renders_total Renders served since start\n")
	fmt.Fprintf(w, "# TYPE labelr_renders_total counter\n")
	fmt.Fprintf(w, "labelr_renders_total{output=\"compose\"} %d\n", h.metrics.ComposesTotal.Load())
	fmt.Fprintf(w, "labelr_renders_total{output=\"preview\"} %d\n", h.metrics.PreviewsTotal.Load())
	fmt.Fprintf(w, "labelr_renders_total{output=\"pdf\"} %d\n", h.metrics.PDFsTotal.Load())
}
