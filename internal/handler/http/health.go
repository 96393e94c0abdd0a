package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
)

type healthStatus struct {
	Status string `json:"status"`
}

func (h *Handler) livez(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, healthStatus{Status: "alive"}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing liveness status")
	}
}

// readyz reports 503 until the server starts and again once shutdown begins,
// so that load balancers stop routing before connections are drained.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	if !h.ready.Load() {
		status, code = "not ready", http.StatusServiceUnavailable
	}

	if _, err := utils.WriteJSON(w, healthStatus{Status: status}, code); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing readiness status")
	}
}

// static serves files below the configured static directory without
// directory listings.
func (h *Handler) static() http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			h.notFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusMethodNotAllowed)
}
