// v1
// internal/api/router.go

// Package api exposes the HTTP surface: profile upload, projection runs,
// CSV download, state listing, health probes, and metrics.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/timeisseler/ferienplanung/internal/metrics"
)

// NewRouter wires all HTTP routes.
func NewRouter(h *Handlers, health *HealthState) *mux.Router {
	r := mux.NewRouter()
	r.Use(measured)

	r.HandleFunc("/health", healthLiveHandler).Methods("GET")
	r.HandleFunc("/health/live", healthLiveHandler).Methods("GET")
	r.HandleFunc("/health/ready", health.readyHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/states", h.handleStates).Methods("GET")
	v1.HandleFunc("/profiles", h.handleUploadProfile).Methods("POST")
	v1.HandleFunc("/profiles/{id}/projections", h.handleCreateProjections).Methods("POST")
	v1.HandleFunc("/projections/{id}", h.handleGetProjection).Methods("GET")
	v1.HandleFunc("/projections/{id}/csv", h.handleDownloadProjection).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	})

	return r
}

func healthLiveHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
