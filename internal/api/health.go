// v0
// internal/api/health.go
package api

import (
	"net/http"
	"sync/atomic"
)

// HealthState tracks readiness for orchestration probes.
type HealthState struct {
	ready atomic.Bool
}

func NewHealthState() *HealthState {
	return &HealthState{}
}

func (h *HealthState) SetReady(v bool) {
	h.ready.Store(v)
}

func (h *HealthState) Ready() bool {
	return h.ready.Load()
}

func (h *HealthState) readyHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !h.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("NOT_READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
