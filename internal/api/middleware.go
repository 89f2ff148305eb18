// v1
// internal/api/middleware.go
package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/timeisseler/ferienplanung/internal/metrics"
)

// Wrap layers the access log around the router. The latency metric is a mux
// middleware (see measured) so it can read the matched route template.
func Wrap(router *mux.Router) http.Handler {
	return handlers.LoggingHandler(os.Stdout, router)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// measured records per-route request latency. Using the mux route template
// keeps the label cardinality bounded.
func measured(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if m := mux.CurrentRoute(r); m != nil {
			if tpl, err := m.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveHTTP(route, rec.status, time.Since(started))
	})
}
