package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/survey-atlas/pkg/monitoring"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Metrics records request counts and latencies. Requests are labelled by chi
// route pattern, not by raw path.
func Metrics(metrics *monitoring.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req)

			route := "unmatched"
			if rctx := chi.RouteContext(req.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			metrics.RecordRequest(req.Method, route, strconv.Itoa(status), elapsed)
			zerolog.Ctx(req.Context()).Debug().
				Str("route", route).
				Int("status", status).
				Dur("duration", elapsed).
				Msg("request served")
		})
	}
}
