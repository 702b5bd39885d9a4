package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"ms-booking/internal/logger"
)

// RequestLogger records method, path, status and duration for every
// handled request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.LogAPI(r.Method, r.URL.Path, fmt.Sprintf("%d", ww.Status()), time.Since(start).String())
		})
	}
}

// Recoverer turns a panic into a logged error and the 500 page.
func Recoverer(log *logger.Logger, rn *Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("HTTP", fmt.Sprintf("panic serving %s %s: %v", r.Method, r.URL.Path, rec))
					rn.ServerError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
