package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type requesterKey struct{}

// requesterFrom returns the identity set by requireRequester.
func requesterFrom(ctx context.Context) string {
	id, _ := ctx.Value(requesterKey{}).(string)
	return id
}

// requireRequester rejects requests without a requester identity header.
func (s *Server) requireRequester(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(s.cfg.RequesterHeader))
		if id == "" {
			writeError(w, http.StatusUnauthorized, "Missing "+s.cfg.RequesterHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), requesterKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		}()

		next.ServeHTTP(ww, r)
	})
}
