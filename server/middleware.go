package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"propalyze/logger"
)

// RequestLogger tags every request with a trace ID and logs its start and finish.
// Handlers get a logger carrying the trace ID through the request context.
func RequestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TRACE_ID_HEADER)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}

			coreLogger := l.With("trace_id", traceID)
			httpLogger := coreLogger.With(
				"http_method", r.Method,
				"http_path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := logger.ContextWithLogger(r.Context(), coreLogger)
			ctx = logger.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set(TRACE_ID_HEADER, traceID)
			startTime := time.Now()

			httpLogger.Debug("Request started")

			next.ServeHTTP(ww, r.WithContext(ctx))

			httpLogger.Info("Request finished",
				"status_code", ww.Status(),
				"bytes_written", ww.BytesWritten(),
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
		})
	}
}

// CORS lets the listed origins call the site and the proxied API with cookies.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", TRACE_ID_HEADER},
		ExposedHeaders:   []string{TRACE_ID_HEADER},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
