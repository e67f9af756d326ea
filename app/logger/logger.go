package logger

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

// New returns the colored tint logger in development and a JSON logger otherwise.
func New(env string, w io.Writer) *slog.Logger {
	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true, // Show file:line
		}
		log.Println("Initialized development logger (tint)") // slog default is not set yet
		return slog.New(tint.NewHandler(w, tintOpts))
	}
	jsonOpts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: false,
	}
	log.Println("Initialized production logger (JSON)")
	return slog.New(slog.NewJSONHandler(w, jsonOpts))
}

func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Use Chi's WrapResponseWriter to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// RequestID middleware must run before this one
			reqID := middleware.GetReqID(r.Context())

			requestLogger := logger.With(
				slog.String("req_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.String("proto", r.Proto),
			)

			requestLogger.InfoContext(r.Context(), "Request started")

			next.ServeHTTP(ww, r)

			requestLogger.InfoContext(r.Context(), "Request completed",
				slog.Int("status", ww.Status()),
				slog.Int("bytes_written", ww.BytesWritten()),
				slog.Duration("latency", time.Since(start)),
				slog.String("latency_human", time.Since(start).String()),
			)
		})
	}
}
