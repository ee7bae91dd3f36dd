package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware is the net/http counterpart of RequestID plus GinMiddleware,
// usable with gorilla/mux's Router.Use.
func HTTPMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			reqLog := log.With(
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, reqLog)))

			fields := []zap.Field{zap.Int("status", rec.status), zap.Duration("latency", time.Since(start))}
			switch {
			case rec.status >= 500:
				reqLog.Error("HTTP request", fields...)
			case rec.status >= 400:
				reqLog.Warn("HTTP request", fields...)
			default:
				reqLog.Info("HTTP request", fields...)
			}
		})
	}
}

// FromContext returns the logger stored by HTTPMiddleware, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
