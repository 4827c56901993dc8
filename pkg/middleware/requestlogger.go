package middleware

import (
	"log/slog"
	"net/http"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation id, caller and
// span in the request context. Mount it after RequestLogging, Tracing and
// Identity so that all three are available.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if uid := UserIDFromContext(ctx); uid != "" {
				ctx = logger.WithUserID(ctx, uid)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
