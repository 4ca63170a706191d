package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"payday/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID when the client sent one,
// otherwise mints a fresh UUID. The ID is echoed on the response and made
// available through the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
