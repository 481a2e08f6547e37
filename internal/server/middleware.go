package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	applog "larder/internal/log"
)

const requestIDHeader = "X-Request-ID"

// withRequestID tags every request with an id that flows through the
// structured logs and back to the client. An id supplied by the caller is
// kept so traces can span proxies.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := applog.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
