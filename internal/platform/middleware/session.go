package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"pushgraph/pkg/requestcontext"
)

// SessionUser copies the session user id set by the fronting gateway from
// header into the request context. Requests without the header pass through
// anonymously; operations that need a user reject them further down.
func SessionUser(header string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(header))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			if strings.ContainsAny(userID, "\r\n\x00") {
				ctx := r.Context()
				logger.WarnContext(ctx, "rejected malformed session header",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"bad_request","error_description":"Malformed session header"}`))
				return
			}
			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
