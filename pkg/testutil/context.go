package testutil

import (
	"net/http"

	"pushgraph/pkg/requestcontext"
)

// WithSessionUser adds a session user id to the request context.
// This simulates what the session middleware does for signed-in requests.
// Blank ids are ignored.
func WithSessionUser(req *http.Request, userID string) *http.Request {
	if userID == "" {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}
