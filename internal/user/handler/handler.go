package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pushgraph/internal/platform/middleware"
	"pushgraph/internal/user/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/platform/httputil"
	"pushgraph/pkg/rdf"
)

// Service is the user resolver as seen by the transport.
type Service interface {
	Resolve(ctx context.Context, uri rdf.IRI) (*models.User, error)
	TypeOf(ctx context.Context, resource rdf.IRI) (rdf.IRI, bool, error)
}

// Handler serves user lookups.
type Handler struct {
	users  Service
	logger *slog.Logger
}

// New creates a user Handler.
func New(users Service, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users/me", h.handleMe)
	r.Get("/users", h.handleLookup)
}

type userResponse struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "")
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	uri, err := rdf.ParseIRI(r.URL.Query().Get("uri"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "uri must be an absolute IRI"))
		return
	}
	h.respond(w, r, uri)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, uri rdf.IRI) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	user, err := h.users.Resolve(ctx, uri)
	if err != nil {
		h.logFailure(ctx, "failed to resolve user", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	resp := userResponse{URI: user.URI.String(), Name: user.Name}
	typ, found, err := h.users.TypeOf(ctx, user.URI)
	if err != nil {
		h.logFailure(ctx, "failed to resolve user type", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	if found {
		resp.Type = typ.String()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
