package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pushgraph/internal/notification/models"
	"pushgraph/internal/platform/middleware"
	usermodels "pushgraph/internal/user/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/platform/httputil"
	"pushgraph/pkg/rdf"
)

// Index is the notification index as seen by the transport.
type Index interface {
	GetNotifications(ctx context.Context, user rdf.IRI) (map[rdf.IRI]*models.Notification, error)
}

// Users resolves the session user when a request names no user.
type Users interface {
	Resolve(ctx context.Context, uri rdf.IRI) (*usermodels.User, error)
}

// Handler serves notification reads.
type Handler struct {
	index  Index
	users  Users
	logger *slog.Logger
}

// New creates a notification Handler.
func New(index Index, users Users, logger *slog.Logger) *Handler {
	return &Handler{index: index, users: users, logger: logger}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleList)
}

// handleList answers with the bare notification map keyed by IRI.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var user rdf.IRI
	if raw := r.URL.Query().Get("user"); raw != "" {
		parsed, err := rdf.ParseIRI(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "user must be an absolute IRI"))
			return
		}
		user = parsed
	} else {
		resolved, err := h.users.Resolve(ctx, "")
		if err != nil {
			h.logger.WarnContext(ctx, "failed to resolve session user", "request_id", requestID, "error", err)
			httputil.WriteError(w, err)
			return
		}
		user = resolved.URI
	}

	notifications, err := h.index.GetNotifications(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications",
			"request_id", requestID,
			"user", user.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if notifications == nil {
		notifications = map[rdf.IRI]*models.Notification{}
	}
	httputil.WriteJSON(w, http.StatusOK, notifications)
}
