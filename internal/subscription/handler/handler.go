package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pushgraph/internal/platform/middleware"
	"pushgraph/internal/subscription/models"
	usermodels "pushgraph/internal/user/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/platform/httputil"
	"pushgraph/pkg/rdf"
)

const maxBodyBytes = 64 << 10

// Service is the subscription registry as seen by the transport.
type Service interface {
	SubscribeResourceToFeed(ctx context.Context, subscriberRef, resource, feedURL rdf.IRI) (*models.Result, error)
}

// Index answers subscription reads.
type Index interface {
	GetSubscriptions(ctx context.Context, user rdf.IRI) ([]rdf.IRI, error)
	GetSubscriptionResources(ctx context.Context, user rdf.IRI) ([]rdf.IRI, error)
}

// Users resolves the session user when a request names no user.
type Users interface {
	Resolve(ctx context.Context, uri rdf.IRI) (*usermodels.User, error)
}

// Handler serves subscribe requests and subscription listings.
type Handler struct {
	registry Service
	index    Index
	users    Users
	logger   *slog.Logger
}

// New creates a subscription Handler.
func New(registry Service, index Index, users Users, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, index: index, users: users, logger: logger}
}

// Register registers the subscription routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/subscriptions", h.handleSubscribe)
	r.Get("/subscriptions", h.handleList)
	r.Get("/subscriptions/resources", h.handleResources)
}

type listResponse struct {
	User  string   `json:"user"`
	Feeds []string `json:"feeds"`
}

type resourcesResponse struct {
	User      string   `json:"user"`
	Resources []string `json:"resources"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.SubscribeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid subscribe request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	parsed, err := req.Parse()
	if err != nil {
		h.logger.WarnContext(ctx, "invalid subscribe request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	subscriber := parsed.Subscriber
	if subscriber.IsZero() {
		user, err := h.users.Resolve(ctx, "")
		if err != nil {
			h.logFailure(ctx, "failed to resolve session user", requestID, err)
			httputil.WriteError(w, err)
			return
		}
		subscriber = user.URI
	}

	result, err := h.registry.SubscribeResourceToFeed(ctx, subscriber, parsed.Resource, parsed.Feed)
	if err != nil {
		h.logFailure(ctx, "failed to subscribe", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, result)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	user, err := h.targetUser(r)
	if err != nil {
		h.logFailure(ctx, "failed to resolve user", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	feeds, err := h.index.GetSubscriptions(ctx, user)
	if err != nil {
		h.logFailure(ctx, "failed to list subscriptions", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{User: user.String(), Feeds: iriStrings(feeds)})
}

func (h *Handler) handleResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	user, err := h.targetUser(r)
	if err != nil {
		h.logFailure(ctx, "failed to resolve user", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	resources, err := h.index.GetSubscriptionResources(ctx, user)
	if err != nil {
		h.logFailure(ctx, "failed to list subscribed resources", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resourcesResponse{User: user.String(), Resources: iriStrings(resources)})
}

// targetUser returns the user query parameter, or the session user when it
// is absent.
func (h *Handler) targetUser(r *http.Request) (rdf.IRI, error) {
	if raw := r.URL.Query().Get("user"); raw != "" {
		user, err := rdf.ParseIRI(raw)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "user must be an absolute IRI")
		}
		return user, nil
	}
	user, err := h.users.Resolve(r.Context(), "")
	if err != nil {
		return "", err
	}
	return user.URI, nil
}

func iriStrings(iris []rdf.IRI) []string {
	out := make([]string, 0, len(iris))
	for _, iri := range iris {
		out = append(out, iri.String())
	}
	return out
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
