package ratingshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/notifications"
	"perftrack/internal/domain/rating"
	"perftrack/internal/domain/scoring"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *rating.Service
	Notify  *notifications.Service
	Audit   *audit.Service
}

func NewHandler(service *rating.Service, notify *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Notify: notify, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermRatingsSubmit)).Post("/assignments/{assignmentID}/ratings", h.handleSubmit)
	r.With(middleware.RequirePermission(auth.PermRatingsSubmit)).Post("/ratings/bulk", h.handleSubmitBulk)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/assignments/{assignmentID}/ratings", h.handleHistory)
	r.With(middleware.RequirePermission(auth.PermRatingsApprove)).Post("/ratings/{ratingID}/approve", h.handleApprove)
	r.With(middleware.RequirePermission(auth.PermRatingsApprove)).Post("/ratings/{ratingID}/change-requests", h.handleRequestChange)
	r.With(middleware.RequirePermission(auth.PermRatingsReviewChange)).Post("/change-requests/{requestID}/review", h.handleReview)
	r.With(middleware.RequirePermission(auth.PermRatingsReviewChange)).Get("/change-requests/pending", h.handlePendingChangeRequests)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	assignmentID := chi.URLParam(r, "assignmentID")

	var payload struct {
		Rating string `json:"rating"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	actor := rating.Actor{UserID: user.UserID, Role: user.Role}
	event, err := h.Service.Submit(r.Context(), actor, assignmentID, scoring.Rating(payload.Rating), payload.Notes)
	if err != nil {
		failRating(w, r, err, "rating_submit_failed", "failed to submit rating")
		return
	}

	h.record(r, user.UserID, audit.ActionRatingSubmitted, "rating_event", event.ID, nil, event)
	h.notifyOwner(r, assignmentID, notifications.TypeRatingSubmitted, "New rating submitted",
		fmt.Sprintf("A %s rating was submitted on one of your goals.", event.Rating))
	api.Created(w, event, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitBulk(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Items []rating.BulkItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Items) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "items are required", middleware.GetRequestID(r.Context()))
		return
	}

	actor := rating.Actor{UserID: user.UserID, Role: user.Role}
	results := h.Service.SubmitBulk(r.Context(), actor, payload.Items)
	for _, result := range results {
		if result.Event == nil {
			continue
		}
		h.record(r, user.UserID, audit.ActionRatingSubmitted, "rating_event", result.Event.ID, nil, result.Event)
		h.notifyOwner(r, result.Event.AssignmentID, notifications.TypeRatingSubmitted, "New rating submitted",
			fmt.Sprintf("A %s rating was submitted on one of your goals.", result.Event.Rating))
	}
	api.Success(w, results, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentID")
	events, err := h.Service.History(r.Context(), assignmentID)
	if err != nil {
		failRating(w, r, err, "rating_history_failed", "failed to list ratings")
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	ratingID := chi.URLParam(r, "ratingID")

	actor := rating.Actor{UserID: user.UserID, Role: user.Role}
	event, err := h.Service.Approve(r.Context(), actor, ratingID)
	if err != nil {
		failRating(w, r, err, "rating_approve_failed", "failed to approve rating")
		return
	}

	h.record(r, user.UserID, audit.ActionRatingApproved, "rating_event", event.ID, nil, event)
	h.notifyOwner(r, event.AssignmentID, notifications.TypeRatingApproved, "Rating approved",
		fmt.Sprintf("Your %s rating has been approved.", event.Rating))
	api.Success(w, event, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRequestChange(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	ratingID := chi.URLParam(r, "ratingID")

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	actor := rating.Actor{UserID: user.UserID, Role: user.Role}
	request, err := h.Service.RequestChange(r.Context(), actor, ratingID, payload.Reason)
	if err != nil {
		failRating(w, r, err, "change_request_failed", "failed to open change request")
		return
	}

	h.record(r, user.UserID, audit.ActionChangeRequested, "change_request", request.ID, nil, request)
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requestID := chi.URLParam(r, "requestID")

	var payload struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	actor := rating.Actor{UserID: user.UserID, Role: user.Role}
	request, err := h.Service.Review(r.Context(), actor, requestID, payload.Approve, payload.Notes)
	if err != nil {
		failRating(w, r, err, "change_review_failed", "failed to review change request")
		return
	}

	h.record(r, user.UserID, audit.ActionChangeReviewed, "change_request", request.ID, nil, request)
	if payload.Approve {
		if event, err := h.Service.Get(r.Context(), request.RatingEventID); err == nil {
			h.notifyOwner(r, event.AssignmentID, notifications.TypeRatingUnlocked, "Rating unlocked",
				"A rating on one of your goals was unlocked for re-rating.")
		}
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendingChangeRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.PendingChangeRequests(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "change_request_list_failed", "failed to list change requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, actorID, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) notifyOwner(r *http.Request, assignmentID, ntype, title, body string) {
	if h.Notify == nil {
		return
	}
	ownerID, err := h.Service.AssignmentOwner(r.Context(), assignmentID)
	if err != nil {
		slog.Warn("notification owner lookup failed", "assignmentId", assignmentID, "err", err)
		return
	}
	if err := h.Notify.Create(r.Context(), ownerID, ntype, title, body); err != nil {
		slog.Warn("notification create failed", "type", ntype, "err", err)
	}
}

func failRating(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, rating.ErrInvalidRating), errors.Is(err, rating.ErrEmptyReason):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	case errors.Is(err, rating.ErrSubmitNotPermitted),
		errors.Is(err, rating.ErrApproveNotPermitted),
		errors.Is(err, rating.ErrRequestNotPermitted),
		errors.Is(err, rating.ErrReviewNotPermitted):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case errors.Is(err, rating.ErrAlreadyApproved),
		errors.Is(err, rating.ErrRatingNotApproved),
		errors.Is(err, rating.ErrChangeRequestPending),
		errors.Is(err, rating.ErrChangeRequestClosed):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case errors.Is(err, rating.ErrAssignmentNotFound),
		errors.Is(err, rating.ErrRatingNotFound),
		errors.Is(err, rating.ErrChangeRequestNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}
