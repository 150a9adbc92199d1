package goalshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/scoring"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *goals.Service
	Audit   *audit.Service
}

func NewHandler(service *goals.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermGoalsRead)).Get("/assignments", h.handleListAssignments)
	r.With(middleware.RequirePermission(auth.PermEvidenceWrite)).Post("/assignments/{assignmentID}/evidence", h.handleAddEvidence)
	r.With(middleware.RequirePermission(auth.PermEvidenceRead)).Get("/assignments/{assignmentID}/evidence", h.handleListEvidence)
	r.With(middleware.RequirePermission(auth.PermTargetRatingWrite)).Put("/users/me/target-rating", h.handleSetTargetRating)
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	userID := user.UserID
	if requested := r.URL.Query().Get("userId"); requested != "" {
		if user.Role != auth.RoleAdmin && user.Role != auth.RoleSupervisor {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot view other users' assignments", middleware.GetRequestID(r.Context()))
			return
		}
		userID = requested
	}

	assignments, err := h.Service.ListAssignments(r.Context(), userID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddEvidence(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	assignmentID := chi.URLParam(r, "assignmentID")

	var payload struct {
		Text    string             `json:"text"`
		Links   []string           `json:"links"`
		Metrics map[string]float64 `json:"metrics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	log, err := h.Service.AddEvidence(r.Context(), user.UserID, assignmentID, payload.Text, payload.Links, payload.Metrics)
	if err != nil {
		failGoals(w, r, err, "evidence_add_failed", "failed to add evidence")
		return
	}

	if h.Audit != nil {
		auditErr := h.Audit.Record(r.Context(), user.UserID, audit.ActionEvidenceAdded, "evidence_log", log.ID,
			middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, log)
		if auditErr != nil {
			slog.Warn("audit record failed", "action", audit.ActionEvidenceAdded, "err", auditErr)
		}
	}
	api.Created(w, log, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	assignmentID := chi.URLParam(r, "assignmentID")

	assignment, err := h.Service.GetAssignment(r.Context(), assignmentID)
	if err != nil {
		failGoals(w, r, err, "evidence_list_failed", "failed to list evidence")
		return
	}
	if assignment.UserID != user.UserID && user.Role != auth.RoleAdmin && user.Role != auth.RoleSupervisor {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view other users' evidence", middleware.GetRequestID(r.Context()))
		return
	}

	logs, err := h.Service.ListEvidence(r.Context(), assignmentID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evidence_list_failed", "failed to list evidence", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, logs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetTargetRating(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.SetTargetRating(r.Context(), user.UserID, scoring.Rating(payload.Target)); err != nil {
		failGoals(w, r, err, "target_rating_failed", "failed to set target rating")
		return
	}

	if h.Audit != nil {
		auditErr := h.Audit.Record(r.Context(), user.UserID, audit.ActionTargetRatingUpdated, "user", user.UserID,
			middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, payload)
		if auditErr != nil {
			slog.Warn("audit record failed", "action", audit.ActionTargetRatingUpdated, "err", auditErr)
		}
	}
	api.Success(w, map[string]string{"target": payload.Target}, middleware.GetRequestID(r.Context()))
}

func failGoals(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, goals.ErrEmptyEvidenceText), errors.Is(err, goals.ErrInvalidTargetRating):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	case errors.Is(err, goals.ErrNotAssignmentOwner):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case errors.Is(err, goals.ErrAssignmentNotActive):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case errors.Is(err, goals.ErrAssignmentNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}
