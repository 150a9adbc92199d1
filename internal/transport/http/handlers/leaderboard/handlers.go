package leaderboardhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/leaderboard"
	"perftrack/internal/platform/metrics"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
)

type Handler struct {
	Service *leaderboard.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leaderboard.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermLeaderboardRead)).Get("/leaderboard", h.handleLeaderboard)
	r.With(middleware.RequirePermission(auth.PermLeaderboardRead)).Get("/users/{userID}/score", h.handleUserScore)
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "role query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}

	ranked, err := h.Service.Leaderboard(r.Context(), auth.Role(role))
	if err != nil {
		if errors.Is(err, leaderboard.ErrInvalidRole) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown role", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leaderboard_failed", "failed to build leaderboard", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordScoreComputation()
	}
	api.Success(w, ranked, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUserScore(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	userID := chi.URLParam(r, "userID")
	if userID == "me" {
		userID = user.UserID
	}
	if userID != user.UserID && user.Role != auth.RoleAdmin && user.Role != auth.RoleSupervisor {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view other users' scores", middleware.GetRequestID(r.Context()))
		return
	}

	breakdown, err := h.Service.UserScore(r.Context(), userID)
	if err != nil {
		if errors.Is(err, leaderboard.ErrUserNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to compute score", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordScoreComputation()
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}
