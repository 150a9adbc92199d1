package goalshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/goals"
	"perftrack/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type fakeStore struct {
	assignments map[string]goals.GoalAssignment
	evidence    map[string][]goals.EvidenceLog
}

func (f *fakeStore) ListAssignments(_ context.Context, userID string) ([]goals.GoalAssignment, error) {
	var out []goals.GoalAssignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAssignment(_ context.Context, assignmentID string) (goals.GoalAssignment, error) {
	a, ok := f.assignments[assignmentID]
	if !ok {
		return goals.GoalAssignment{}, goals.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeStore) InsertEvidence(_ context.Context, assignmentID, text string, links []string, metrics map[string]float64) (goals.EvidenceLog, error) {
	log := goals.EvidenceLog{ID: "ev-new", AssignmentID: assignmentID, Text: text, Links: links, Metrics: metrics, CreatedAt: time.Now()}
	f.evidence[assignmentID] = append(f.evidence[assignmentID], log)
	return log, nil
}

func (f *fakeStore) ListEvidence(_ context.Context, assignmentID string) ([]goals.EvidenceLog, error) {
	return f.evidence[assignmentID], nil
}

func (f *fakeStore) SetTargetRating(_ context.Context, _, _ string) error { return nil }

func newTestRouter(store *fakeStore) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	router.Route("/api/v1", func(r chi.Router) {
		NewHandler(goals.NewService(store), nil).RegisterRoutes(r)
	})
	return router
}

func tokenFor(t *testing.T, userID string, role auth.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: userID, Role: role}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestListEvidenceOwnership(t *testing.T) {
	store := &fakeStore{
		assignments: map[string]goals.GoalAssignment{
			"as-1": {ID: "as-1", UserID: "u1", Status: goals.AssignmentStatusActive},
		},
		evidence: map[string][]goals.EvidenceLog{
			"as-1": {{ID: "ev-1", AssignmentID: "as-1", Text: "closed 30 requests"}},
		},
	}
	router := newTestRouter(store)

	cases := []struct {
		name   string
		userID string
		role   auth.Role
		want   int
	}{
		{"owner", "u1", auth.RoleWIS, http.StatusOK},
		{"other contributor", "u2", auth.RoleWIS, http.StatusForbidden},
		{"supervisor", "sup-1", auth.RoleSupervisor, http.StatusOK},
		{"admin", "adm-1", auth.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/assignments/as-1/evidence", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tc.userID, tc.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestListEvidenceUnknownAssignment(t *testing.T) {
	store := &fakeStore{
		assignments: map[string]goals.GoalAssignment{},
		evidence:    map[string][]goals.EvidenceLog{},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assignments/as-missing/evidence", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1", auth.RoleWIS))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown assignment, got %d", rec.Code)
	}
}
