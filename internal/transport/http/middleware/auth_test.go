package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perftrack/internal/domain/auth"
)

const testSecret = "test-secret"

func TestAuthAttachesUserContext(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID: "user-1",
		Name:   "Test User",
		Role:   auth.RoleSupervisor,
	}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got auth.UserContext
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected user context to be attached")
	}
	if got.UserID != "user-1" || got.Role != auth.RoleSupervisor {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("expected request to stay anonymous")
	}
}

func TestRequirePermission(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	token, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID: "user-2",
		Role:   auth.RoleWIS,
	}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	protected := Auth(testSecret)(RequirePermission(auth.PermRatingsApprove)(next))

	anon := httptest.NewRequest(http.MethodPost, "/api/v1/ratings/r1/approve", nil)
	anonRec := httptest.NewRecorder()
	protected.ServeHTTP(anonRec, anon)
	if anonRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %d", anonRec.Code)
	}

	denied := httptest.NewRequest(http.MethodPost, "/api/v1/ratings/r1/approve", nil)
	denied.Header.Set("Authorization", "Bearer "+token)
	deniedRec := httptest.NewRecorder()
	protected.ServeHTTP(deniedRec, denied)
	if deniedRec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing permission, got %d", deniedRec.Code)
	}

	allowed := Auth(testSecret)(RequirePermission(auth.PermEvidenceWrite)(next))
	ok := httptest.NewRequest(http.MethodPost, "/api/v1/evidence", nil)
	ok.Header.Set("Authorization", "Bearer "+token)
	okRec := httptest.NewRecorder()
	allowed.ServeHTTP(okRec, ok)
	if okRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for granted permission, got %d", okRec.Code)
	}
}
