package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubRoleSource struct {
	roleOfFn func(ctx context.Context, userID string) (string, error)
}

func (s stubRoleSource) RoleOf(ctx context.Context, userID string) (string, error) {
	return s.roleOfFn(ctx, userID)
}

func TestRequireRoleMissingUser(t *testing.T) {
	handler := RequireRole(stubRoleSource{
		roleOfFn: func(context.Context, string) (string, error) {
			t.Fatalf("unexpected call")
			return "", nil
		},
	}, "ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireRoleWrongRole(t *testing.T) {
	handler := RequireRole(stubRoleSource{
		roleOfFn: func(context.Context, string) (string, error) {
			return "USER", nil
		},
	}, "ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithUser(req.Context(), "user-1"))
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequireRoleMatch(t *testing.T) {
	handler := RequireRole(stubRoleSource{
		roleOfFn: func(_ context.Context, userID string) (string, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return "ADMIN", nil
		},
	}, "ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithUser(req.Context(), "user-1"))
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func contextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
