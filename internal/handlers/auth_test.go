package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"comptable/internal/auth"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/store"

	"github.com/lib/pq"
)

func authedRequest(t *testing.T, method, target, body, userID string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterSeedsChart(t *testing.T) {
	var createdRole string
	upserts := 0
	handler := newTestHandler(handlerDeps{
		users: stubUserStore{
			createFn: func(_ context.Context, _ store.Execer, _, email, name, passwordHash, role string) error {
				if email != "marie@example.com" || name != "Marie" {
					t.Fatalf("unexpected user: %s %s", email, name)
				}
				if passwordHash == "secret123" {
					t.Fatalf("password stored in clear")
				}
				createdRole = role
				return nil
			},
		},
		accounts: stubAccountStore{
			upsertFn: func(_ context.Context, _ store.Execer, account models.Account) error {
				if account.OwnerID == "" || account.ID == "" {
					t.Fatalf("account missing identifiers: %#v", account)
				}
				upserts++
				return nil
			},
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"marie@example.com","name":"Marie","password":"secret123"}`))
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if createdRole != "USER" {
		t.Fatalf("unexpected role: %q", createdRole)
	}
	if want := len(ledger.DefaultChart()); upserts != want {
		t.Fatalf("expected %d chart accounts, got %d", want, upserts)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp["token"] == "" {
		t.Fatalf("expected token in response: %s", rr.Body.String())
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"not-an-email","name":"Marie","password":"secret123"}`))
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		users: stubUserStore{
			createFn: func(context.Context, store.Execer, string, string, string, string, string) error {
				return &pq.Error{Code: "23505"}
			},
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"marie@example.com","name":"Marie","password":"secret123"}`))
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestLogin(t *testing.T) {
	passwordHash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	handler := newTestHandler(handlerDeps{
		users: stubUserStore{
			getByEmailFn: func(_ context.Context, email string) (models.User, error) {
				return models.User{ID: "user-1", Email: email, PasswordHash: passwordHash}, nil
			},
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"marie@example.com","password":"secret123"}`))
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"marie@example.com","password":"wrong"}`))
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestMe(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		users: stubUserStore{
			getByIDFn: func(_ context.Context, userID string) (models.User, error) {
				return models.User{ID: userID, Email: "marie@example.com", Name: "Marie"}, nil
			},
		},
	})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodGet, "/auth/me", "", "user-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp models.User
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.ID != "user-1" {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
}

func TestWSEventsMissingToken(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
	handler.WSEvents(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestWSEventsInvalidToken(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/events?token=bad", nil)
	handler.WSEvents(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
