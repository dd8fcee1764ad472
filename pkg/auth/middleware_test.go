package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protected(t *testing.T, gotUsername *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := AdminFromContext(r.Context())
		if !ok {
			t.Error("expected admin in context")
		}
		if gotUsername != nil {
			*gotUsername = username
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_NoToken(t *testing.T) {
	handler := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	}))

	req := httptest.NewRequest("GET", "/api/enquiries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "Not authorized, no token" {
		t.Errorf("expected message='Not authorized, no token', got %q", resp["message"])
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	handler := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with a bad token")
	}))

	req := httptest.NewRequest("GET", "/api/enquiries", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "Not authorized, token failed" {
		t.Errorf("expected message='Not authorized, token failed', got %q", resp["message"])
	}
}

func TestRequireAuth_NonBearerScheme(t *testing.T) {
	handler := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for a non-bearer scheme")
	}))

	req := httptest.NewRequest("GET", "/api/enquiries", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := GenerateToken("admin", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var gotUsername string
	handler := RequireAuth(testSecret)(protected(t, &gotUsername))

	req := httptest.NewRequest("GET", "/api/enquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUsername != "admin" {
		t.Errorf("expected admin username in context, got %q", gotUsername)
	}
}
