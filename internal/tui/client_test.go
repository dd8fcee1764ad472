package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/service"
)

func TestClient_Login_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(service.LoginResult{Token: "tok-1", Username: "admin"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "tok-1" {
		t.Errorf("expected token tok-1, got %q", result.Token)
	}
	if c.token != "tok-1" {
		t.Error("expected client to store the token")
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "admin", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "Invalid credentials" {
		t.Errorf("expected 'Invalid credentials', got %q", apiErr.Error())
	}
}

func TestClient_ListEnquiries_SendsTokenAndParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "9" || q.Get("search") != "shop" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(model.EnquiryPage{
			Enquiries:      []*model.Enquiry{{ID: "1"}},
			TotalPages:     3,
			CurrentPage:    2,
			TotalEnquiries: 25,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok-1")
	page, err := c.ListEnquiries(context.Background(), 2, 9, "shop")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Enquiries) != 1 || page.TotalEnquiries != 25 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestClient_CreateEnquiry_FieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(service.ValidationError{Errors: []service.FieldError{
			{Field: "phone", Message: "Phone number must be valid (10 digits)"},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	budget := 100.0
	_, err := c.CreateEnquiry(context.Background(), service.EnquiryInput{Budget: &budget})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Field != "phone" {
		t.Errorf("expected phone field error, got %+v", apiErr.Fields)
	}
	if apiErr.Error() != "Phone number must be valid (10 digits)" {
		t.Errorf("expected field message surfaced, got %q", apiErr.Error())
	}
}

func TestClient_DeleteEnquiry(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry removed"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.DeleteEnquiry(context.Background(), "abc-123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/api/enquiries/abc-123" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestClient_GetEnquiry_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetEnquiry(context.Background(), "missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apiErr.StatusCode)
	}
}
