package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/internal/service"
)

// EnquiryHandler handles public enquiry submission and the admin CRUD routes.
type EnquiryHandler struct {
	enquiryService service.EnquiryService
}

// NewEnquiryHandler creates an EnquiryHandler with the given service.
func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// enquiryPayload is the wire form of an enquiry submission. budget and links
// are kept raw so lenient inputs (a quoted budget, links as a single
// comma/newline separated string) can be normalized with a field-level error
// instead of a generic decode failure.
type enquiryPayload struct {
	ClientName  string          `json:"clientName"`
	ProjectName string          `json:"projectName"`
	Phone       string          `json:"phone"`
	Description string          `json:"description"`
	Budget      json.RawMessage `json:"budget"`
	Links       json.RawMessage `json:"links"`
}

func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// parseBudget accepts a JSON number or a numeric string.
func parseBudget(raw json.RawMessage) (*float64, bool) {
	if !rawPresent(raw) {
		return nil, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &f, true
		}
	}
	return nil, false
}

// parseLinks accepts a JSON string list or a single free-text string, which
// is split on commas and newlines.
func parseLinks(raw json.RawMessage) ([]string, bool) {
	if !rawPresent(raw) {
		return nil, true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return model.ParseLinks(s), true
	}
	return nil, false
}

func fieldErrorResponse(w http.ResponseWriter, errs ...service.FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(service.ValidationError{Errors: errs})
}

// Create handles POST /api/enquiries. This is the public lead-capture path:
// no token required by design.
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload enquiryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid request body"})
		return
	}

	budget, ok := parseBudget(payload.Budget)
	if !ok {
		fieldErrorResponse(w, service.FieldError{Field: "budget", Message: "Budget must be a number"})
		return
	}
	links, ok := parseLinks(payload.Links)
	if !ok {
		fieldErrorResponse(w, service.FieldError{Field: "links", Message: "Must be valid URLs if provided"})
		return
	}

	enquiry, err := h.enquiryService.Create(r.Context(), service.EnquiryInput{
		ClientName:  payload.ClientName,
		ProjectName: payload.ProjectName,
		Phone:       payload.Phone,
		Description: payload.Description,
		Budget:      budget,
		Links:       links,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(verr)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(enquiry)
}

// List handles GET /api/enquiries (admin only).
// Query params: page (default 1), limit (default 10), search (default "").
func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 10

	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	search := r.URL.Query().Get("search")

	result, err := h.enquiryService.List(r.Context(), page, limit, search)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// Get handles GET /api/enquiries/{id} (admin only).
func (h *EnquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	enquiry, err := h.enquiryService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry not found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(enquiry)
}

// updatePayload is the wire form of a partial update: absent fields keep
// their stored values.
type updatePayload struct {
	ClientName  *string         `json:"clientName"`
	ProjectName *string         `json:"projectName"`
	Phone       *string         `json:"phone"`
	Description *string         `json:"description"`
	Budget      json.RawMessage `json:"budget"`
	Links       json.RawMessage `json:"links"`
}

// Update handles PUT /api/enquiries/{id} (admin only). Supplied fields
// replace stored ones; the merged record is re-validated against the same
// schema as Create.
func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid request body"})
		return
	}

	patch := service.EnquiryPatch{
		ClientName:  payload.ClientName,
		ProjectName: payload.ProjectName,
		Phone:       payload.Phone,
		Description: payload.Description,
	}
	if rawPresent(payload.Budget) {
		budget, ok := parseBudget(payload.Budget)
		if !ok {
			fieldErrorResponse(w, service.FieldError{Field: "budget", Message: "Budget must be a number"})
			return
		}
		patch.Budget = budget
	}
	if rawPresent(payload.Links) {
		links, ok := parseLinks(payload.Links)
		if !ok {
			fieldErrorResponse(w, service.FieldError{Field: "links", Message: "Must be valid URLs if provided"})
			return
		}
		patch.Links = &links
	}

	enquiry, err := h.enquiryService.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry not found"})
		case errors.As(err, &verr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(verr)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server Error"})
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(enquiry)
}

// Delete handles DELETE /api/enquiries/{id} (admin only). Deletion is
// immediate and permanent.
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.enquiryService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry not found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Enquiry removed"})
}
