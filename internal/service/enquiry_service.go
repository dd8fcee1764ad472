package service

import (
	"context"

	"github.com/devfolio/backend/internal/model"
)

// EnquiryInput carries the writable fields of an enquiry, validated on
// create and on update of the merged record. The field order here determines
// the order of reported validation errors.
type EnquiryInput struct {
	ClientName  string   `json:"clientName" validate:"required"`
	ProjectName string   `json:"projectName" validate:"required"`
	Phone       string   `json:"phone" validate:"required,number,min=10,max=15"`
	Description string   `json:"description" validate:"required"`
	Budget      *float64 `json:"budget" validate:"required"`
	Links       []string `json:"links"`
}

// EnquiryPatch carries a partial update: nil fields are left unchanged.
type EnquiryPatch struct {
	ClientName  *string
	ProjectName *string
	Phone       *string
	Description *string
	Budget      *float64
	Links       *[]string
}

// EnquiryService defines the business logic for enquiries.
type EnquiryService interface {
	// Create validates input and persists a new enquiry with a fresh id
	// and creation timestamp. A rejected payload yields *ValidationError
	// and nothing is persisted.
	Create(ctx context.Context, in EnquiryInput) (*model.Enquiry, error)

	// List returns one page of enquiries matching search, newest first.
	// page defaults to 1 and limit to 10 when non-positive.
	List(ctx context.Context, page, limit int, search string) (*model.EnquiryPage, error)

	// Get returns a single enquiry, or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*model.Enquiry, error)

	// Update overlays the supplied fields onto the stored record,
	// re-validates the merged result against the create schema, and
	// persists it. Returns repository.ErrNotFound if id does not exist.
	Update(ctx context.Context, id string, patch EnquiryPatch) (*model.Enquiry, error)

	// Delete permanently removes an enquiry, or returns
	// repository.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
