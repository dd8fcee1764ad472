package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
)

// EnquiryRepository defines the persistence interface for enquiries.
// It is defined here (in repository) to avoid an import cycle with service.
type EnquiryRepository interface {
	// Create inserts a fully populated enquiry. ID and CreatedAt are
	// expected to be set by the caller.
	Create(ctx context.Context, e *model.Enquiry) error

	// List returns one page of enquiries matching opts, newest first,
	// together with the total matching count.
	List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, int, error)

	// Get returns the enquiry with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Enquiry, error)

	// Update replaces the stored fields of e (addressed by e.ID), or
	// returns ErrNotFound. CreatedAt is never modified.
	Update(ctx context.Context, e *model.Enquiry) error

	// Delete permanently removes the enquiry, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
