package service

import (
	"context"
	"time"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// enquiryServiceImpl is the production implementation of EnquiryService.
type enquiryServiceImpl struct {
	repo repository.EnquiryRepository
}

// NewEnquiryService creates an EnquiryService backed by the given repository.
func NewEnquiryService(repo repository.EnquiryRepository) EnquiryService {
	return &enquiryServiceImpl{repo: repo}
}

// Create validates and stores a new enquiry.
func (s *enquiryServiceImpl) Create(ctx context.Context, in EnquiryInput) (*model.Enquiry, error) {
	if err := validateEnquiryInput(in); err != nil {
		return nil, err
	}

	links := in.Links
	if links == nil {
		links = []string{}
	}

	e := &model.Enquiry{
		ID:          uuid.NewString(),
		ClientName:  in.ClientName,
		ProjectName: in.ProjectName,
		Phone:       in.Phone,
		Description: in.Description,
		Budget:      *in.Budget,
		Links:       links,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns one page of matching enquiries plus pagination metadata.
func (s *enquiryServiceImpl) List(ctx context.Context, page, limit int, search string) (*model.EnquiryPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	enquiries, total, err := s.repo.List(ctx, model.EnquiryListOptions{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	// Return [] not null for empty pages
	if enquiries == nil {
		enquiries = []*model.Enquiry{}
	}

	return &model.EnquiryPage{
		Enquiries:      enquiries,
		TotalPages:     (total + limit - 1) / limit,
		CurrentPage:    page,
		TotalEnquiries: total,
	}, nil
}

// Get returns a single enquiry by id.
func (s *enquiryServiceImpl) Get(ctx context.Context, id string) (*model.Enquiry, error) {
	return s.repo.Get(ctx, id)
}

// Update merges patch into the stored record, re-validates, and persists.
func (s *enquiryServiceImpl) Update(ctx context.Context, id string, patch EnquiryPatch) (*model.Enquiry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientName != nil {
		e.ClientName = *patch.ClientName
	}
	if patch.ProjectName != nil {
		e.ProjectName = *patch.ProjectName
	}
	if patch.Phone != nil {
		e.Phone = *patch.Phone
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Budget != nil {
		e.Budget = *patch.Budget
	}
	if patch.Links != nil {
		e.Links = *patch.Links
	}
	if e.Links == nil {
		e.Links = []string{}
	}

	budget := e.Budget
	if err := validateEnquiryInput(EnquiryInput{
		ClientName:  e.ClientName,
		ProjectName: e.ProjectName,
		Phone:       e.Phone,
		Description: e.Description,
		Budget:      &budget,
		Links:       e.Links,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an enquiry permanently.
func (s *enquiryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
