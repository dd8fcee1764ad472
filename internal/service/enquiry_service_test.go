package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// In-memory mock EnquiryRepository
// ---------------------------------------------------------------------------

type mockEnquiryRepo struct {
	mu        sync.Mutex
	enquiries map[string]*model.Enquiry
	createErr error
}

func newMockEnquiryRepo() *mockEnquiryRepo {
	return &mockEnquiryRepo{enquiries: map[string]*model.Enquiry{}}
}

func (m *mockEnquiryRepo) Create(ctx context.Context, e *model.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *e
	m.enquiries[e.ID] = &cp
	return nil
}

func (m *mockEnquiryRepo) List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*model.Enquiry
	needle := strings.ToLower(opts.Search)
	for _, e := range m.enquiries {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.ClientName), needle) &&
			!strings.Contains(strings.ToLower(e.ProjectName), needle) {
			continue
		}
		matched = append(matched, e)
	}
	// Newest first, same ordering the real store applies.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if opts.Offset >= total {
		return nil, total, nil
	}
	end := opts.Offset + opts.Limit
	if end > total {
		end = total
	}
	return matched[opts.Offset:end], total, nil
}

func (m *mockEnquiryRepo) Get(ctx context.Context, id string) (*model.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.enquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEnquiryRepo) Update(ctx context.Context, e *model.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enquiries[e.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	m.enquiries[e.ID] = &cp
	return nil
}

func (m *mockEnquiryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enquiries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.enquiries, id)
	return nil
}

var _ repository.EnquiryRepository = (*mockEnquiryRepo)(nil)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func validInput() EnquiryInput {
	return EnquiryInput{
		ClientName:  "Alice",
		ProjectName: "Portfolio",
		Phone:       "0123456789",
		Description: "A personal site",
		Budget:      floatPtr(5000),
		Links:       []string{"https://a.com"},
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestEnquiryService_Create_AssignsIDAndTimestamp(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	e, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" {
		t.Error("expected a generated id")
	}
	if e.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}

	stored, err := repo.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("expected record persisted, got %v", err)
	}
	if stored.ClientName != "Alice" {
		t.Errorf("expected clientName=Alice, got %q", stored.ClientName)
	}
}

func TestEnquiryService_Create_ZeroBudgetIsValid(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	in := validInput()
	in.Budget = floatPtr(0)
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Errorf("expected budget=0 to pass validation, got %v", err)
	}
}

func TestEnquiryService_Create_NilLinksBecomesEmpty(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	in := validInput()
	in.Links = nil
	e, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Links == nil {
		t.Error("expected non-nil (empty) links slice, got nil")
	}
}

// TestEnquiryService_Create_ValidationNothingPersisted verifies a rejected
// payload stores nothing.
func TestEnquiryService_Create_ValidationNothingPersisted(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	_, err := svc.Create(context.Background(), EnquiryInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(repo.enquiries) != 0 {
		t.Errorf("expected no records persisted, got %d", len(repo.enquiries))
	}
}

// TestEnquiryService_Create_AllFieldsMissing verifies every required field is
// reported, in declaration order, with the client-facing messages.
func TestEnquiryService_Create_AllFieldsMissing(t *testing.T) {
	svc := NewEnquiryService(newMockEnquiryRepo())

	_, err := svc.Create(context.Background(), EnquiryInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	want := []FieldError{
		{Field: "clientName", Message: "Client name is required"},
		{Field: "projectName", Message: "Project name is required"},
		{Field: "phone", Message: "Phone number must be valid (10 digits)"},
		{Field: "description", Message: "Description is required"},
		{Field: "budget", Message: "Budget must be a number"},
	}
	if len(verr.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %d: %+v", len(want), len(verr.Errors), verr.Errors)
	}
	for i := range want {
		if verr.Errors[i] != want[i] {
			t.Errorf("errors[%d]: expected %+v, got %+v", i, want[i], verr.Errors[i])
		}
	}
}

func TestEnquiryService_Create_PhoneValidation(t *testing.T) {
	svc := NewEnquiryService(newMockEnquiryRepo())

	cases := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"ten digits", "0123456789", true},
		{"fifteen digits", "012345678901234", true},
		{"too short", "012345678", false},
		{"too long", "0123456789012345", false},
		{"letters", "01234abcde", false},
		{"with dashes", "012-345-6789", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Phone = tc.phone
			_, err := svc.Create(context.Background(), in)
			if tc.ok && err != nil {
				t.Errorf("expected phone %q to pass, got %v", tc.phone, err)
			}
			if !tc.ok {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError for phone %q, got %v", tc.phone, err)
				}
				if len(verr.Errors) != 1 || verr.Errors[0].Field != "phone" {
					t.Errorf("expected single phone error, got %+v", verr.Errors)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func seed(t *testing.T, svc EnquiryService, n int, namePrefix string) {
	t.Helper()
	for i := 0; i < n; i++ {
		in := validInput()
		in.ClientName = namePrefix + string(rune('A'+i))
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestEnquiryService_List_Pagination(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)
	seed(t, svc, 12, "Client")

	page1, err := svc.List(context.Background(), 1, 9, "")
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1.Enquiries) != 9 {
		t.Errorf("expected 9 on page 1, got %d", len(page1.Enquiries))
	}
	if page1.TotalPages != 2 {
		t.Errorf("expected totalPages=2 for 12 records at limit 9, got %d", page1.TotalPages)
	}
	if page1.TotalEnquiries != 12 {
		t.Errorf("expected totalEnquiries=12, got %d", page1.TotalEnquiries)
	}

	page2, err := svc.List(context.Background(), 2, 9, "")
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2.Enquiries) != 3 {
		t.Errorf("expected 3 on page 2, got %d", len(page2.Enquiries))
	}
	if page2.CurrentPage != 2 {
		t.Errorf("expected currentPage=2, got %d", page2.CurrentPage)
	}
}

func TestEnquiryService_List_DefaultsOnNonPositive(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)
	seed(t, svc, 3, "Client")

	page, err := svc.List(context.Background(), 0, -1, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.CurrentPage != 1 {
		t.Errorf("expected currentPage=1, got %d", page.CurrentPage)
	}
	if page.TotalPages != 1 {
		t.Errorf("expected totalPages=1 for 3 records at default limit 10, got %d", page.TotalPages)
	}
}

// TestEnquiryService_List_EmptyPageNotNil verifies an out-of-range page still
// returns a non-nil slice.
func TestEnquiryService_List_EmptyPageNotNil(t *testing.T) {
	svc := NewEnquiryService(newMockEnquiryRepo())

	page, err := svc.List(context.Background(), 5, 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Enquiries == nil {
		t.Error("expected non-nil (empty) enquiries slice, got nil")
	}
	if page.TotalPages != 0 || page.TotalEnquiries != 0 {
		t.Errorf("expected zero totals, got %+v", page)
	}
}

func TestEnquiryService_List_Search(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	in := validInput()
	in.ClientName = "Acme Corp"
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("seed: %v", err)
	}
	in = validInput()
	in.ClientName = "Beta Ltd"
	in.ProjectName = "Acme redesign"
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("seed: %v", err)
	}
	in = validInput()
	in.ClientName = "Gamma Inc"
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("seed: %v", err)
	}

	page, err := svc.List(context.Background(), 1, 10, "acme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalEnquiries != 2 {
		t.Errorf("expected 2 matches for 'acme' across client and project names, got %d", page.TotalEnquiries)
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestEnquiryService_Update_PartialPatchKeepsOtherFields(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, EnquiryPatch{
		ClientName: strPtr("Alice Updated"),
		Budget:     floatPtr(7500),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ClientName != "Alice Updated" {
		t.Errorf("expected clientName updated, got %q", updated.ClientName)
	}
	if updated.Budget != 7500 {
		t.Errorf("expected budget=7500, got %v", updated.Budget)
	}
	if updated.ProjectName != created.ProjectName {
		t.Errorf("expected projectName unchanged, got %q", updated.ProjectName)
	}
	if updated.Phone != created.Phone {
		t.Errorf("expected phone unchanged, got %q", updated.Phone)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("expected createdAt unchanged")
	}
}

func TestEnquiryService_Update_MergedRecordRevalidated(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, EnquiryPatch{
		Phone: strPtr("bad"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for invalid merged phone, got %v", err)
	}

	// Stored record must be untouched.
	stored, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Phone != created.Phone {
		t.Errorf("expected stored phone unchanged after failed update, got %q", stored.Phone)
	}
}

func TestEnquiryService_Update_NotFound(t *testing.T) {
	svc := NewEnquiryService(newMockEnquiryRepo())

	_, err := svc.Update(context.Background(), "missing", EnquiryPatch{ClientName: strPtr("X")})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestEnquiryService_Delete_RemovesRecord(t *testing.T) {
	repo := newMockEnquiryRepo()
	svc := NewEnquiryService(repo)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestEnquiryService_Delete_NotFound(t *testing.T) {
	svc := NewEnquiryService(newMockEnquiryRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
