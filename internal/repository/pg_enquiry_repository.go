package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/devfolio/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgEnquiryRepository is the PostgreSQL implementation of EnquiryRepository.
type PgEnquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPgEnquiryRepository creates a PgEnquiryRepository backed by the given pool.
func NewPgEnquiryRepository(pool *pgxpool.Pool) *PgEnquiryRepository {
	return &PgEnquiryRepository{pool: pool}
}

// Ensure PgEnquiryRepository implements EnquiryRepository at compile time.
var _ EnquiryRepository = (*PgEnquiryRepository)(nil)

// Create inserts a new enquiries row.
func (r *PgEnquiryRepository) Create(ctx context.Context, e *model.Enquiry) error {
	links := e.Links
	if links == nil {
		links = []string{}
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO enquiries (id, client_name, project_name, phone, description, budget, links, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ClientName, e.ProjectName, e.Phone, e.Description, e.Budget, links, e.CreatedAt,
	)
	return err
}

// escapeLike escapes LIKE/ILIKE metacharacters so a search term is matched
// literally as a substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List returns enquiries matching opts.Search on client_name OR project_name
// (case-insensitive substring), newest first, paginated by limit/offset,
// plus the total matching count.
func (r *PgEnquiryRepository) List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, int, error) {
	where := ""
	var args []any

	if s := strings.TrimSpace(opts.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		where = "WHERE (client_name ILIKE $1 OR project_name ILIKE $1)"
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM enquiries "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitArg := strconv.Itoa(len(args) + 1)
	offsetArg := strconv.Itoa(len(args) + 2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx,
		`SELECT id, client_name, project_name, phone, description, budget, links, created_at
		 FROM enquiries `+where+`
		 ORDER BY created_at DESC
		 LIMIT $`+limitArg+` OFFSET $`+offsetArg,
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var enquiries []*model.Enquiry
	for rows.Next() {
		var e model.Enquiry
		if err := rows.Scan(&e.ID, &e.ClientName, &e.ProjectName, &e.Phone,
			&e.Description, &e.Budget, &e.Links, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		enquiries = append(enquiries, &e)
	}
	return enquiries, total, rows.Err()
}

// Get returns a single enquiry by id.
func (r *PgEnquiryRepository) Get(ctx context.Context, id string) (*model.Enquiry, error) {
	var e model.Enquiry
	err := r.pool.QueryRow(ctx,
		`SELECT id, client_name, project_name, phone, description, budget, links, created_at
		 FROM enquiries WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.ClientName, &e.ProjectName, &e.Phone,
		&e.Description, &e.Budget, &e.Links, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the mutable fields of the addressed row. created_at stays
// untouched.
func (r *PgEnquiryRepository) Update(ctx context.Context, e *model.Enquiry) error {
	links := e.Links
	if links == nil {
		links = []string{}
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE enquiries
		 SET client_name = $2, project_name = $3, phone = $4, description = $5, budget = $6, links = $7
		 WHERE id = $1`,
		e.ID, e.ClientName, e.ProjectName, e.Phone, e.Description, e.Budget, links,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the addressed row permanently.
func (r *PgEnquiryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM enquiries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
