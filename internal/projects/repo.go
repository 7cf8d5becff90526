package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `public_id, owner_id::text, title, description, genres, looking_for, status, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateProject struct {
	Title       string
	Description string
	Genres      []string
	LookingFor  []string
}

func (r *Repo) Create(ctx context.Context, ownerID string, in CreateProject) (*Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("muse")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, owner_id, title, description, genres, looking_for)
values ($1, $2::uuid, $3, $4, $5, $6)
returning ` + projectColumns + `;
`
		p, err := scanProject(r.db.QueryRow(ctx, q,
			publicID, ownerID, in.Title, in.Description, in.Genres, in.LookingFor))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry with a fresh one
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) Get(ctx context.Context, publicID string) (*Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where public_id = $1 and deleted_at is null;
`
	return scanProject(r.db.QueryRow(ctx, q, publicID))
}

// ListMine returns all of the owner's listings, newest first.
func (r *Repo) ListMine(ctx context.Context, ownerID string) ([]Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where owner_id = $1::uuid and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// BrowseFilter narrows the open-listing feed.
type BrowseFilter struct {
	Genre      string
	LookingFor string
	Limit      int
	Offset     int
}

// Browse returns open listings for the discovery feed.
func (r *Repo) Browse(ctx context.Context, f BrowseFilter) ([]Project, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	const q = `
select ` + projectColumns + `
from projects
where status = 'open' and deleted_at is null
  and ($1 = '' or $1 = any(genres))
  and ($2 = '' or $2 = any(looking_for))
order by created_at desc
limit $3 offset $4;
`
	rows, err := r.db.Query(ctx, q, f.Genre, f.LookingFor, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

type UpdateProject struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Genres      []string `json:"genres"`
	LookingFor  []string `json:"looking_for"`
}

// Update rewrites the provided fields. Scoped by owner.
func (r *Repo) Update(ctx context.Context, ownerID, publicID string, in UpdateProject) (*Project, error) {
	const q = `
update projects
set title       = coalesce($3, title),
    description = coalesce($4, description),
    genres      = coalesce($5, genres),
    looking_for = coalesce($6, looking_for),
    updated_at  = now()
where owner_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectColumns + `;
`
	return scanProject(r.db.QueryRow(ctx, q,
		ownerID, publicID, in.Title, in.Description, in.Genres, in.LookingFor))
}

// SetStatus transitions the listing's status. Scoped by owner.
func (r *Repo) SetStatus(ctx context.Context, ownerID, publicID, status string) (*Project, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	cur, err := r.ownedStatus(ctx, ownerID, publicID)
	if err != nil {
		return nil, err
	}
	if !canTransition(cur, status) {
		return nil, ErrInvalidTransition
	}

	// Guarding on the previously read status keeps the transition atomic
	// when two writers race.
	const q = `
update projects
set status = $3, updated_at = now()
where owner_id = $1::uuid and public_id = $2 and status = $4 and deleted_at is null
returning ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, ownerID, publicID, status, cur))
	if errors.Is(err, ErrProjectNotFound) {
		return nil, ErrInvalidTransition
	}
	return p, err
}

func (r *Repo) SoftDelete(ctx context.Context, ownerID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where owner_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, ownerID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// CloseStale closes open listings untouched for the given number of days.
// Run by the nightly worker; returns the number of listings closed.
func (r *Repo) CloseStale(ctx context.Context, days int) (int64, error) {
	const q = `
update projects
set status = 'closed', updated_at = now()
where status = 'open' and deleted_at is null
  and updated_at < now() - make_interval(days => $1);
`
	ct, err := r.db.Exec(ctx, q, days)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *Repo) ownedStatus(ctx context.Context, ownerID, publicID string) (string, error) {
	const q = `
select status from projects
where owner_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	var status string
	err := r.db.QueryRow(ctx, q, ownerID, publicID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrProjectNotFound
	}
	return status, err
}

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(
		&p.PublicID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Genres,
		&p.LookingFor,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]Project, error) {
	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
