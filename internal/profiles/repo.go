package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Ensure seeds a default profile row if none exists yet.
func (r *Repo) Ensure(ctx context.Context, userID, displayName string) error {
	const q = `
insert into profiles (user_id, display_name)
values ($1::uuid, $2)
on conflict (user_id) do nothing;
`
	_, err := r.db.Exec(ctx, q, userID, displayName)
	return err
}

func (r *Repo) Get(ctx context.Context, userID string) (*Profile, error) {
	const q = `
select user_id::text, display_name, role, genres, bio, location, avatar_url, links, created_at, updated_at
from profiles
where user_id = $1::uuid;
`
	return scanProfile(r.db.QueryRow(ctx, q, userID))
}

// Save writes the full profile row.
func (r *Repo) Save(ctx context.Context, p *Profile) error {
	if !ValidRole(p.Role) {
		return ErrInvalidRole
	}

	linksJSON, err := json.Marshal(p.Links)
	if err != nil {
		linksJSON = []byte("{}")
	}

	const q = `
update profiles
set display_name = $2, role = $3, genres = $4, bio = $5, location = $6,
    avatar_url = $7, links = $8, updated_at = now()
where user_id = $1::uuid
returning updated_at;
`
	err = r.db.QueryRow(ctx, q,
		p.UserID, p.DisplayName, p.Role, p.Genres, p.Bio, p.Location, p.AvatarURL, linksJSON,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProfileNotFound
	}
	return err
}

// BrowseFilter narrows the public profile listing.
type BrowseFilter struct {
	Role   string
	Genre  string
	Limit  int
	Offset int
}

func (r *Repo) Browse(ctx context.Context, f BrowseFilter) ([]Profile, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Role != "" && !ValidRole(f.Role) {
		return nil, ErrInvalidRole
	}

	const q = `
select user_id::text, display_name, role, genres, bio, location, avatar_url, links, created_at, updated_at
from profiles
where ($1 = '' or role = $1)
  and ($2 = '' or $2 = any(genres))
order by updated_at desc
limit $3 offset $4;
`
	rows, err := r.db.Query(ctx, q, f.Role, f.Genre, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0, f.Limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var linksJSON []byte

	err := row.Scan(
		&p.UserID,
		&p.DisplayName,
		&p.Role,
		&p.Genres,
		&p.Bio,
		&p.Location,
		&p.AvatarURL,
		&linksJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	if len(linksJSON) > 0 {
		if err := json.Unmarshal(linksJSON, &p.Links); err != nil {
			p.Links = map[string]string{}
		}
	}
	return &p, nil
}
