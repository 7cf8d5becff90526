package users

import (
	"context"
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

// EnsureUser upserts the local row for a Firebase identity and returns its id.
// Empty fields never overwrite previously synced values.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, photo_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `
select id::text, firebase_uid, email, display_name, photo_url, created_at, updated_at, last_login_at
from users
where id = $1::uuid;
`
	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) GetByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	const q = `
select id::text, firebase_uid, email, display_name, photo_url, created_at, updated_at, last_login_at
from users
where firebase_uid = $1;
`
	return r.scanOne(r.db.QueryRow(ctx, q, uid))
}

// RecordLogin stamps last_login_at for the user.
func (r *Repo) RecordLogin(ctx context.Context, id string) error {
	const q = `update users set last_login_at = now() where id = $1::uuid;`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.FirebaseUID,
		&u.Email,
		&u.DisplayName,
		&u.PhotoURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
