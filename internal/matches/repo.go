package matches

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matchColumns = `m.id::text, m.project_id::text, p.public_id, m.application_id::text, m.owner_id::text, m.collaborator_id::text, m.status, m.created_at, m.updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Get returns a match visible to the given participant.
func (r *Repo) Get(ctx context.Context, id, userID string) (*Match, error) {
	const q = `
select ` + matchColumns + `
from matches m
join projects p on p.id = m.project_id
where m.id = $1::uuid and (m.owner_id = $2::uuid or m.collaborator_id = $2::uuid);
`
	return scanMatch(r.db.QueryRow(ctx, q, id, userID))
}

// ListMine returns matches where the user is on either side, newest first.
func (r *Repo) ListMine(ctx context.Context, userID string) ([]Match, error) {
	const q = `
select ` + matchColumns + `
from matches m
join projects p on p.id = m.project_id
where m.owner_id = $1::uuid or m.collaborator_id = $1::uuid
order by m.updated_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Match, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// SetStatus completes or cancels an active match. Participants only.
func (r *Repo) SetStatus(ctx context.Context, id, userID, status string) (*Match, error) {
	if status != StatusCompleted && status != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	const q = `
with upd as (
    update matches
    set status = $3, updated_at = now()
    where id = $1::uuid and status = 'active'
      and (owner_id = $2::uuid or collaborator_id = $2::uuid)
    returning *
)
select ` + matchColumns + `
from upd m
join projects p on p.id = m.project_id;
`
	m, err := scanMatch(r.db.QueryRow(ctx, q, id, userID, status))
	if errors.Is(err, ErrMatchNotFound) {
		cur, gerr := r.Get(ctx, id, userID)
		if gerr == nil && cur.Status != StatusActive {
			return nil, ErrInvalidTransition
		}
		return nil, ErrMatchNotFound
	}
	return m, err
}

func scanMatch(row pgx.Row) (*Match, error) {
	var m Match
	err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.ProjectPublicID,
		&m.ApplicationID,
		&m.OwnerID,
		&m.CollaboratorID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
