package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appColumns = `a.id::text, a.project_id::text, p.public_id, a.applicant_id::text, a.message, a.status, a.created_at, a.updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Submit creates a pending application against an open project. The project
// row gates everything server side: missing, deleted, non-open and
// self-owned projects are all rejected here rather than trusted to the
// client.
func (r *Repo) Submit(ctx context.Context, projectPublicID, applicantID, message string) (*Application, error) {
	const pq = `
select id::text, owner_id::text, status
from projects
where public_id = $1 and deleted_at is null;
`
	var projectID, ownerID, status string
	err := r.db.QueryRow(ctx, pq, projectPublicID).Scan(&projectID, &ownerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	if ownerID == applicantID {
		return nil, ErrOwnProject
	}
	if status != "open" {
		return nil, ErrProjectNotOpen
	}

	const q = `
with ins as (
    insert into applications (project_id, applicant_id, message)
    values ($1::uuid, $2::uuid, $3)
    returning *
)
select ` + appColumns + `
from ins a
join projects p on p.id = a.project_id;
`
	app, err := scanApplication(r.db.QueryRow(ctx, q, projectID, applicantID, message))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}
	return app, nil
}

// Get returns an application visible to the given user (applicant or
// project owner).
func (r *Repo) Get(ctx context.Context, id, userID string) (*Application, error) {
	const q = `
select ` + appColumns + `
from applications a
join projects p on p.id = a.project_id
where a.id = $1::uuid and (a.applicant_id = $2::uuid or p.owner_id = $2::uuid);
`
	return scanApplication(r.db.QueryRow(ctx, q, id, userID))
}

// ListByProject returns a project's applications, owner only.
func (r *Repo) ListByProject(ctx context.Context, projectPublicID, ownerID string) ([]Application, error) {
	const q = `
select ` + appColumns + `
from applications a
join projects p on p.id = a.project_id
where p.public_id = $1 and p.owner_id = $2::uuid
order by a.created_at desc;
`
	rows, err := r.db.Query(ctx, q, projectPublicID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListMine returns the user's own applications, newest first.
func (r *Repo) ListMine(ctx context.Context, applicantID string) ([]Application, error) {
	const q = `
select ` + appColumns + `
from applications a
join projects p on p.id = a.project_id
where a.applicant_id = $1::uuid
order by a.created_at desc;
`
	rows, err := r.db.Query(ctx, q, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

// Withdraw moves a pending application to withdrawn, applicant only.
func (r *Repo) Withdraw(ctx context.Context, id, applicantID string) (*Application, error) {
	const q = `
with upd as (
    update applications
    set status = 'withdrawn', updated_at = now()
    where id = $1::uuid and applicant_id = $2::uuid and status = 'pending'
    returning *
)
select ` + appColumns + `
from upd a
join projects p on p.id = a.project_id;
`
	app, err := scanApplication(r.db.QueryRow(ctx, q, id, applicantID))
	if errors.Is(err, ErrApplicationNotFound) {
		// Distinguish "not yours / missing" from "already decided".
		cur, gerr := r.Get(ctx, id, applicantID)
		if gerr == nil && cur.Status != StatusPending {
			return nil, ErrAlreadyDecided
		}
		return nil, ErrApplicationNotFound
	}
	return app, err
}

// DecideResult carries the decided application and, on accept, the new match id.
type DecideResult struct {
	Application *Application
	MatchID     string
}

// Decide accepts or rejects a pending application. Owner only. Accepting
// creates the match in the same transaction.
func (r *Repo) Decide(ctx context.Context, id, ownerID string, accept bool) (*DecideResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	status := StatusRejected
	if accept {
		status = StatusAccepted
	}

	const q = `
with upd as (
    update applications
    set status = $3, updated_at = now()
    where id = $1::uuid and status = 'pending'
      and project_id in (select id from projects where owner_id = $2::uuid)
    returning *
)
select ` + appColumns + `
from upd a
join projects p on p.id = a.project_id;
`
	app, err := scanApplication(tx.QueryRow(ctx, q, id, ownerID, status))
	if errors.Is(err, ErrApplicationNotFound) {
		cur, gerr := r.Get(ctx, id, ownerID)
		if gerr == nil && cur.Status != StatusPending {
			return nil, ErrAlreadyDecided
		}
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}

	res := &DecideResult{Application: app}

	if accept {
		const mq = `
insert into matches (project_id, application_id, owner_id, collaborator_id)
values ($1::uuid, $2::uuid, $3::uuid, $4::uuid)
returning id::text;
`
		if err := tx.QueryRow(ctx, mq, app.ProjectID, app.ID, ownerID, app.ApplicantID).Scan(&res.MatchID); err != nil {
			return nil, fmt.Errorf("create match: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(
		&a.ID,
		&a.ProjectID,
		&a.ProjectPublicID,
		&a.ApplicantID,
		&a.Message,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]Application, error) {
	out := make([]Application, 0, 16)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
