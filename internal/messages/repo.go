package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Send appends a message to a match conversation and bumps the match's
// updated_at so it sorts to the top of the inbox.
func (r *Repo) Send(ctx context.Context, matchID, senderID, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	// Reject rather than truncate: a byte-offset cut could split a rune
	// and the caller deserves to know content would be lost.
	if len(body) > maxBodyLen {
		return nil, ErrBodyTooLong
	}

	ok, err := r.isParticipant(ctx, matchID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
insert into messages (match_id, sender_id, body)
values ($1::uuid, $2::uuid, $3)
returning id::text, match_id::text, sender_id::text, body, created_at;
`
	var m Message
	if err := tx.QueryRow(ctx, q, matchID, senderID, body).Scan(
		&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	const touch = `update matches set updated_at = now() where id = $1::uuid;`
	if _, err := tx.Exec(ctx, touch, matchID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns up to limit messages older than before, oldest first, for a
// participant of the match. A zero before means "latest page".
func (r *Repo) List(ctx context.Context, matchID, userID string, limit int, before time.Time) ([]Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if before.IsZero() {
		before = time.Now().Add(time.Second)
	}

	ok, err := r.isParticipant(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	const q = `
select id::text, match_id::text, sender_id::text, body, created_at
from (
    select * from messages
    where match_id = $1::uuid and created_at < $2
    order by created_at desc
    limit $3
) page
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, matchID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) isParticipant(ctx context.Context, matchID, userID string) (bool, error) {
	const q = `
select 1 from matches
where id = $1::uuid and (owner_id = $2::uuid or collaborator_id = $2::uuid);
`
	var one int
	err := r.db.QueryRow(ctx, q, matchID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
