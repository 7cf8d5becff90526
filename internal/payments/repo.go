package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id::text, match_id::text, payer_id::text, payee_id::text, amount_cents, currency, status, reference, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreatePayment struct {
	MatchID     string
	AmountCents int64
	Currency    string
	Reference   string
}

// Create records a pending payment from the payer to the other side of the
// match.
func (r *Repo) Create(ctx context.Context, payerID string, in CreatePayment) (*Payment, error) {
	if in.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "usd"
	}

	const mq = `
select owner_id::text, collaborator_id::text
from matches
where id = $1::uuid and (owner_id = $2::uuid or collaborator_id = $2::uuid);
`
	var ownerID, collaboratorID string
	err := r.db.QueryRow(ctx, mq, in.MatchID, payerID).Scan(&ownerID, &collaboratorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotParticipant
	}
	if err != nil {
		return nil, err
	}

	payeeID := ownerID
	if payerID == ownerID {
		payeeID = collaboratorID
	}

	const q = `
insert into payments (match_id, payer_id, payee_id, amount_cents, currency, reference)
values ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)
returning ` + paymentColumns + `;
`
	return scanPayment(r.db.QueryRow(ctx, q,
		in.MatchID, payerID, payeeID, in.AmountCents, currency, in.Reference))
}

// SetStatus applies a status transition reported by either participant.
func (r *Repo) SetStatus(ctx context.Context, id, userID, status string) (*Payment, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	cur, err := r.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !canTransition(cur.Status, status) {
		return nil, ErrInvalidTransition
	}

	// The status guard makes the transition atomic; a concurrent writer
	// leaves us with zero rows instead of a lost update.
	const q = `
update payments
set status = $2, updated_at = now()
where id = $1::uuid and status = $3
returning ` + paymentColumns + `;
`
	p, err := scanPayment(r.db.QueryRow(ctx, q, id, status, cur.Status))
	if errors.Is(err, ErrPaymentNotFound) {
		return nil, ErrInvalidTransition
	}
	return p, err
}

// Get returns a payment visible to either side of it.
func (r *Repo) Get(ctx context.Context, id, userID string) (*Payment, error) {
	const q = `
select ` + paymentColumns + `
from payments
where id = $1::uuid and (payer_id = $2::uuid or payee_id = $2::uuid);
`
	return scanPayment(r.db.QueryRow(ctx, q, id, userID))
}

// ListByMatch returns a match's payments for a participant, newest first.
func (r *Repo) ListByMatch(ctx context.Context, matchID, userID string) ([]Payment, error) {
	const q = `
select ` + paymentColumns + `
from payments
where match_id = $1::uuid
  and exists (
      select 1 from matches
      where id = $1::uuid and (owner_id = $2::uuid or collaborator_id = $2::uuid)
  )
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, matchID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0, 8)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID,
		&p.MatchID,
		&p.PayerID,
		&p.PayeeID,
		&p.AmountCents,
		&p.Currency,
		&p.Status,
		&p.Reference,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
