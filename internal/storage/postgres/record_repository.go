package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// RecordRepository is the append-only journal of audit records. It backs
// the record feed and keeps a durable trail of every ledger and lifecycle
// operation.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// Append stores one record. Re-appending a record with an id already in the
// journal is treated as success, so a retried publish stays idempotent.
func (r *RecordRepository) Append(ctx context.Context, rec domain.Record) error {
	const stmt = `
INSERT INTO records (id, kind, event_id, ticket_id, from_identity, to_identity, amount, approved, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, stmt,
		rec.ID, rec.Kind, rec.EventID, rec.TicketID, rec.From, rec.To, rec.Amount, rec.Approved, rec.OccurredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// List returns the newest records first, capped at limit.
func (r *RecordRepository) List(ctx context.Context, limit int) ([]domain.Record, error) {
	const query = `
SELECT id, kind, event_id, ticket_id, from_identity, to_identity, amount, approved, occurred_at
FROM records
ORDER BY occurred_at DESC, id DESC
LIMIT $1`
	return r.query(ctx, query, limit)
}

// ListByEvent returns the records of one event in emission order.
func (r *RecordRepository) ListByEvent(ctx context.Context, eventID uint64) ([]domain.Record, error) {
	const query = `
SELECT id, kind, event_id, ticket_id, from_identity, to_identity, amount, approved, occurred_at
FROM records
WHERE event_id = $1
ORDER BY occurred_at ASC, id ASC`
	return r.query(ctx, query, eventID)
}

// ListByTicket returns the records of one ticket in emission order.
func (r *RecordRepository) ListByTicket(ctx context.Context, ticketID uint64) ([]domain.Record, error) {
	const query = `
SELECT id, kind, event_id, ticket_id, from_identity, to_identity, amount, approved, occurred_at
FROM records
WHERE ticket_id = $1
ORDER BY occurred_at ASC, id ASC`
	return r.query(ctx, query, ticketID)
}

func (r *RecordRepository) query(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.EventID, &rec.TicketID, &rec.From, &rec.To, &rec.Amount, &rec.Approved, &rec.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate records: %w", rows.Err())
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
