package postgres

import (
	"context"
	"errors"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"
	"slotbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QueueStore struct {
	pool *pgxpool.Pool
}

func NewQueueStore(pool *pgxpool.Pool) *QueueStore {
	return &QueueStore{pool: pool}
}

func (s *QueueStore) Append(ctx context.Context, t *waiting.Ticket) error {
	iv := t.DesiredInterval()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO waiting_tickets (id, class, requester, on_date, start_at, end_at, whole_day, capacity, enqueued_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID(), t.Class().String(), t.Requester(), iv.Date(),
		nullable(iv.Start()), nullable(iv.End()), iv.WholeDay(),
		t.DesiredCapacity(), t.EnqueuedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to append waiting ticket", err)
	}
	return nil
}

func (s *QueueStore) ListByClass(ctx context.Context, class resource.Class) ([]*waiting.Ticket, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, class, requester, on_date, start_at, end_at, whole_day, capacity, enqueued_at
		 FROM waiting_tickets WHERE class = $1 ORDER BY enqueued_at, id`, class.String())
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list waiting tickets", err)
	}
	defer rows.Close()

	var out []*waiting.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete reports whether this caller removed the row, so a drain and a
// cancellation racing for the same ticket resolve to exactly one winner.
func (s *QueueStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM waiting_tickets WHERE id = $1`, id)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to delete waiting ticket", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTicket(row rowScanner) (*waiting.Ticket, error) {
	var (
		id         uuid.UUID
		class      string
		requester  string
		onDate     time.Time
		startAt    *time.Time
		endAt      *time.Time
		wholeDay   bool
		capacity   int
		enqueuedAt time.Time
	)
	if err := row.Scan(&id, &class, &requester, &onDate, &startAt, &endAt, &wholeDay, &capacity, &enqueuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "waiting ticket not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan waiting ticket", err)
	}

	iv := reservation.ReconstructInterval(onDate, deref(startAt), deref(endAt), wholeDay)
	return waiting.Reconstruct(id, resource.Class(class), requester, iv, capacity, enqueuedAt), nil
}
