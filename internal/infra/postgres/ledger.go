package postgres

import (
	"context"
	"errors"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerStore struct {
	pool *pgxpool.Pool
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Insert re-checks overlap inside a transaction that locks the
// resource row. The engine's keyed mutex already serializes holds
// within one process; the row lock extends the guarantee across
// processes sharing the database.
func (s *LedgerStore) Insert(ctx context.Context, rsv *reservation.Reservation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var resourceID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM resources WHERE id = $1 FOR UPDATE`, rsv.ResourceID(),
	).Scan(&resourceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr(infra.KindNotFound, "resource not found", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to lock resource row", err)
	}

	iv := rsv.Interval()
	var conflict bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM reservations
		    WHERE resource_id = $1 AND on_date = $2 AND status = 'active'
		      AND (whole_day OR $3 OR (start_at < $5 AND $4 < end_at))
		 )`,
		rsv.ResourceID(), iv.Date(), iv.WholeDay(), nullable(iv.Start()), nullable(iv.End()),
	).Scan(&conflict)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to check overlap", err)
	}
	if conflict {
		return infra.WrapRepoErr(infra.KindConflict, "overlapping active reservation", nil)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO reservations (id, resource_id, requester, on_date, start_at, end_at, whole_day, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rsv.ID(), rsv.ResourceID(), rsv.Requester(), iv.Date(),
		nullable(iv.Start()), nullable(iv.End()), iv.WholeDay(),
		rsv.Status().String(), rsv.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert reservation", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to commit reservation", err)
	}
	return nil
}

func (s *LedgerStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, resource_id, requester, on_date, start_at, end_at, whole_day, status, created_at
		 FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

func (s *LedgerStore) MarkReleased(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reservations SET status = 'released' WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to release reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindConflict, "reservation not active", nil)
	}
	return nil
}

func (s *LedgerStore) ActiveFor(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, resource_id, requester, on_date, start_at, end_at, whole_day, status, created_at
		 FROM reservations
		 WHERE resource_id = $1 AND on_date = $2 AND status = 'active'
		 ORDER BY created_at`, resourceID, date)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query active reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (s *LedgerStore) ListByRequester(ctx context.Context, requester string) ([]*reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, resource_id, requester, on_date, start_at, end_at, whole_day, status, created_at
		 FROM reservations WHERE requester = $1 ORDER BY created_at`, requester)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rsv)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id         uuid.UUID
		resourceID uuid.UUID
		requester  string
		onDate     time.Time
		startAt    *time.Time
		endAt      *time.Time
		wholeDay   bool
		status     string
		createdAt  time.Time
	)
	if err := row.Scan(&id, &resourceID, &requester, &onDate, &startAt, &endAt, &wholeDay, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
	}

	iv := reservation.ReconstructInterval(onDate, deref(startAt), deref(endAt), wholeDay)
	return reservation.Reconstruct(id, resourceID, requester, iv, reservation.Status(status), createdAt), nil
}

func nullable(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
