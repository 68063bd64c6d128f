// Package postgres keeps the ledger, catalog and waitlist in the
// database, so an engine restart loses neither active reservations nor
// queued tickets: the ledger stays the single source of truth.
package postgres

import (
	"context"
	"errors"
	"time"

	"slotbook/internal/domain/resource"
	"slotbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) Insert(ctx context.Context, r *resource.Resource) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO resources (id, class, label, capacity, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID(), r.Class().String(), r.Label(), r.Capacity(), r.Active(), r.CreatedAt(),
	)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "resource already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert resource", err)
	}
	return nil
}

func (s *CatalogStore) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, class, label, capacity, active, created_at
		 FROM resources WHERE id = $1`, id)
	return scanResource(row)
}

func (s *CatalogStore) ListActive(ctx context.Context, class resource.Class) ([]*resource.Resource, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, class, label, capacity, active, created_at
		 FROM resources WHERE class = $1 AND active ORDER BY label`, class.String())
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list resources", err)
	}
	defer rows.Close()

	var out []*resource.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *CatalogStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE resources SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "resource not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*resource.Resource, error) {
	var (
		id        uuid.UUID
		class     string
		label     string
		capacity  int
		active    bool
		createdAt time.Time
	)
	if err := row.Scan(&id, &class, &label, &capacity, &active, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "resource not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan resource", err)
	}
	return resource.Reconstruct(id, resource.Class(class), label, capacity, active, createdAt), nil
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
