package memory

import (
	"context"
	"sync"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/infra"

	"github.com/google/uuid"
)

type LedgerStore struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*reservation.Reservation
	order        []uuid.UUID
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{reservations: make(map[uuid.UUID]*reservation.Reservation)}
}

func (s *LedgerStore) Insert(_ context.Context, rsv *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[rsv.ID()]; exists {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "reservation already exists", nil)
	}
	s.reservations[rsv.ID()] = snapshotReservation(rsv)
	s.order = append(s.order, rsv.ID())
	return nil
}

func (s *LedgerStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rsv, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return snapshotReservation(rsv), nil
}

func (s *LedgerStore) MarkReleased(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rsv, ok := s.reservations[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	if !rsv.IsActive() {
		return infra.WrapRepoErr(infra.KindConflict, "reservation already released", nil)
	}
	return rsv.Release()
}

func (s *LedgerStore) ActiveFor(_ context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dateKey := date.Format("2006-01-02")
	var out []*reservation.Reservation
	for _, id := range s.order {
		rsv := s.reservations[id]
		if rsv.ResourceID() == resourceID && rsv.IsActive() && rsv.Interval().DateKey() == dateKey {
			out = append(out, snapshotReservation(rsv))
		}
	}
	return out, nil
}

func (s *LedgerStore) ListByRequester(_ context.Context, requester string) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*reservation.Reservation
	for _, id := range s.order {
		rsv := s.reservations[id]
		if rsv.Requester() == requester {
			out = append(out, snapshotReservation(rsv))
		}
	}
	return out, nil
}

func snapshotReservation(rsv *reservation.Reservation) *reservation.Reservation {
	return reservation.Reconstruct(rsv.ID(), rsv.ResourceID(), rsv.Requester(), rsv.Interval(), rsv.Status(), rsv.CreatedAt())
}
