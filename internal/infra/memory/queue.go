package memory

import (
	"context"
	"sync"

	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"

	"github.com/google/uuid"
)

type QueueStore struct {
	mu      sync.Mutex
	byClass map[resource.Class][]*waiting.Ticket
}

func NewQueueStore() *QueueStore {
	return &QueueStore{byClass: make(map[resource.Class][]*waiting.Ticket)}
}

func (s *QueueStore) Append(_ context.Context, t *waiting.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byClass[t.Class()] = append(s.byClass[t.Class()], snapshotTicket(t))
	return nil
}

func (s *QueueStore) ListByClass(_ context.Context, class resource.Class) ([]*waiting.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.byClass[class]
	out := make([]*waiting.Ticket, len(pending))
	for i, t := range pending {
		out[i] = snapshotTicket(t)
	}
	return out, nil
}

// Delete is compare-and-delete: it reports whether this caller was the
// one to remove the ticket.
func (s *QueueStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for class, pending := range s.byClass {
		for i, t := range pending {
			if t.ID() == id {
				s.byClass[class] = append(pending[:i:i], pending[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func snapshotTicket(t *waiting.Ticket) *waiting.Ticket {
	return waiting.Reconstruct(t.ID(), t.Class(), t.Requester(), t.DesiredInterval(), t.DesiredCapacity(), t.EnqueuedAt())
}
