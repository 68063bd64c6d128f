package engine

import (
	"context"

	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/keymutex"

	"github.com/google/uuid"
)

var ErrTicketNotFound = errs.New("waiting ticket not found")

// Queue holds unsatisfied requests per class in strict FIFO order.
// Scans and removals of one class are serialized by a class lock;
// classes never contend with each other.
type Queue struct {
	store QueueStore
	locks *keymutex.KeyMutex
}

func NewQueue(store QueueStore) *Queue {
	return &Queue{store: store, locks: keymutex.New()}
}

// Enqueue appends the ticket to its class FIFO and returns its
// 1-based position.
func (q *Queue) Enqueue(ctx context.Context, t *waiting.Ticket) (int, error) {
	unlock := q.locks.Lock(t.Class().String())
	defer unlock()

	if err := q.store.Append(ctx, t); err != nil {
		return 0, errs.Wrap(err, "failed to append waiting ticket")
	}
	pending, err := q.store.ListByClass(ctx, t.Class())
	if err != nil {
		return 0, errs.Wrap(err, "failed to read queue length")
	}
	return len(pending), nil
}

// PeekCompatible scans the class FIFO from the head and returns the
// first ticket that fits the freed resource's capacity and whose
// desired interval satisfies the given predicate. Earlier tickets that
// do not fit are skipped and stay queued: serving is first-compatible,
// not strictly first-in. This skip-incompatible rule is deliberate
// behavior, not a side effect.
func (q *Queue) PeekCompatible(ctx context.Context, unit *resource.Resource, satisfiable func(*waiting.Ticket) bool) (*waiting.Ticket, error) {
	unlock := q.locks.Lock(unit.Class().String())
	defer unlock()

	pending, err := q.store.ListByClass(ctx, unit.Class())
	if err != nil {
		return nil, errs.Wrap(err, "failed to scan waiting queue")
	}
	for _, t := range pending {
		if !t.FitsCapacity(unit.Capacity()) {
			continue
		}
		if satisfiable != nil && !satisfiable(t) {
			continue
		}
		return t, nil
	}
	return nil, nil
}

// Remove cancels a ticket. The store's delete is a compare-and-delete:
// with a drain racing a cancellation for the same ticket exactly one
// caller succeeds, the loser gets ErrTicketNotFound.
func (q *Queue) Remove(ctx context.Context, id uuid.UUID) error {
	removed, err := q.store.Delete(ctx, id)
	if err != nil {
		return errs.Wrap(err, "failed to delete waiting ticket")
	}
	if !removed {
		return ErrTicketNotFound
	}
	return nil
}

// Pending returns the class FIFO, head first.
func (q *Queue) Pending(ctx context.Context, class resource.Class) ([]*waiting.Ticket, error) {
	return q.store.ListByClass(ctx, class)
}
