// Package redisq backs the waiting queue with Redis lists, one per
// class, so queued tickets survive an engine restart and can be shared
// by several engine nodes.
package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"
	"slotbook/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	classKeyPrefix  = "waitq:"
	ticketKeyPrefix = "waitq:ticket:"
)

type QueueStore struct {
	client redis.Cmdable
}

func NewQueueStore(client redis.Cmdable) *QueueStore {
	return &QueueStore{client: client}
}

type ticketRecord struct {
	ID         uuid.UUID  `json:"id"`
	Class      string     `json:"class"`
	Requester  string     `json:"requester"`
	Date       time.Time  `json:"date"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	WholeDay   bool       `json:"whole_day"`
	Capacity   int        `json:"capacity"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
}

func (s *QueueStore) Append(ctx context.Context, t *waiting.Ticket) error {
	payload, err := json.Marshal(toRecord(t))
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to marshal waiting ticket", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ticketKey(t.ID()), payload, 0)
	pipe.RPush(ctx, classKey(t.Class()), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to append waiting ticket", err)
	}
	return nil
}

func (s *QueueStore) ListByClass(ctx context.Context, class resource.Class) ([]*waiting.Ticket, error) {
	payloads, err := s.client.LRange(ctx, classKey(class), 0, -1).Result()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read waiting queue", err)
	}

	out := make([]*waiting.Ticket, 0, len(payloads))
	for _, payload := range payloads {
		var rec ticketRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to unmarshal waiting ticket", err)
		}
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// Delete uses LREM as the compare-and-delete arbiter: the payload is
// unique per ticket, so of two concurrent deleters exactly one sees a
// removal count of 1.
func (s *QueueStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	payload, err := s.client.Get(ctx, ticketKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to look up waiting ticket", err)
	}

	var rec ticketRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to unmarshal waiting ticket", err)
	}

	removed, err := s.client.LRem(ctx, classKey(resource.Class(rec.Class)), 1, payload).Result()
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to remove waiting ticket", err)
	}
	if removed == 0 {
		return false, nil
	}

	if err := s.client.Del(ctx, ticketKey(id)).Err(); err != nil {
		return true, infra.WrapRepoErr(infra.KindDBFailure, "failed to drop ticket payload key", err)
	}
	return true, nil
}

func classKey(class resource.Class) string {
	return classKeyPrefix + class.String()
}

func ticketKey(id uuid.UUID) string {
	return ticketKeyPrefix + id.String()
}

func toRecord(t *waiting.Ticket) ticketRecord {
	iv := t.DesiredInterval()
	rec := ticketRecord{
		ID:         t.ID(),
		Class:      t.Class().String(),
		Requester:  t.Requester(),
		Date:       iv.Date(),
		WholeDay:   iv.WholeDay(),
		Capacity:   t.DesiredCapacity(),
		EnqueuedAt: t.EnqueuedAt(),
	}
	if !iv.WholeDay() {
		start, end := iv.Start(), iv.End()
		rec.Start, rec.End = &start, &end
	}
	return rec
}

func fromRecord(rec ticketRecord) *waiting.Ticket {
	var start, end time.Time
	if rec.Start != nil {
		start = *rec.Start
	}
	if rec.End != nil {
		end = *rec.End
	}
	iv := reservation.ReconstructInterval(rec.Date, start, end, rec.WholeDay)
	return waiting.Reconstruct(rec.ID, resource.Class(rec.Class), rec.Requester, iv, rec.Capacity, rec.EnqueuedAt)
}
