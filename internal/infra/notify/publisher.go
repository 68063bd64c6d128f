// Package notify delivers ReassignmentOccurred events to the
// notification collaborator. Delivery is fire-and-forget by contract:
// the engine never fails a release because an event could not be sent.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"slotbook/internal/engine"
	"slotbook/internal/pkg/errs"

	"github.com/hibiken/asynq"
)

// TypeReassignmentOccurred is the task type the notification workers
// subscribe to.
const TypeReassignmentOccurred = "reassignment:occurred"

// AsynqPublisher hands events to the notification worker fleet over
// Redis.
type AsynqPublisher struct {
	client *asynq.Client
	queue  string
}

func NewAsynqPublisher(client *asynq.Client, queue string) *AsynqPublisher {
	return &AsynqPublisher{client: client, queue: queue}
}

func (p *AsynqPublisher) Publish(ctx context.Context, ev engine.ReassignmentOccurred) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "failed to marshal reassignment event")
	}

	task := asynq.NewTask(TypeReassignmentOccurred, payload)
	if _, err := p.client.EnqueueContext(ctx, task, asynq.Queue(p.queue)); err != nil {
		return errs.Wrap(err, "failed to enqueue reassignment event")
	}
	return nil
}

// LogPublisher is the single-node default: it records the event in the
// structured log instead of dispatching it.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev engine.ReassignmentOccurred) error {
	p.logger.Info("reassignment occurred",
		"ticket_id", ev.TicketID,
		"resource_id", ev.ResourceID,
		"reservation_id", ev.ReservationID,
		"requester", ev.Requester,
		"class", ev.Class,
	)
	return nil
}
