//go:build unit

package engine_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"
	"slotbook/internal/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enqueueTicket(t *testing.T, e *testEngine, class resource.Class, requester string, capacity int) *waiting.Ticket {
	t.Helper()

	ticket, err := waiting.NewTicket(class, requester, reservation.NewWholeDay(testDay), capacity, e.clock.Now())
	require.NoError(t, err)
	_, err = e.queue.Enqueue(context.Background(), ticket)
	require.NoError(t, err)
	e.clock.Add(time.Second)
	return ticket
}

func TestQueue_FIFOWithinClass(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first := enqueueTicket(t, e, resource.ClassParking, "alice", 1)
	second := enqueueTicket(t, e, resource.ClassParking, "bob", 1)

	slot, err := resource.NewResource(resource.ClassParking, "A-01", 1, e.clock.Now())
	require.NoError(t, err)

	got, err := e.queue.PeekCompatible(ctx, slot, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID(), got.ID())

	require.NoError(t, e.queue.Remove(ctx, first.ID()))

	got, err = e.queue.PeekCompatible(ctx, slot, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID(), got.ID())
}

func TestQueue_SkipIncompatibleServeFirstCompatible(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	bigParty := enqueueTicket(t, e, resource.ClassTable, "party-of-six", 6)
	smallParty := enqueueTicket(t, e, resource.ClassTable, "party-of-two", 2)

	smallTable, err := resource.NewResource(resource.ClassTable, "T-2", 2, e.clock.Now())
	require.NoError(t, err)

	// The freed two-seater cannot serve the six-top at the head; the
	// later two-top is served while the six-top stays queued.
	got, err := e.queue.PeekCompatible(ctx, smallTable, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, smallParty.ID(), got.ID())

	pending, err := e.queue.Pending(ctx, resource.ClassTable)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, bigParty.ID(), pending[0].ID())
}

func TestQueue_PeekCompatibleHonorsSatisfiable(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	blocked := enqueueTicket(t, e, resource.ClassRoom, "blocked", 1)
	open := enqueueTicket(t, e, resource.ClassRoom, "open", 1)

	room, err := resource.NewResource(resource.ClassRoom, "R-1", 8, e.clock.Now())
	require.NoError(t, err)

	got, err := e.queue.PeekCompatible(ctx, room, func(tk *waiting.Ticket) bool {
		return tk.ID() != blocked.ID()
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, open.ID(), got.ID())
}

func TestQueue_PeekCompatibleEmpty(t *testing.T) {
	e := newTestEngine(t)

	slot, err := resource.NewResource(resource.ClassParking, "A-01", 1, e.clock.Now())
	require.NoError(t, err)

	got, err := e.queue.PeekCompatible(context.Background(), slot, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQueue_RemoveLoserFailsCleanly(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	ticket := enqueueTicket(t, e, resource.ClassParking, "alice", 1)

	require.NoError(t, e.queue.Remove(ctx, ticket.ID()))
	assert.ErrorIs(t, e.queue.Remove(ctx, ticket.ID()), engine.ErrTicketNotFound)
	assert.ErrorIs(t, e.queue.Remove(ctx, uuid.New()), engine.ErrTicketNotFound)
}

func TestQueue_ClassesDoNotMix(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	enqueueTicket(t, e, resource.ClassParking, "driver", 1)
	deskTicket := enqueueTicket(t, e, resource.ClassDesk, "worker", 1)

	desk, err := resource.NewResource(resource.ClassDesk, "D-1", 1, e.clock.Now())
	require.NoError(t, err)

	got, err := e.queue.PeekCompatible(ctx, desk, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, deskTicket.ID(), got.ID())
}
