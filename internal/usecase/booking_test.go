//go:build unit

package usecase_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/engine"
	"slotbook/internal/infra/memory"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type capturePublisher struct {
	mu     sync.Mutex
	events []engine.ReassignmentOccurred
	fail   error
}

func (p *capturePublisher) Publish(_ context.Context, ev engine.ReassignmentOccurred) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Events() []engine.ReassignmentOccurred {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]engine.ReassignmentOccurred, len(p.events))
	copy(out, p.events)
	return out
}

type bookingFixture struct {
	commands  usecase.BookingCommands
	queries   usecase.BookingQueries
	catalog   *engine.Catalog
	queue     *engine.Queue
	clock     *clock.MockClock
	published *capturePublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	return newBookingFixtureWithQueueStore(t, memory.NewQueueStore())
}

func newBookingFixtureWithQueueStore(t *testing.T, queueStore engine.QueueStore) *bookingFixture {
	t.Helper()

	clk := clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	catalog := engine.NewCatalog(memory.NewCatalogStore())
	ledger := engine.NewLedger(memory.NewLedgerStore(), catalog, clk)
	availability := engine.NewAvailability(catalog, ledger)
	queue := engine.NewQueue(queueStore)
	published := &capturePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &bookingFixture{
		commands:  usecase.NewBookingCommands(catalog, ledger, availability, queue, published, clk, logger),
		queries:   usecase.NewBookingQueries(catalog, ledger, availability, queue, logger),
		catalog:   catalog,
		queue:     queue,
		clock:     clk,
		published: published,
	}
}

func (f *bookingFixture) addUnit(t *testing.T, class resource.Class, label string, capacity int) *resource.Resource {
	t.Helper()

	unit, err := resource.NewResource(class, label, capacity, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.catalog.Add(context.Background(), unit))
	return unit
}

func (f *bookingFixture) bookWholeDay(t *testing.T, class resource.Class, requester string) *usecase.BookResult {
	t.Helper()

	res, err := f.commands.Book(context.Background(), usecase.BookParams{
		Class:     class,
		Requester: requester,
		Date:      bookingDay,
	})
	require.NoError(t, err)
	f.clock.Add(time.Second)
	return res
}

func windowParams(class resource.Class, requester string, startHour, endHour, minCapacity int) usecase.BookParams {
	start := time.Date(bookingDay.Year(), bookingDay.Month(), bookingDay.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(bookingDay.Year(), bookingDay.Month(), bookingDay.Day(), endHour, 0, 0, 0, time.UTC)
	return usecase.BookParams{
		Class:       class,
		Requester:   requester,
		Date:        bookingDay,
		Start:       &start,
		End:         &end,
		MinCapacity: minCapacity,
	}
}

func TestBooking_PoolExhaustionThenReleaseReassigns(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	p1 := f.addUnit(t, resource.ClassParking, "P1", 1)
	p2 := f.addUnit(t, resource.ClassParking, "P2", 1)
	p3 := f.addUnit(t, resource.ClassParking, "P3", 1)

	alice := f.bookWholeDay(t, resource.ClassParking, "alice")
	bob := f.bookWholeDay(t, resource.ClassParking, "bob")
	carol := f.bookWholeDay(t, resource.ClassParking, "carol")

	require.Equal(t, usecase.StatusReserved, alice.Status)
	require.Equal(t, usecase.StatusReserved, bob.Status)
	require.Equal(t, usecase.StatusReserved, carol.Status)
	assert.Equal(t, p1.ID(), alice.Reservation.ResourceID)
	assert.Equal(t, p2.ID(), bob.Reservation.ResourceID)
	assert.Equal(t, p3.ID(), carol.Reservation.ResourceID)

	// Pool exhausted: dana parks on the waitlist instead of failing.
	dana := f.bookWholeDay(t, resource.ClassParking, "dana")
	require.Equal(t, usecase.StatusQueued, dana.Status)
	require.NotNil(t, dana.Ticket)
	assert.Equal(t, 1, dana.Ticket.Position)
	assert.Nil(t, dana.Reservation)

	free, err := f.queries.FreeUnits(ctx, usecase.FreeUnitsParams{Class: resource.ClassParking, Date: bookingDay})
	require.NoError(t, err)
	assert.Empty(t, free)

	// Bob releases P2: the freed slot goes straight to dana, never back
	// to the open pool.
	require.NoError(t, f.commands.Release(ctx, bob.Reservation.ID))

	events := f.published.Events()
	require.Len(t, events, 1)
	assert.Equal(t, dana.Ticket.ID, events[0].TicketID)
	assert.Equal(t, p2.ID(), events[0].ResourceID)
	assert.Equal(t, "dana", events[0].Requester)
	assert.Equal(t, resource.ClassParking, events[0].Class)

	free, err = f.queries.FreeUnits(ctx, usecase.FreeUnitsParams{Class: resource.ClassParking, Date: bookingDay})
	require.NoError(t, err)
	assert.Empty(t, free)

	waitlist, err := f.queries.Waitlist(ctx, resource.ClassParking)
	require.NoError(t, err)
	assert.Empty(t, waitlist)

	danaRsv, err := f.queries.GetReservation(ctx, events[0].ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "dana", danaRsv.Requester)
	assert.Equal(t, p2.ID(), danaRsv.ResourceID)
	assert.True(t, danaRsv.WholeDay)
}

func TestBooking_AutoAssignPicksLowestLabel(t *testing.T) {
	f := newBookingFixture(t)

	f.addUnit(t, resource.ClassParking, "A-03", 1)
	first := f.addUnit(t, resource.ClassParking, "A-01", 1)
	f.addUnit(t, resource.ClassParking, "A-07", 1)

	res := f.bookWholeDay(t, resource.ClassParking, "alice")
	require.Equal(t, usecase.StatusReserved, res.Status)
	assert.Equal(t, first.ID(), res.Reservation.ResourceID)
}

func TestBooking_ExplicitPick(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	slot := f.addUnit(t, resource.ClassParking, "A-01", 1)
	f.addUnit(t, resource.ClassParking, "A-02", 1)
	desk := f.addUnit(t, resource.ClassDesk, "D-01", 1)

	id := slot.ID()
	taken, err := f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Requester: "alice", Date: bookingDay, ResourceID: &id,
	})
	require.NoError(t, err)
	require.Equal(t, usecase.StatusReserved, taken.Status)
	assert.Equal(t, slot.ID(), taken.Reservation.ResourceID)

	// A pinned unit is never substituted: the conflict surfaces even
	// though A-02 is free.
	_, err = f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Requester: "bob", Date: bookingDay, ResourceID: &id,
	})
	assert.ErrorIs(t, err, usecase.ErrResourceUnavailable)

	unknown := uuid.New()
	_, err = f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Requester: "bob", Date: bookingDay, ResourceID: &unknown,
	})
	assert.ErrorIs(t, err, usecase.ErrResourceNotFound)

	deskID := desk.ID()
	_, err = f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Requester: "bob", Date: bookingDay, ResourceID: &deskID,
	})
	assert.ErrorIs(t, err, usecase.ErrClassMismatch)
}

func TestBooking_ExplicitPickRetiredUnit(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	slot := f.addUnit(t, resource.ClassParking, "A-01", 1)
	require.NoError(t, f.catalog.SetActive(ctx, slot.ID(), false))

	id := slot.ID()
	_, err := f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Requester: "alice", Date: bookingDay, ResourceID: &id,
	})
	assert.ErrorIs(t, err, usecase.ErrResourceUnavailable)
}

func TestBooking_InvalidRequests(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassTable, "T-4", 4)

	_, err := f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassParking, Date: bookingDay,
	})
	assert.ErrorIs(t, err, usecase.ErrEmptyRequester)

	_, err = f.commands.Book(ctx, usecase.BookParams{
		Class: "boat", Requester: "alice", Date: bookingDay,
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidClass)

	// Windowed classes need both ends of the window.
	_, err = f.commands.Book(ctx, usecase.BookParams{
		Class: resource.ClassTable, Requester: "alice", Date: bookingDay,
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidInterval)

	reversed := windowParams(resource.ClassTable, "alice", 20, 18, 1)
	_, err = f.commands.Book(ctx, reversed)
	assert.ErrorIs(t, err, usecase.ErrInvalidInterval)

	zeroLength := windowParams(resource.ClassTable, "alice", 18, 18, 1)
	_, err = f.commands.Book(ctx, zeroLength)
	assert.ErrorIs(t, err, usecase.ErrInvalidInterval)

	// A window must stay inside its date's calendar day.
	spilling := windowParams(resource.ClassTable, "alice", 23, 23, 1)
	*spilling.End = bookingDay.AddDate(0, 0, 1).Add(time.Hour)
	_, err = f.commands.Book(ctx, spilling)
	assert.ErrorIs(t, err, usecase.ErrInvalidInterval)
}

func TestBooking_WindowCannotSpillIntoNextDay(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	room := f.addUnit(t, resource.ClassRoom, "R-1", 4)
	roomID := room.ID()

	// 23:00 on the booking date running past midnight would collide in
	// wall-clock time with next-day holds while the per-day overlap
	// check never sees it. It must be rejected outright.
	overnight := windowParams(resource.ClassRoom, "alice", 23, 23, 1)
	*overnight.End = bookingDay.AddDate(0, 0, 1).Add(time.Hour)
	overnight.ResourceID = &roomID
	_, err := f.commands.Book(ctx, overnight)
	assert.ErrorIs(t, err, usecase.ErrInvalidInterval)

	// The next-day slot stays bookable.
	nextDay := bookingDay.AddDate(0, 0, 1)
	start := nextDay
	end := nextDay.Add(30 * time.Minute)
	res, err := f.commands.Book(ctx, usecase.BookParams{
		Class:      resource.ClassRoom,
		Requester:  "bob",
		Date:       nextDay,
		Start:      &start,
		End:        &end,
		ResourceID: &roomID,
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusReserved, res.Status)
}

func TestBooking_ReleaseErrors(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassDesk, "D-01", 1)
	res := f.bookWholeDay(t, resource.ClassDesk, "alice")

	require.NoError(t, f.commands.Release(ctx, res.Reservation.ID))
	assert.ErrorIs(t, f.commands.Release(ctx, res.Reservation.ID), usecase.ErrAlreadyReleased)
	assert.ErrorIs(t, f.commands.Release(ctx, uuid.New()), usecase.ErrReservationNotFound)
}

func TestBooking_ReassignSkipsIncompatibleTicket(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassTable, "T-2", 2)

	held, err := f.commands.Book(ctx, windowParams(resource.ClassTable, "early-birds", 18, 20, 2))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusReserved, held.Status)

	// The only table is taken, so both parties queue: a six-top first,
	// then a two-top.
	sixTop, err := f.commands.Book(ctx, windowParams(resource.ClassTable, "party-of-six", 18, 20, 6))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusQueued, sixTop.Status)
	f.clock.Add(time.Second)

	twoTop, err := f.commands.Book(ctx, windowParams(resource.ClassTable, "party-of-two", 18, 20, 2))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusQueued, twoTop.Status)
	assert.Equal(t, 2, twoTop.Ticket.Position)

	require.NoError(t, f.commands.Release(ctx, held.Reservation.ID))

	// The freed two-seater cannot serve the six-top; the later two-top
	// is reassigned and the six-top stays first in line.
	events := f.published.Events()
	require.Len(t, events, 1)
	assert.Equal(t, twoTop.Ticket.ID, events[0].TicketID)
	assert.Equal(t, "party-of-two", events[0].Requester)

	waitlist, err := f.queries.Waitlist(ctx, resource.ClassTable)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, sixTop.Ticket.ID, waitlist[0].ID)
	assert.Equal(t, 1, waitlist[0].Position)
}

func TestBooking_ReassignSkipsOverlappingDesire(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassRoom, "R-1", 8)

	morning, err := f.commands.Book(ctx, windowParams(resource.ClassRoom, "standup", 9, 10, 1))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusReserved, morning.Status)

	afternoon, err := f.commands.Book(ctx, windowParams(resource.ClassRoom, "review", 14, 16, 1))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusReserved, afternoon.Status)

	// Two parties want overlapping afternoon windows; only the one
	// clear of the remaining 14:00 hold can take the freed room.
	blocked, err := f.commands.Book(ctx, windowParams(resource.ClassRoom, "planning", 13, 15, 1))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusQueued, blocked.Status)
	f.clock.Add(time.Second)

	clear, err := f.commands.Book(ctx, windowParams(resource.ClassRoom, "retro", 9, 10, 1))
	require.NoError(t, err)
	require.Equal(t, usecase.StatusQueued, clear.Status)

	require.NoError(t, f.commands.Release(ctx, morning.Reservation.ID))

	events := f.published.Events()
	require.Len(t, events, 1)
	assert.Equal(t, clear.Ticket.ID, events[0].TicketID)

	waitlist, err := f.queries.Waitlist(ctx, resource.ClassRoom)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, blocked.Ticket.ID, waitlist[0].ID)
}

func TestBooking_ReleaseWithEmptyQueueFreesUnit(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassParking, "A-01", 1)
	res := f.bookWholeDay(t, resource.ClassParking, "alice")

	require.NoError(t, f.commands.Release(ctx, res.Reservation.ID))
	assert.Empty(t, f.published.Events())

	free, err := f.queries.FreeUnits(ctx, usecase.FreeUnitsParams{Class: resource.ClassParking, Date: bookingDay})
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "A-01", free[0].Label)
}

func TestBooking_ReassignSurvivesPublishFailure(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassDesk, "D-01", 1)
	res := f.bookWholeDay(t, resource.ClassDesk, "alice")
	queued := f.bookWholeDay(t, resource.ClassDesk, "bob")
	require.Equal(t, usecase.StatusQueued, queued.Status)

	f.published.fail = assert.AnError
	require.NoError(t, f.commands.Release(ctx, res.Reservation.ID))

	// The event was lost but the reassignment stands: bob holds the desk
	// and his ticket is gone.
	waitlist, err := f.queries.Waitlist(ctx, resource.ClassDesk)
	require.NoError(t, err)
	assert.Empty(t, waitlist)

	held, err := f.queries.ListRequesterReservations(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "active", held[0].Status)
}

func TestBooking_CancelWaiting(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.addUnit(t, resource.ClassParking, "A-01", 1)
	res := f.bookWholeDay(t, resource.ClassParking, "alice")
	queued := f.bookWholeDay(t, resource.ClassParking, "bob")
	require.Equal(t, usecase.StatusQueued, queued.Status)

	require.NoError(t, f.commands.CancelWaiting(ctx, queued.Ticket.ID))
	assert.ErrorIs(t, f.commands.CancelWaiting(ctx, queued.Ticket.ID), usecase.ErrTicketNotFound)

	// With bob gone the freed slot returns to the pool.
	require.NoError(t, f.commands.Release(ctx, res.Reservation.ID))
	assert.Empty(t, f.published.Events())

	free, err := f.queries.FreeUnits(ctx, usecase.FreeUnitsParams{Class: resource.ClassParking, Date: bookingDay})
	require.NoError(t, err)
	assert.Len(t, free, 1)
}

func TestBooking_QueuedIsNotAnError(t *testing.T) {
	f := newBookingFixture(t)

	res := f.bookWholeDay(t, resource.ClassParking, "alice")
	require.Equal(t, usecase.StatusQueued, res.Status)
	require.NotNil(t, res.Ticket)
	assert.Equal(t, "alice", res.Ticket.Requester)
	assert.Equal(t, 1, res.Ticket.Position)
}

// brokenDeleteQueueStore fails every Delete, as a queue backend with a
// lost connection would.
type brokenDeleteQueueStore struct {
	engine.QueueStore
}

func (s brokenDeleteQueueStore) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, assert.AnError
}

func TestBooking_ReassignAbortsWhenTicketRemovalFails(t *testing.T) {
	f := newBookingFixtureWithQueueStore(t, brokenDeleteQueueStore{memory.NewQueueStore()})
	ctx := context.Background()

	f.addUnit(t, resource.ClassDesk, "D-01", 1)
	alice := f.bookWholeDay(t, resource.ClassDesk, "alice")
	bob := f.bookWholeDay(t, resource.ClassDesk, "bob")
	require.Equal(t, usecase.StatusQueued, bob.Status)

	// Release must come back even though the ticket can never be
	// removed; retrying under the resource lock would hang forever.
	done := make(chan error, 1)
	go func() { done <- f.commands.Release(ctx, alice.Reservation.ID) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Release did not return after ticket removal failure")
	}

	// The claim was undone, nobody was notified, and bob stays queued
	// for the next release.
	assert.Empty(t, f.published.Events())
	pending, err := f.queue.Pending(ctx, resource.ClassDesk)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Requester())

	free, err := f.queries.FreeUnits(ctx, usecase.FreeUnitsParams{Class: resource.ClassDesk, Date: bookingDay})
	require.NoError(t, err)
	assert.Len(t, free, 1)
}

func TestQueries_GetReservationUnknownID(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.queries.GetReservation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrReservationNotFound)
}

func TestQueries_ClassLookupFailureLogged(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	catalog := engine.NewCatalog(memory.NewCatalogStore())
	ledger := engine.NewLedger(memory.NewLedgerStore(), catalog, clk)
	availability := engine.NewAvailability(catalog, ledger)
	queue := engine.NewQueue(memory.NewQueueStore())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	queries := usecase.NewBookingQueries(catalog, ledger, availability, queue, logger)

	// A hold whose resource has vanished from the catalog: the view
	// degrades to an empty class but the failure is reported.
	rsv, err := ledger.TryHold(context.Background(), uuid.New(), "alice", reservation.NewWholeDay(bookingDay))
	require.NoError(t, err)

	view, err := queries.GetReservation(context.Background(), rsv.ID())
	require.NoError(t, err)
	assert.Empty(t, view.Class)
	assert.Contains(t, buf.String(), "resource class lookup failed")
}
