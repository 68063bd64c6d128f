//go:build unit

package engine_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/resource"
	"slotbook/internal/engine"
	"slotbook/internal/infra/memory"
	"slotbook/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type testEngine struct {
	catalog      *engine.Catalog
	ledger       *engine.Ledger
	availability *engine.Availability
	queue        *engine.Queue
	clock        *clock.MockClock
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	clk := clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	catalog := engine.NewCatalog(memory.NewCatalogStore())
	ledger := engine.NewLedger(memory.NewLedgerStore(), catalog, clk)

	return &testEngine{
		catalog:      catalog,
		ledger:       ledger,
		availability: engine.NewAvailability(catalog, ledger),
		queue:        engine.NewQueue(memory.NewQueueStore()),
		clock:        clk,
	}
}

func (e *testEngine) addUnit(t *testing.T, class resource.Class, label string, capacity int) *resource.Resource {
	t.Helper()

	unit, err := resource.NewResource(class, label, capacity, e.clock.Now())
	require.NoError(t, err)
	require.NoError(t, e.catalog.Add(context.Background(), unit))
	return unit
}

func windowAt(t *testing.T, startHour, endHour int) (time.Time, time.Time) {
	t.Helper()
	start := time.Date(testDay.Year(), testDay.Month(), testDay.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(testDay.Year(), testDay.Month(), testDay.Day(), endHour, 0, 0, 0, time.UTC)
	return start, end
}
