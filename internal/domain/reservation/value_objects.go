package reservation

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

const dateLayout = "2006-01-02"

// Interval is the claim window of a reservation. Whole-day classes
// (parking, desk) span the full business day and carry no start/end;
// time-windowed classes (table, room) claim [start, end) within one
// calendar day.
type Interval struct {
	date     time.Time
	start    time.Time
	end      time.Time
	wholeDay bool
}

func NewWholeDay(date time.Time) Interval {
	return Interval{date: truncateToDay(date), wholeDay: true}
}

// NewWindow builds a [start, end) claim within date's calendar day.
// The end may land exactly on the next midnight (a window running to
// the close of the day); anything past it spills into another day and
// is rejected, since overlap checks are scoped per day.
func NewWindow(date, start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, ErrInvalidInterval
	}
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}

	day := truncateToDay(date)
	if !truncateToDay(start).Equal(day) {
		return Interval{}, ErrInvalidInterval
	}
	if end.After(day.AddDate(0, 0, 1)) {
		return Interval{}, ErrInvalidInterval
	}

	return Interval{
		date:  day,
		start: start,
		end:   end,
	}, nil
}

func ReconstructInterval(date, start, end time.Time, wholeDay bool) Interval {
	return Interval{date: truncateToDay(date), start: start, end: end, wholeDay: wholeDay}
}

func (iv Interval) Date() time.Time  { return iv.date }
func (iv Interval) Start() time.Time { return iv.start }
func (iv Interval) End() time.Time   { return iv.end }
func (iv Interval) WholeDay() bool   { return iv.wholeDay }

func (iv Interval) DateKey() string {
	return iv.date.Format(dateLayout)
}

// Overlaps reports whether two intervals on the same resource collide.
// Whole-day intervals collide with anything on the same date; windows
// collide on the half-open overlap rule.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.DateKey() != other.DateKey() {
		return false
	}
	if iv.wholeDay || other.wholeDay {
		return true
	}
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

func (iv Interval) String() string {
	if iv.wholeDay {
		return iv.DateKey()
	}
	return fmt.Sprintf("%s %s-%s", iv.DateKey(), iv.start.Format("15:04"), iv.end.Format("15:04"))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
