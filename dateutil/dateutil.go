// Package dateutil provides date handling for output timestamps and cache
// windows.
package dateutil

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// Interval groups start and end.
type Interval struct {
	Start time.Time
	End   time.Time
}

// String renders an interval.
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Contains reports whether t lies within the interval, bounds included.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// PadFunc allows to move a given time back and forth.
type PadFunc func(t time.Time) time.Time

// WindowFunc returns the interval a given time falls into.
type WindowFunc func(t time.Time) Interval

var (
	Hourly  = makeWindowFunc(padLHour, padRHour)
	Daily   = makeWindowFunc(padLDay, padRDay)
	Weekly  = makeWindowFunc(padLWeek, padRWeek)
	Monthly = makeWindowFunc(padLMonth, padRMonth)

	padLHour  = func(t time.Time) time.Time { return now.With(t).BeginningOfHour() }
	padRHour  = func(t time.Time) time.Time { return now.With(t).EndOfHour() }
	padLDay   = func(t time.Time) time.Time { return now.With(t).BeginningOfDay() }
	padRDay   = func(t time.Time) time.Time { return now.With(t).EndOfDay() }
	padLWeek  = func(t time.Time) time.Time { return now.With(t).BeginningOfWeek() }
	padRWeek  = func(t time.Time) time.Time { return now.With(t).EndOfWeek() }
	padLMonth = func(t time.Time) time.Time { return now.With(t).BeginningOfMonth() }
	padRMonth = func(t time.Time) time.Time { return now.With(t).EndOfMonth() }

	windows = map[string]WindowFunc{
		"hourly":  Hourly,
		"daily":   Daily,
		"weekly":  Weekly,
		"monthly": Monthly,
	}
)

func makeWindowFunc(padLeft, padRight PadFunc) WindowFunc {
	return func(t time.Time) Interval {
		return Interval{Start: padLeft(t), End: padRight(t)}
	}
}

// ParseWindow returns a window function by name, e.g. "daily".
func ParseWindow(name string) (WindowFunc, error) {
	f, ok := windows[name]
	if !ok {
		return nil, fmt.Errorf("unknown window: %s", name)
	}
	return f, nil
}

// Today returns the beginning of the current day, in local time. Output
// timestamps use it, so repeated runs on the same day produce the same
// files.
func Today() time.Time {
	return now.BeginningOfDay()
}

// Parse parses a date in any common layout.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseStrict(value)
}

// MustParse is like Parse but panics on error
func MustParse(value string) time.Time {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return t
}
