// Package xflag adds flag value types.
package xflag

import (
	"time"

	"github.com/zionsongs/songkit/dateutil"
)

// Date is a flag accepting free form dates, like "2024-05-01" or
// "May 1, 2024". The zero Date prints as an empty string.
type Date struct {
	time.Time
}

func (d *Date) String() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d *Date) Set(value string) error {
	t, err := dateutil.Parse(value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
