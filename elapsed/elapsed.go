// Package elapsed computes non-negative microsecond intervals between
// timestamps.
package elapsed

import (
	"fmt"
	"time"
)

// INVALID is the legacy value reported for an interval that ran backward.
const INVALID int64 = -1

// Tstamp is an immutable point in time. Stamps taken with Now carry a
// monotonic clock reading, which Usecs uses when both stamps have one.
type Tstamp struct {
	t time.Time
}

func Now() Tstamp {
	return Tstamp{time.Now()}
}

// MkTstamp makes a wall-clock stamp from seconds and microseconds.
func MkTstamp(sec, usec int64) Tstamp {
	return Tstamp{time.Unix(sec, usec*int64(time.Microsecond))}
}

func (ts Tstamp) Sec() int64 {
	return ts.t.Unix()
}

func (ts Tstamp) Usec() int64 {
	return int64(ts.t.Nanosecond()) / int64(time.Microsecond)
}

func (ts Tstamp) Time() time.Time {
	return ts.t
}

func (ts Tstamp) String() string {
	return fmt.Sprintf("%d.%06d", ts.Sec(), ts.Usec())
}

// Telapsed is either a valid microsecond count or an invalid interval.
type Telapsed struct {
	usecs int64
	ok    bool
}

func (e Telapsed) Usecs() (int64, bool) {
	return e.usecs, e.ok
}

func (e Telapsed) Valid() bool {
	return e.ok
}

// Legacy returns the interval, or INVALID if it ran backward.
func (e Telapsed) Legacy() int64 {
	if !e.ok {
		return INVALID
	}
	return e.usecs
}

func (e Telapsed) String() string {
	if !e.ok {
		return "invalid"
	}
	return fmt.Sprintf("%dus", e.usecs)
}

// Usecs returns later - earlier in whole microseconds, truncated.
func Usecs(later, earlier Tstamp) Telapsed {
	d := later.t.Sub(earlier.t)
	if d < 0 {
		return Telapsed{}
	}
	return Telapsed{d.Microseconds(), true}
}
