// Package scheduling holds the pure time-window logic of the reservation core:
// half-open intervals, overlap detection and first-fit allocation.
// Nothing in this package touches storage.
package scheduling

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInterval is returned for windows whose end is not after their start.
var ErrInvalidInterval = errors.New("end time must be after start time")

// MinTime and MaxTime bound the instants a window may cover: the range of
// int64 Unix nanoseconds, roughly the years 1678 through 2262.
var (
	MinTime = time.Unix(0, math.MinInt64).UTC()
	MaxTime = time.Unix(0, math.MaxInt64).UTC()
)

// Interval is the half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval, rejecting empty and inverted windows and
// windows reaching outside [MinTime, MaxTime].
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if start.Before(MinTime) || end.After(MaxTime) {
		return Interval{}, fmt.Errorf("%w: [%s, %s) is outside the supported range %s to %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339),
			MinTime.Format(time.RFC3339), MaxTime.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// IntervalFor builds the window that starts at start and lasts d.
func IntervalFor(start time.Time, d time.Duration) (Interval, error) {
	return NewInterval(start, start.Add(d))
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Empty reports whether the window contains no instant.
func (i Interval) Empty() bool {
	return !i.End.After(i.Start)
}

// Overlaps reports whether two half-open windows share at least one instant:
// a.Start < b.End && b.Start < a.End. Touching windows do not overlap, and an
// empty window overlaps nothing.
func Overlaps(a, b Interval) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Overlaps is the method form of the package-level Overlaps.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
