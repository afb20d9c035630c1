package scheduling

import "sort"

// Candidate is one resource competing in a first-fit allocation together
// with the bookings it already holds.
type Candidate struct {
	ID       int64
	Bookings []Booking
}

// FirstFit returns the id of the first candidate, in ascending id order,
// with no active booking overlapping window. The second result is false
// when every candidate is taken.
//
// Candidates are not load-balanced: the lowest free id always wins, so the
// same inputs always produce the same choice.
func FirstFit(candidates []Candidate, window Interval) (int64, bool) {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	for _, c := range ordered {
		if !HasConflict(c.Bookings, window) {
			return c.ID, true
		}
	}
	return 0, false
}
