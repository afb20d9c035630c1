package scheduling

// Booking is an existing reservation as seen by the conflict detector.
type Booking struct {
	ID     int64
	Window Interval

	// Active is false for cancelled and completed reservations;
	// those never hold their resource.
	Active bool
}

// Conflicts returns the active bookings whose window overlaps candidate.
func Conflicts(existing []Booking, candidate Interval) []Booking {
	var conflicts []Booking
	for _, b := range existing {
		if !b.Active {
			continue
		}
		if Overlaps(b.Window, candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// CountConflicts returns how many active bookings overlap candidate.
func CountConflicts(existing []Booking, candidate Interval) int {
	return len(Conflicts(existing, candidate))
}

// HasConflict reports whether any active booking overlaps candidate.
func HasConflict(existing []Booking, candidate Interval) bool {
	for _, b := range existing {
		if b.Active && Overlaps(b.Window, candidate) {
			return true
		}
	}
	return false
}
