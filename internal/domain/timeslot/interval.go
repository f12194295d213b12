// Package timeslot implements overlap testing and fixed-duration slot
// enumeration over half-open time intervals. It has no storage dependencies
// so the booking rules built on it can be tested in isolation.
package timeslot

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// New returns the interval [start, end).
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the interval is non-empty, i.e. Start < End.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap: [9,10) and [10,11) are disjoint.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// EnumerateSlots splits window into consecutive slots of slotDuration
// starting at window.Start. A trailing slot that would extend past
// window.End is dropped. The result is empty when the window is invalid or
// slotDuration is not positive.
func EnumerateSlots(window Interval, slotDuration time.Duration) []Interval {
	if !window.IsValid() || slotDuration <= 0 {
		return nil
	}

	var slots []Interval
	for start := window.Start; ; start = start.Add(slotDuration) {
		end := start.Add(slotDuration)
		if end.After(window.End) {
			break
		}
		slots = append(slots, Interval{Start: start, End: end})
	}
	return slots
}

// AvailableSlots returns the slots of EnumerateSlots(window, slotDuration)
// that do not overlap any busy interval.
func AvailableSlots(window Interval, slotDuration time.Duration, busy []Interval) []Interval {
	var available []Interval
	for _, slot := range EnumerateSlots(window, slotDuration) {
		if !overlapsAny(slot, busy) {
			available = append(available, slot)
		}
	}
	return available
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
