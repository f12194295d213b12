package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 4, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    New(at(9, 0), at(10, 0)),
			b:    New(at(9, 0), at(10, 0)),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    New(at(9, 0), at(10, 0)),
			b:    New(at(10, 0), at(11, 0)),
			want: false,
		},
		{
			name: "partial overlap",
			a:    New(at(9, 0), at(10, 30)),
			b:    New(at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    New(at(9, 0), at(17, 0)),
			b:    New(at(12, 0), at(13, 0)),
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    New(at(9, 0), at(10, 0)),
			b:    New(at(14, 0), at(15, 0)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestEnumerateSlots(t *testing.T) {
	t.Run("eight hour window with hour slots yields eight slots", func(t *testing.T) {
		slots := EnumerateSlots(New(at(9, 0), at(17, 0)), time.Hour)
		assert.Len(t, slots, 8)
		assert.Equal(t, at(9, 0), slots[0].Start)
		assert.Equal(t, at(10, 0), slots[0].End)
		assert.Equal(t, at(16, 0), slots[7].Start)
		assert.Equal(t, at(17, 0), slots[7].End)
	})

	t.Run("partial trailing slot is dropped", func(t *testing.T) {
		slots := EnumerateSlots(New(at(9, 0), at(10, 30)), time.Hour)
		assert.Len(t, slots, 1)
	})

	t.Run("slot longer than window yields nothing", func(t *testing.T) {
		assert.Empty(t, EnumerateSlots(New(at(9, 0), at(9, 30)), time.Hour))
	})

	t.Run("invalid window yields nothing", func(t *testing.T) {
		assert.Empty(t, EnumerateSlots(New(at(17, 0), at(9, 0)), time.Hour))
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		assert.Empty(t, EnumerateSlots(New(at(9, 0), at(17, 0)), 0))
		assert.Empty(t, EnumerateSlots(New(at(9, 0), at(17, 0)), -time.Hour))
	})
}

func TestAvailableSlots(t *testing.T) {
	window := New(at(9, 0), at(17, 0))

	t.Run("one busy hour removes exactly that slot", func(t *testing.T) {
		busy := []Interval{New(at(10, 0), at(11, 0))}
		available := AvailableSlots(window, time.Hour, busy)
		assert.Len(t, available, 7)
		for _, slot := range available {
			assert.False(t, slot.Overlaps(busy[0]))
			assert.NotEqual(t, at(10, 0), slot.Start)
		}
	})

	t.Run("busy interval straddling two slots removes both", func(t *testing.T) {
		busy := []Interval{New(at(10, 30), at(11, 30))}
		available := AvailableSlots(window, time.Hour, busy)
		assert.Len(t, available, 6)
	})

	t.Run("no busy intervals keeps the full enumeration", func(t *testing.T) {
		assert.Len(t, AvailableSlots(window, time.Hour, nil), 8)
	})

	t.Run("fully booked day has no availability", func(t *testing.T) {
		busy := []Interval{window}
		assert.Empty(t, AvailableSlots(window, time.Hour, busy))
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(at(9, 0), at(10, 0)).IsValid())
	assert.False(t, New(at(10, 0), at(10, 0)).IsValid())
	assert.False(t, New(at(11, 0), at(10, 0)).IsValid())
}
