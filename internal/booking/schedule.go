package booking

import (
	"sort"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

// ReasonBooked marks slots taken by a confirmed booking.
const ReasonBooked = "booked"

// Occupied is a taken interval inside an operating window, used as input to
// BuildSchedule. Bookings and blocks both reduce to this.
type Occupied struct {
	StartMin timeofday.Minutes
	EndMin   timeofday.Minutes
	Reason   string
}

// BuildSchedule partitions the operating window [open, close) into an ordered
// list of slots. Gaps between occupied intervals come back as available slots;
// the union of all slots covers the window exactly. Occupied intervals are
// clamped to the window and may arrive in any order.
func BuildSchedule(open, close timeofday.Minutes, occupied []Occupied) []Slot {
	taken := make([]Occupied, 0, len(occupied))
	for _, o := range occupied {
		if o.StartMin < open {
			o.StartMin = open
		}
		if o.EndMin > close {
			o.EndMin = close
		}
		if o.StartMin >= o.EndMin {
			continue
		}
		taken = append(taken, o)
	}

	sort.Slice(taken, func(i, j int) bool {
		return taken[i].StartMin < taken[j].StartMin
	})

	slots := make([]Slot, 0, 2*len(taken)+1)
	cursor := open

	for _, o := range taken {
		if o.EndMin <= cursor {
			continue
		}
		if o.StartMin > cursor {
			slots = append(slots, Slot{StartMin: cursor, EndMin: o.StartMin, IsAvailable: true})
		}
		start := o.StartMin
		if start < cursor {
			start = cursor
		}
		slots = append(slots, Slot{StartMin: start, EndMin: o.EndMin, Reason: o.Reason})
		cursor = o.EndMin
	}

	if cursor < close {
		slots = append(slots, Slot{StartMin: cursor, EndMin: close, IsAvailable: true})
	}

	return slots
}
