// file: internals/features/soutenances/soutenances/service/slots.go
package service

import (
	"soutenance_backend/internals/helpers/dbtime"
)

/* =========================
   Working day constants
========================= */

const (
	DefaultStartHHMM    = "08:30"
	DefaultEndHHMM      = "18:30"
	DefaultDureeMinutes = 15

	// lunch blackout [12:30, 14:30): a slot starting at exactly 12:30 is
	// inside the break, one starting at 14:30 is not
	lunchStartMin = 12*60 + 30
	lunchEndMin   = 14*60 + 30
)

/* =========================
   SlotIterator
========================= */

// SlotIterator walks one working day in fixed steps, skipping the lunch
// blackout. It is lazy and restartable; every call to Next strictly
// advances, so the walk always terminates for a positive step.
type SlotIterator struct {
	start int // minutes from midnight
	end   int
	duree int
	cur   int
}

func NewSlotIterator(start, end dbtime.Tod, dureeMinutes int) *SlotIterator {
	s := start.MinutesFromMidnight()
	return &SlotIterator{
		start: s,
		end:   end.MinutesFromMidnight(),
		duree: dureeMinutes,
		cur:   s,
	}
}

// NewDefaultSlotIterator covers 08:30–18:30 in 15-minute slots.
func NewDefaultSlotIterator() *SlotIterator {
	start, _ := dbtime.Parse(DefaultStartHHMM)
	end, _ := dbtime.Parse(DefaultEndHHMM)
	return NewSlotIterator(start, end, DefaultDureeMinutes)
}

// Next yields the current candidate start time and advances one step.
// Returns false once the day is exhausted (or for a non-positive step).
func (it *SlotIterator) Next() (dbtime.Tod, bool) {
	if it.duree <= 0 {
		return dbtime.Tod{}, false
	}
	if it.cur >= lunchStartMin && it.cur < lunchEndMin {
		it.cur = lunchEndMin
	}
	if it.cur >= it.end {
		return dbtime.Tod{}, false
	}
	slot := it.cur
	it.cur += it.duree
	return dbtime.FromMinutes(slot), true
}

// Reset rewinds the iterator to the start of the day.
func (it *SlotIterator) Reset() {
	it.cur = it.start
}

/* =========================
   Eager slot list (UI)
========================= */

type WorkingSlot struct {
	Heure string `json:"heure"`
	Label string `json:"label"`
}

// WorkingSlots lists every default 15-minute slot of the day as HH:MM.
// With the default hours this is exactly 32 entries, 16 per half-day.
func WorkingSlots() []WorkingSlot {
	it := NewDefaultSlotIterator()
	var slots []WorkingSlot
	for {
		t, ok := it.Next()
		if !ok {
			break
		}
		hhmm := t.HHMM()
		slots = append(slots, WorkingSlot{Heure: hhmm, Label: hhmm})
	}
	return slots
}
