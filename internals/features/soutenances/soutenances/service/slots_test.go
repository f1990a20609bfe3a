// file: internals/features/soutenances/soutenances/service/slots_test.go
package service

import (
	"testing"

	"soutenance_backend/internals/helpers/dbtime"
)

func collectSlots(it *SlotIterator) []string {
	var out []string
	for {
		t, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, t.HHMM())
	}
}

func TestSlotIteratorDefaultDay(t *testing.T) {
	slots := collectSlots(NewDefaultSlotIterator())

	if len(slots) != 32 {
		t.Fatalf("expected 32 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "08:30" {
		t.Errorf("first slot = %s, want 08:30", slots[0])
	}
	if slots[len(slots)-1] != "18:15" {
		t.Errorf("last slot = %s, want 18:15", slots[len(slots)-1])
	}

	// morning runs up to 12:15, the afternoon resumes at 14:30
	if slots[15] != "12:15" {
		t.Errorf("slot 16 = %s, want 12:15", slots[15])
	}
	if slots[16] != "14:30" {
		t.Errorf("slot 17 = %s, want 14:30", slots[16])
	}
	for _, s := range slots {
		if s >= "12:30" && s < "14:30" {
			t.Errorf("slot %s falls inside the lunch blackout", s)
		}
	}
}

func TestSlotIteratorBlackoutStart(t *testing.T) {
	start, _ := dbtime.Parse("12:30")
	end, _ := dbtime.Parse("15:00")
	slots := collectSlots(NewSlotIterator(start, end, 15))

	want := []string{"14:30", "14:45"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, slots[i], want[i])
		}
	}
}

func TestSlotIteratorReset(t *testing.T) {
	it := NewDefaultSlotIterator()
	first := collectSlots(it)
	it.Reset()
	second := collectSlots(it)

	if len(first) != len(second) {
		t.Fatalf("reset walk differs: %d vs %d slots", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs after reset: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestSlotIteratorNonPositiveDuration(t *testing.T) {
	start, _ := dbtime.Parse("08:30")
	end, _ := dbtime.Parse("18:30")

	for _, duree := range []int{0, -15} {
		it := NewSlotIterator(start, end, duree)
		if _, ok := it.Next(); ok {
			t.Errorf("duree=%d: Next returned a slot, want immediate exhaustion", duree)
		}
	}
}

func TestSlotIteratorCustomDuration(t *testing.T) {
	start, _ := dbtime.Parse("08:30")
	end, _ := dbtime.Parse("10:30")
	slots := collectSlots(NewSlotIterator(start, end, 30))

	want := []string{"08:30", "09:00", "09:30", "10:00"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
}

func TestWorkingSlots(t *testing.T) {
	slots := WorkingSlots()
	if len(slots) != 32 {
		t.Fatalf("expected 32 working slots, got %d", len(slots))
	}
	if slots[0].Heure != "08:30" || slots[0].Label != "08:30" {
		t.Errorf("first working slot = %+v", slots[0])
	}
}
