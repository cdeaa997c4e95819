package input

import "sort"

// Seat is a device sitting in a slot.
type Seat struct {
	Slot Slot
	ID   int
}

// Seats hands device ids to a fixed list of slots in connection order. A
// device keeps its slot until it disconnects.
type Seats struct {
	slots  []Slot
	bySlot map[Slot]int
}

func NewSeats(slots []Slot) *Seats {
	return &Seats{slots: slots, bySlot: make(map[Slot]int)}
}

func (s *Seats) Slots() []Slot {
	return s.slots
}

// Sync takes the ids connected right now. It frees the slots of vanished
// devices and seats new ones in the lowest free slots, lowest id first.
func (s *Seats) Sync(ids []int) (joined, gone []Seat) {
	ids = append([]int(nil), ids...)
	sort.Ints(ids)
	connected := make(map[int]bool, len(ids))
	for _, id := range ids {
		connected[id] = true
	}
	seated := make(map[int]bool, len(s.bySlot))
	for _, slot := range s.slots {
		id, ok := s.bySlot[slot]
		if !ok {
			continue
		}
		if !connected[id] {
			delete(s.bySlot, slot)
			gone = append(gone, Seat{slot, id})
			continue
		}
		seated[id] = true
	}
	for _, id := range ids {
		if seated[id] {
			continue
		}
		for _, slot := range s.slots {
			if _, busy := s.bySlot[slot]; !busy {
				s.bySlot[slot] = id
				joined = append(joined, Seat{slot, id})
				break
			}
		}
	}
	return joined, gone
}

// Seated lists the occupied slots in slot order.
func (s *Seats) Seated() []Seat {
	out := make([]Seat, 0, len(s.bySlot))
	for _, slot := range s.slots {
		if id, ok := s.bySlot[slot]; ok {
			out = append(out, Seat{slot, id})
		}
	}
	return out
}
