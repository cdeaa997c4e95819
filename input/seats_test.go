package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatsFillSlotsInOrder(t *testing.T) {
	s := NewSeats([]Slot{0, 1, 2})

	joined, gone := s.Sync([]int{7, 3})
	assert.Equal(t, []Seat{{0, 3}, {1, 7}}, joined)
	assert.Empty(t, gone)

	for i := 0; i < 20; i++ {
		assert.Equal(t, []Seat{{0, 3}, {1, 7}}, s.Seated())
	}
}

func TestSeatsKeepSlotUntilDisconnect(t *testing.T) {
	s := NewSeats([]Slot{1, 2})
	s.Sync([]int{4, 5})

	joined, gone := s.Sync([]int{5})
	assert.Empty(t, joined)
	assert.Equal(t, []Seat{{1, 4}}, gone)
	assert.Equal(t, []Seat{{2, 5}}, s.Seated())

	joined, _ = s.Sync([]int{5, 9})
	assert.Equal(t, []Seat{{1, 9}}, joined)
	assert.Equal(t, []Seat{{1, 9}, {2, 5}}, s.Seated())
}

func TestSeatsIgnoreExtraDevices(t *testing.T) {
	s := NewSeats([]Slot{0})
	joined, _ := s.Sync([]int{1, 2, 3})
	assert.Equal(t, []Seat{{0, 1}}, joined)

	s = NewSeats(nil)
	joined, _ = s.Sync([]int{1})
	assert.Empty(t, joined)
	assert.Empty(t, s.Seated())
}
