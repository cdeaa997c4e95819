// Package shrink seals the arena from the border inwards along a clockwise spiral.
package shrink

import (
	"errors"
	"fmt"

	"github.com/zucenko/arena/model"
)

var ErrBadGrid = errors.New("bad spiral grid")

// Box is an inclusive tile rectangle.
type Box struct {
	XBeg, YBeg, XEnd, YEnd int
}

func (b Box) Contains(c model.Coord) bool {
	return c.X >= b.XBeg && c.X <= b.XEnd && c.Y >= b.YBeg && c.Y <= b.YEnd
}

// Spiral walks a cols x rows grid clockwise and inwards, one tile per Next,
// starting from the top left corner and stopping at the configured center.
// The center is configuration: on the stock 40x22 arena the walk ends at 10,11,
// which is not the geometric middle.
type Spiral struct {
	cols, rows int
	center     model.Coord

	box   Box
	x, y  int
	steps int
	done  bool
}

func NewSpiral(cols, rows int, center model.Coord) (*Spiral, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%dx%d: %w", cols, rows, ErrBadGrid)
	}
	if center.X < 0 || center.X >= cols || center.Y < 0 || center.Y >= rows {
		return nil, fmt.Errorf("center %v outside %dx%d: %w", center, cols, rows, ErrBadGrid)
	}
	return &Spiral{
		cols:   cols,
		rows:   rows,
		center: center,
		box:    Box{0, 0, cols - 1, rows - 1},
	}, nil
}

// Next advances the cursor and returns its new position. Once the cursor sits on
// the center it returns false, and keeps doing so.
//
// At the two lower corners the box contracts before the cursor moves, so by the
// time the cursor turns the corner the finished ring is already outside the box
// and is never walked again.
func (s *Spiral) Next() (model.Coord, bool) {
	if s.done {
		return model.Coord{}, false
	}
	if s.x == s.center.X && s.y == s.center.Y {
		s.done = true
		return model.Coord{}, false
	}
	// every tile has been walked; some shapes never meet the center
	if s.steps >= s.cols*s.rows-1 {
		s.done = true
		return model.Coord{}, false
	}

	b := &s.box
	switch {
	case s.x < b.XEnd && s.y == b.YBeg:
		s.x++
	case s.x == b.XEnd && s.y < b.YEnd:
		if s.y == b.YEnd-1 {
			b.XBeg++
			b.XEnd--
		}
		s.y++
	case s.y == b.YEnd && s.x >= b.XBeg:
		if s.x == b.XBeg {
			b.YEnd--
			b.YBeg++
		}
		s.x--
	default:
		s.y--
	}
	s.steps++

	c := model.Coord{X: s.x, Y: s.y}
	if c.X < 0 || c.X >= s.cols || c.Y < 0 || c.Y >= s.rows {
		s.done = true
		return model.Coord{}, false
	}
	return c, true
}

func (s *Spiral) Cursor() model.Coord {
	return model.Coord{X: s.x, Y: s.y}
}

func (s *Spiral) Done() bool {
	return s.done
}

// Bounds is the contraction box driving the turns. It leads the cursor by one
// corner, so right after a lower corner the cursor may sit just outside it.
func (s *Spiral) Bounds() Box {
	return s.box
}

// Ring is the box of the ring the cursor is walking. It always contains the
// cursor and never grows during a walk.
func (s *Spiral) Ring() Box {
	k := min(min(s.x, s.y), min(s.cols-1-s.x, s.rows-1-s.y))
	return Box{k, k, s.cols - 1 - k, s.rows - 1 - k}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
