package shrink

import (
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
)

// TileGrid is the part of the walkable grid the scheduler writes to.
type TileGrid interface {
	IsWall(c model.Coord) bool
	SetWall(c model.Coord) bool
}

// Scheduler seals one open tile per Step, following a Spiral.
type Scheduler struct {
	spiral    *Spiral
	grid      TileGrid
	sealed    int
	exhausted bool
}

func NewScheduler(spiral *Spiral, grid TileGrid) *Scheduler {
	return &Scheduler{spiral: spiral, grid: grid}
}

// Step skips tiles that are already walls and seals the first open one.
// It returns false once the spiral has run out; after that Step leaves the grid alone.
func (s *Scheduler) Step() (model.Coord, bool) {
	if s.exhausted {
		return model.Coord{}, false
	}
	for {
		c, ok := s.spiral.Next()
		if !ok {
			s.exhausted = true
			logger.Log.WithField("sealed", s.sealed).Debug("arena shrink exhausted")
			return model.Coord{}, false
		}
		if s.grid.IsWall(c) {
			continue
		}
		s.grid.SetWall(c)
		s.sealed++
		logger.Log.WithFields(log.Fields{"tile": c.String(), "sealed": s.sealed}).Trace("tile sealed")
		return c, true
	}
}

func (s *Scheduler) Exhausted() bool {
	return s.exhausted
}

func (s *Scheduler) Sealed() int {
	return s.sealed
}
