package server

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/arena"
	"github.com/zucenko/arena/clock"
	"github.com/zucenko/arena/config"
	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/round"
	"github.com/zucenko/arena/session"
)

// NewGameSession prepares a session; the first round starts on the first Frame.
// The last cfg.Bots slots are played by bots. Arenas that are not
// cfg.GridWidth by cfg.GridHeight are left out. srv may be nil.
func NewGameSession(cfg *config.Config, maps []*model.Grid, router *input.Router, srv *GameServer) (*GameSession, error) {
	sess, err := session.New(cfg.Players)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gs := &GameSession{
		State:   GS_NEW,
		Config:  cfg,
		Session: sess,
		Router:  router,
		Clock:   clock.New(),
		Maps:    fitMaps(maps, cfg.GridWidth, cfg.GridHeight),
		Server:  srv,
		Break:   2 * time.Second,
		rng:     rand.New(rand.NewSource(seed)),
	}
	bots := cfg.Bots
	if bots > cfg.Players {
		bots = cfg.Players
	}
	for slot := cfg.Players - bots; slot < cfg.Players; slot++ {
		gs.Bots = append(gs.Bots, arena.NewBot(input.Slot(slot), router, nil, gs.rng))
	}
	gs.setState(GS_NEW)
	return gs, nil
}

func (gs *GameSession) setState(st GameSessionState) {
	gs.State = st
	if gs.Server != nil {
		gs.Server.SetState(st.Name())
	}
}

// Frame advances the whole game by one fixed step. Hardware samples for the
// human slots must already be in the router.
func (gs *GameSession) Frame() error {
	dt := gs.Config.FrameTime()
	if gs.Server != nil {
		gs.Server.Drain(gs.apply)
	}
	if gs.State == GS_NEW {
		if err := gs.startRound(); err != nil {
			return err
		}
	}
	if gs.World != nil {
		for _, b := range gs.Bots {
			if err := b.Think(dt.Seconds()); err != nil {
				return err
			}
		}
	}
	if gs.Round != nil {
		gs.Round.Update()
	}
	if gs.World != nil {
		gs.World.Step(dt.Seconds())
	}
	gs.Clock.Advance(dt)
	return nil
}

// Rematch throws the finished session away and starts over with everybody back in.
func (gs *GameSession) Rematch() error {
	sess, err := session.New(gs.Config.Players)
	if err != nil {
		return err
	}
	if gs.breakTimer != nil {
		gs.breakTimer.Stop()
	}
	gs.Session = sess
	gs.Round = nil
	gs.setState(GS_NEW)
	logger.Log.WithField("session", sess.ID).Info("rematch")
	return nil
}

// Winner is the last eligible slot once the session is over.
func (gs *GameSession) Winner() (input.Slot, bool) {
	left := gs.Session.Eligible()
	if gs.State != GS_OVER || len(left) != 1 {
		return 0, false
	}
	return left[0], true
}

// BreakProgress goes 0 to 1 over the pause between rounds.
func (gs *GameSession) BreakProgress() float32 {
	if gs.State != GS_BREAK || gs.breakTimer == nil {
		return 0
	}
	return gs.breakTimer.Progress()
}

// RoundComplete books the round and schedules what comes next.
func (gs *GameSession) RoundComplete(res session.Result) {
	gs.Session.Record(res)
	if gs.Server != nil {
		gs.Server.RoundComplete(res, gs.Session)
	}
	if gs.Session.Over() {
		gs.setState(GS_OVER)
		fields := log.Fields{"session": gs.Session.ID, "scores": gs.Session.Scores}
		if w, ok := gs.Winner(); ok {
			fields["winner"] = w
		}
		logger.Log.WithFields(fields).Info("session over")
		return
	}
	gs.setState(GS_BREAK)
	gs.breakTimer = gs.Clock.After(gs.Break, func() {
		gs.setState(GS_NEW)
	})
}

func (gs *GameSession) startRound() error {
	grid := gs.pickMap()
	gs.World = arena.NewWorld(grid, gs.Session.Levels)
	for _, b := range gs.Bots {
		b.Attach(gs.World)
	}
	opts := round.Options{
		Cols:           grid.Cols,
		Rows:           grid.Rows,
		Center:         model.Coord{X: gs.Config.CenterX, Y: gs.Config.CenterY},
		ShrinkInterval: gs.Config.ShrinkInterval,
		EndDelay:       gs.Config.EndDelay,
		Rand:           gs.rng,
	}
	if gs.Server != nil {
		gs.Server.Track(gs.Session, grid)
		opts.Listener = gs.Server
	}
	ctrl, err := round.New(gs.Session, gs.Router, gs.World, gs.Clock, gs, opts)
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}
	gs.Round = ctrl
	gs.setState(GS_PLAY)
	return nil
}

// pickMap draws one of the arenas with enough spawn markers, or builds the
// bordered default when none fits.
func (gs *GameSession) pickMap() *model.Grid {
	fit := make([]*model.Grid, 0, len(gs.Maps))
	for _, m := range gs.Maps {
		if len(m.Spawns) >= gs.Config.Players {
			fit = append(fit, m)
		}
	}
	if len(fit) == 0 {
		return model.NewBorderedGrid(gs.Config.GridWidth, gs.Config.GridHeight)
	}
	return fit[gs.rng.Intn(len(fit))].Clone()
}

func fitMaps(maps []*model.Grid, cols, rows int) []*model.Grid {
	fit := make([]*model.Grid, 0, len(maps))
	for _, m := range maps {
		if m.Cols != cols || m.Rows != rows {
			logger.Log.WithFields(log.Fields{"cols": m.Cols, "rows": m.Rows}).Warnf("skipping arena: expected %dx%d", cols, rows)
			continue
		}
		fit = append(fit, m)
	}
	return fit
}

func (gs *GameSession) apply(cmd Command) CommandReply {
	level, err := gs.Session.Upgrade(cmd.Slot, cmd.Mod)
	return ReplyTo(level, err)
}
