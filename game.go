package main

import (
	"context"
	"fmt"
	"image/color"
	"net/http"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/matryer/way"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"

	"github.com/zucenko/arena/arena"
	"github.com/zucenko/arena/config"
	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/server"
)

const HUD_HEIGHT = 56

type Game struct {
	Session *server.GameSession
	Pads    *Pads
	Panel   *Nine
	Tweens  map[*gween.Tween]*Action
	Font    font.Face
	Small   font.Face

	Width, Height int

	last        server.GameSessionState
	banner      string
	bannerColor GameColor
	bannerAlpha float32
	rematch     bool
}

func NewGame(cfg *config.Config, maps []*model.Grid, srv *server.GameServer) (*Game, error) {
	router := input.NewRouter(nil)
	gs, err := server.NewGameSession(cfg, maps, router, srv)
	if err != nil {
		return nil, err
	}
	humans := make([]input.Slot, 0, cfg.Players)
	for s := 0; s < cfg.Players-len(gs.Bots); s++ {
		humans = append(humans, input.Slot(s))
	}
	big, err := LoadFont(40)
	if err != nil {
		return nil, err
	}
	small, err := LoadFont(18)
	if err != nil {
		return nil, err
	}
	panel, err := NewPanel(12, COLOR_TEXT, 1)
	if err != nil {
		return nil, err
	}
	return &Game{
		Session: gs,
		Pads:    NewPads(router, cfg.Deadzone, humans),
		Panel:   panel,
		Tweens:  make(map[*gween.Tween]*Action),
		Font:    big,
		Small:   small,
		Width:   cfg.GridWidth * arena.TileSize,
		Height:  cfg.GridHeight*arena.TileSize + HUD_HEIGHT,
		last:    server.GS_NEW,
	}, nil
}

// update is one ebiten tick: controller samples, then the game session frame,
// then the HUD.
func (g *Game) update(screen *ebiten.Image) error {
	if err := g.Pads.Poll(); err != nil {
		return err
	}
	if g.rematch {
		g.rematch = false
		if err := g.Session.Rematch(); err != nil {
			return err
		}
	}
	if err := g.Session.Frame(); err != nil {
		return err
	}
	g.observe()
	g.updateTweens(float32(g.Session.Config.FrameTime().Seconds()))

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

// observe turns session state changes into HUD effects.
func (g *Game) observe() {
	st := g.Session.State
	if st == g.last {
		return
	}
	g.last = st
	switch st {
	case server.GS_PLAY:
		g.showBanner(fmt.Sprintf("ROUND %d", g.Session.Round.Number), COLOR_TEXT)
	case server.GS_OVER:
		if w, ok := g.Session.Winner(); ok {
			g.showBanner(fmt.Sprintf("PLAYER %d WINS", w+1), SlotColor(w))
		} else {
			g.showBanner("NOBODY WINS", COLOR_TEXT)
		}
		g.waitRematch()
	}
}

// showBanner holds the text for half a second, then fades it out.
func (g *Game) showBanner(s string, c GameColor) {
	g.banner = s
	g.bannerColor = c
	g.bannerAlpha = 1
	hold := &Action{}
	hold.next(gween.New(1, 0, 1.5, ease.OutQuad), func(v float32) { g.bannerAlpha = v })
	g.Tweens[gween.New(1, 1, 0.5, ease.Linear)] = hold
}

// waitRematch lets any human press SELECT for another session. Bot only
// games go again on their own.
func (g *Game) waitRematch() {
	for _, slot := range g.Pads.Seats.Slots() {
		if err := g.Pads.Router.OnPress(slot, input.Select, func() { g.rematch = true }); err != nil {
			logger.Log.Warnf("rematch binding: %v", err)
		}
	}
	if len(g.Pads.Seats.Slots()) == 0 {
		wait := &Action{}
		wait.addOnFinish(func() { g.rematch = true })
		g.Tweens[gween.New(0, 1, 3, ease.Linear)] = wait
	}
}

func (g *Game) draw(screen *ebiten.Image) {
	_ = screen.Fill(COLOR_FLOOR.RGBA(1))
	if w := g.Session.World; w != nil {
		g.drawWorld(screen, w)
	}
	g.drawHUD(screen)

	if g.bannerAlpha > 0 {
		x := (g.Width - font.MeasureString(g.Font, g.banner).Ceil()) / 2
		y := (g.Height - HUD_HEIGHT) / 2
		text.Draw(screen, g.banner, g.Font, x, y, g.bannerColor.RGBA(float64(g.bannerAlpha)))
	}
	ebitenutil.DebugPrintAt(screen, g.Session.State.Name(), 4, 4)
}

func (g *Game) drawWorld(screen *ebiten.Image, w *arena.World) {
	ts := float64(arena.TileSize)
	wall := COLOR_WALL.RGBA(1)
	for c := 0; c < w.Grid.Cols; c++ {
		for r := 0; r < w.Grid.Rows; r++ {
			if w.Grid.Tiles[c][r] == model.Wall {
				ebitenutil.DrawRect(screen, float64(c)*ts, float64(r)*ts, ts, ts, wall)
			}
		}
	}
	for _, b := range w.Blasts {
		r := arena.BlastRadius
		ebitenutil.DrawRect(screen, b.Pos.X-r, b.Pos.Y-r, 2*r, 2*r, SlotColor(b.Owner).RGBA(1))
	}
	for _, a := range w.Actors {
		if a.Removed {
			continue
		}
		r := arena.ActorRadius
		c := SlotColor(a.Slot)
		if a.Shield > 0 {
			ebitenutil.DrawRect(screen, a.Pos.X-r-2, a.Pos.Y-r-2, 2*r+4, 2*r+4, color.White)
		}
		ebitenutil.DrawRect(screen, a.Pos.X-r, a.Pos.Y-r, 2*r, 2*r, c.RGBA(1))
		tip := a.Pos.Add(arena.Heading(a.Facing).Scale(r + 8))
		ebitenutil.DrawLine(screen, a.Pos.X, a.Pos.Y, tip.X, tip.Y, color.White)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	top := g.Height - HUD_HEIGHT
	g.Panel.SetPosition(4, top+4)
	g.Panel.SetSize(g.Width-8, HUD_HEIGHT-8)
	g.Panel.Draw(screen)

	sess := g.Session.Session
	cell := (g.Width - 16) / sess.Players
	for s := 0; s < sess.Players; s++ {
		slot := input.Slot(s)
		alpha := 1.0
		if sess.IsEliminated(slot) {
			alpha = 0.35
		}
		label := fmt.Sprintf("P%d  %d", s+1, sess.Scores[s])
		if g.Session.Round != nil {
			if p, ok := g.Session.Round.Player(slot); ok && p.Eliminated {
				alpha = 0.35
			}
		}
		text.Draw(screen, label, g.Small, 16+s*cell, top+34, SlotColor(slot).RGBA(alpha))
	}

	var progress float32
	switch g.Session.State {
	case server.GS_PLAY:
		if g.Session.Round != nil {
			progress = g.Session.Round.EndProgress()
		}
	case server.GS_BREAK:
		progress = g.Session.BreakProgress()
	}
	if progress > 0 {
		ebitenutil.DrawRect(screen, 8, float64(top+HUD_HEIGHT-12), float64(g.Width-16)*float64(progress), 3, color.White)
	}
}

func serveDebug(ctx context.Context, addr string, srv *server.GameServer) {
	go srv.Loop(ctx)
	router := way.NewRouter()
	srv.Routes(router)
	go func() {
		logger.Log.Infof("debug server on %s", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			logger.Log.Errorf("debug server: %v", err)
		}
	}()
}

func main() {
	cfg, maps, err := Load()
	if err != nil {
		logger.Log.Fatal(err)
	}
	var srv *server.GameServer
	if cfg.DebugAddr != "" {
		srv = server.NewGameServer()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		serveDebug(ctx, cfg.DebugAddr, srv)
	}
	game, err := NewGame(cfg, maps, srv)
	if err != nil {
		logger.Log.Fatal(err)
	}
	ebiten.SetMaxTPS(cfg.TPS)
	if err := ebiten.Run(game.update, game.Width, game.Height, 1, "Arena"); err != nil {
		logger.Log.Fatal(err)
	}
}
