package server

import (
	"context"
	"encoding/gob"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/session"
)

func NewGameServer() *GameServer {
	return &GameServer{
		Upgrader:   &websocket.Upgrader{},
		Events:     make(chan model.ServerMessage, 64),
		Commands:   make(chan Command, 8),
		register:   make(chan *Spectator),
		unregister: make(chan *Spectator),
		spectators: make(map[*Spectator]struct{}),
	}
}

// Publish queues a message for every spectator. It never blocks the game loop.
func (s *GameServer) Publish(m model.ServerMessage) {
	select {
	case s.Events <- m:
	default:
		logger.Log.Warn("GameServer.Publish Events FULL, dropping message")
	}
}

// Drain applies every queued command. Call it from the game loop only.
func (s *GameServer) Drain(apply func(Command) CommandReply) {
	for {
		select {
		case cmd := <-s.Commands:
			cmd.Reply <- apply(cmd)
		default:
			return
		}
	}
}

// Loop fans published messages out to the spectators until ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	logger.Log.Info("GameServer.Loop starting")
	var setup *model.ServerMessage
	for {
		select {
		case <-ctx.Done():
			for sp := range s.spectators {
				s.drop(sp)
			}
			logger.Log.Info("GameServer.Loop ENDED")
			return
		case sp := <-s.register:
			s.spectators[sp] = struct{}{}
			if setup != nil {
				sp.MessagesToSend <- *setup
			}
		case sp := <-s.unregister:
			if _, ok := s.spectators[sp]; ok {
				s.drop(sp)
			}
		case m := <-s.Events:
			if len(m.Setup) > 0 {
				setup = &model.ServerMessage{Setup: m.Setup}
			}
			for sp := range s.spectators {
				select {
				case sp.MessagesToSend <- m:
				default:
					logger.Log.Warnf("spectator %s too slow, dropping message", sp.Conn.RemoteAddr())
				}
			}
		}
	}
}

func (s *GameServer) drop(sp *Spectator) {
	delete(s.spectators, sp)
	close(sp.MessagesToSend)
}

func (s *GameServer) addSpectator(conn *websocket.Conn) *Spectator {
	sp := &Spectator{
		State:          SS_NEW,
		Conn:           conn,
		Done:           make(chan struct{}),
		MessagesToSend: make(chan model.ServerMessage, 16),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	return sp
}

// LoopChannelRead only waits for the spectator to go away, the feed is one way.
func (sp *Spectator) LoopChannelRead() {
	for {
		if _, _, err := sp.Conn.NextReader(); err != nil {
			logger.Log.Debugf("Spectator.LoopChannelRead ended: %v", err)
			return
		}
	}
}

// this function only consumes, it ends when the server closes MessagesToSend
func (sp *Spectator) LoopChannelWrite() {
	defer close(sp.Done)
	for mes := range sp.MessagesToSend {
		if sp.State == SS_ERR {
			continue
		}
		w, err := sp.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			logger.Log.Warnf("Spectator.LoopChannelWrite cant get writer %v", err)
			sp.State = SS_ERR
			continue
		}
		if err = gob.NewEncoder(w).Encode(mes); err != nil {
			logger.Log.Warnf("Spectator.LoopChannelWrite cant encode %v", err)
			sp.State = SS_ERR
			continue
		}
		if err = w.Close(); err != nil {
			logger.Log.Warnf("Spectator.LoopChannelWrite cant flush %v", err)
			sp.State = SS_ERR
			continue
		}
	}
}

// Track mirrors the grid a new round is about to play on.
func (s *GameServer) Track(sess *session.Session, grid *model.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SessionID = sess.ID.String()
	s.snapshot.Players = sess.Players
	s.snapshot.Scores = append([]int(nil), sess.Scores...)
	s.snapshot.Alive = slotInts(sess.Eligible())
	s.snapshot.Grid = grid.Clone()
	s.snapshot.Walls = grid.Walls()
	s.snapshot.Sealed = 0
	s.snapshot.Kills = nil
}

// SetState records the session state name shown by /debug/round.
func (s *GameServer) SetState(name string) {
	s.mu.Lock()
	s.snapshot.State = name
	s.mu.Unlock()
}

// Snapshot returns a copy safe to use from any goroutine.
func (s *GameServer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Scores = append([]int(nil), s.snapshot.Scores...)
	snap.Alive = append([]int(nil), s.snapshot.Alive...)
	snap.Kills = make([][]int, len(s.snapshot.Kills))
	for i, k := range s.snapshot.Kills {
		snap.Kills[i] = append([]int(nil), k...)
	}
	if s.snapshot.Grid != nil {
		snap.Grid = s.snapshot.Grid.Clone()
	}
	return snap
}

func (s *GameServer) RoundStarted(id uuid.UUID, number int, spawns map[input.Slot]model.Coord) {
	players := make(map[int]model.Coord, len(spawns))
	for slot, c := range spawns {
		players[int(slot)] = c
	}
	s.mu.Lock()
	s.snapshot.Round = number
	s.snapshot.RoundID = id.String()
	s.snapshot.Kills = make([][]int, s.snapshot.Players)
	cols, rows := 0, 0
	if s.snapshot.Grid != nil {
		cols, rows = s.snapshot.Grid.Cols, s.snapshot.Grid.Rows
	}
	s.mu.Unlock()

	s.Publish(model.ServerMessage{Setup: []model.Setup{{
		RoundID: id.String(),
		Round:   number,
		Cols:    cols,
		Rows:    rows,
		Players: players,
	}}})
}

func (s *GameServer) TileSealed(c model.Coord, sealed int) {
	s.mu.Lock()
	if s.snapshot.Grid != nil && s.snapshot.Grid.SetWall(c) {
		s.snapshot.Walls++
	}
	s.snapshot.Sealed = sealed
	walls := s.snapshot.Walls
	s.mu.Unlock()

	s.Publish(model.ServerMessage{Sealed: []model.Sealed{{Col: c.X, Row: c.Y, Walls: walls}}})
}

func (s *GameServer) PlayerEliminated(victim, attacker input.Slot) {
	hasKiller := attacker >= 0
	s.mu.Lock()
	for i, a := range s.snapshot.Alive {
		if a == int(victim) {
			s.snapshot.Alive = append(s.snapshot.Alive[:i:i], s.snapshot.Alive[i+1:]...)
			break
		}
	}
	if hasKiller && int(attacker) < len(s.snapshot.Kills) {
		s.snapshot.Kills[attacker] = append(s.snapshot.Kills[attacker], int(victim))
	}
	s.mu.Unlock()

	logger.Log.WithFields(log.Fields{"victim": victim, "attacker": attacker}).Debug("spectators notified")
	s.Publish(model.ServerMessage{Eliminations: []model.Elimination{{
		Victim:    int(victim),
		Attacker:  int(attacker),
		HasKiller: hasKiller,
	}}})
}

// RoundComplete publishes the result after the session has booked it.
func (s *GameServer) RoundComplete(res session.Result, sess *session.Session) {
	kills := make([][]int, len(res.Kills))
	for i, k := range res.Kills {
		kills[i] = slotInts(k)
	}
	s.mu.Lock()
	s.snapshot.Kills = kills
	s.snapshot.Scores = append([]int(nil), sess.Scores...)
	s.snapshot.Alive = slotInts(sess.Eligible())
	s.mu.Unlock()

	s.Publish(model.ServerMessage{Results: []model.RoundResult{{
		RoundID:    res.RoundID.String(),
		Round:      res.Round,
		Players:    res.Players,
		Kills:      kills,
		Eliminated: slotInts(res.Eliminated),
	}}})
}

func slotInts(slots []input.Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = int(s)
	}
	return out
}
