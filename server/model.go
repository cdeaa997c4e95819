package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zucenko/arena/arena"
	"github.com/zucenko/arena/clock"
	"github.com/zucenko/arena/config"
	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/round"
	"github.com/zucenko/arena/session"
)

// GameServer is the debug and spectator surface. It never touches game state:
// the game loop pushes messages in, and pulls commands out with Drain.
type GameServer struct {
	Upgrader *websocket.Upgrader
	Events   chan model.ServerMessage
	Commands chan Command

	register   chan *Spectator
	unregister chan *Spectator
	spectators map[*Spectator]struct{}

	mu       sync.RWMutex
	snapshot Snapshot
}

type SpectatorState int

const (
	SS_NEW SpectatorState = iota + 1
	SS_WATCH
	SS_ERR
)

// Spectator is one websocket client of the event feed.
type Spectator struct {
	State          SpectatorState
	Conn           *websocket.Conn
	Done           chan struct{}
	MessagesToSend chan model.ServerMessage
}

// Command asks the game loop to upgrade a mod between frames.
type Command struct {
	Slot  input.Slot
	Mod   session.Mod
	Reply chan CommandReply
}

type CommandReply struct {
	Code  ResponseCode
	Level int
	Err   error
}

// Snapshot is the server side mirror of the running session.
type Snapshot struct {
	SessionID string      `json:"session_id"`
	State     string      `json:"state"`
	Round     int         `json:"round"`
	RoundID   string      `json:"round_id"`
	Players   int         `json:"players"`
	Scores    []int       `json:"scores"`
	Alive     []int       `json:"alive"`
	Kills     [][]int     `json:"kills"`
	Sealed    int         `json:"sealed"`
	Walls     int         `json:"walls"`
	Grid      *model.Grid `json:"-"`
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_BREAK
	GS_OVER
)

// GameSession plays rounds back to back until one player is left. It runs on
// the game loop and owns everything the core touches.
type GameSession struct {
	State   GameSessionState
	Config  *config.Config
	Session *session.Session
	Router  *input.Router
	Clock   *clock.Clock
	World   *arena.World
	Round   *round.Controller
	Bots    []*arena.Bot
	Maps    []*model.Grid
	Server  *GameServer

	// Break is the pause between two rounds.
	Break time.Duration

	rng        *rand.Rand
	breakTimer *clock.Timer
}
