package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/matryer/way"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/session"
)

const URI_ROUND = "/debug/round"
const URI_GRID = "/debug/grid.png"
const URI_FEED = "/debug/feed"
const URI_MODS = "/debug/mods"
const URI_UPGRADE = "/debug/mods/:slot/:mod"

// Routes registers the debug surface on r.
func (s *GameServer) Routes(r *way.Router) {
	r.HandleFunc("GET", URI_ROUND, s.HandleRound())
	r.HandleFunc("GET", URI_GRID, s.HandleGrid())
	r.HandleFunc("GET", URI_FEED, s.HandleFeed())
	r.HandleFunc("GET", URI_MODS, s.HandleCatalog())
	r.HandleFunc("POST", URI_UPGRADE, s.HandleUpgrade())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warnf("writeJSON %v", err)
	}
}

func (s *GameServer) HandleRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, HTTP_SUCCESS, s.Snapshot())
	}
}

func (s *GameServer) HandleGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Snapshot()
		if snap.Grid == nil {
			w.WriteHeader(HTTP_NOT_FOUND)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := WriteGridPNG(w, snap.Grid); err != nil {
			logger.Log.Warnf("HandleGrid %v", err)
		}
	}
}

type modEntry struct {
	Mod         session.Mod `json:"mod"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	MaxLevel    int         `json:"max_level"`
}

func (s *GameServer) HandleCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mods := make([]modEntry, 0, len(session.Catalog))
		for m, info := range session.Catalog {
			mods = append(mods, modEntry{m, info.Name, info.Description, info.MaxLevel})
		}
		sort.Slice(mods, func(i, j int) bool { return mods[i].Mod < mods[j].Mod })
		writeJSON(w, HTTP_SUCCESS, mods)
	}
}

// HandleUpgrade hands the upgrade to the game loop and waits for its answer.
func (s *GameServer) HandleUpgrade() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := strconv.Atoi(way.Param(r.Context(), "slot"))
		if err != nil {
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		cmd := Command{
			Slot:  input.Slot(slot),
			Mod:   session.Mod(way.Param(r.Context(), "mod")),
			Reply: make(chan CommandReply, 1),
		}
		select {
		case s.Commands <- cmd:
		case <-time.After(timeout):
			logger.Log.Warn("HandleUpgrade Commands TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		select {
		case reply := <-cmd.Reply:
			body := map[string]interface{}{"slot": slot, "mod": cmd.Mod, "level": reply.Level}
			if reply.Err != nil {
				body["error"] = reply.Err.Error()
			}
			writeJSON(w, reply.Code.ToHttp(), body)
		case <-time.After(timeout):
			logger.Log.Warn("HandleUpgrade reply TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
		}
	}
}

// ReplyTo maps an upgrade outcome onto the response codes.
func ReplyTo(level int, err error) CommandReply {
	switch {
	case err == nil:
		return CommandReply{Code: CMD_DONE, Level: level}
	case errors.Is(err, session.ErrUnknownMod):
		return CommandReply{Code: CMD_NOT_FOUND, Level: level, Err: err}
	case errors.Is(err, input.ErrInvalidSlot):
		return CommandReply{Code: CMD_INVALIDE, Level: level, Err: err}
	default:
		return CommandReply{Code: CMD_REFUSED, Level: level, Err: err}
	}
}

func (s *GameServer) HandleFeed() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warnf("HandleFeed websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		sp := s.addSpectator(con)
		sp.State = SS_WATCH
		select {
		case s.register <- sp:
		case <-time.After(timeout):
			logger.Log.Warn("HandleFeed register TIMEOUTED")
			return
		}
		go sp.LoopChannelWrite()
		sp.LoopChannelRead()

		select {
		case s.unregister <- sp:
		case <-sp.Done:
		}
		<-sp.Done
	}
}
