package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/config"
	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/server"
)

// Server runs bot sessions back to back on a real time ticker and serves the
// debug surface.
type Server struct {
	router      *way.Router
	GameServer  *server.GameServer
	GameSession *server.GameSession
}

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("config: %v", err)
	}
	cfg.Bots = cfg.Players

	maps, err := server.LoadMaps(cfg.MapDir, nil)
	if err != nil {
		logger.Log.Fatalf("maps: %v", err)
	}
	logger.Log.WithFields(log.Fields{"dir": cfg.MapDir, "maps": len(maps)}).Info("arenas loaded")

	s := Server{GameServer: server.NewGameServer()}
	s.GameSession, err = server.NewGameSession(cfg, maps, input.NewRouter(nil), s.GameServer)
	if err != nil {
		logger.Log.Fatalf("session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go s.GameServer.Loop(ctx)

	addr := cfg.DebugAddr
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
			logger.Log.Printf("Defaulting to port %s", port)
		}
		addr = ":" + port
	}
	s.routes()
	httpServer := &http.Server{Addr: addr, Handler: s.router}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalln(err)
		}
	}()

	if err := s.play(ctx); err != nil {
		logger.Log.Errorf("game loop: %v", err)
	}
	shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdown)
}

// play steps the session once per tick and starts a rematch a little after
// every finished session.
func (s *Server) play(ctx context.Context) error {
	gs := s.GameSession
	ticker := time.NewTicker(gs.Config.FrameTime())
	defer ticker.Stop()
	var overSince time.Duration
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := gs.Frame(); err != nil {
			return err
		}
		if gs.State != server.GS_OVER {
			overSince = 0
			continue
		}
		if overSince == 0 {
			overSince = gs.Clock.Now()
		}
		if gs.Clock.Now()-overSince >= gs.Break {
			if err := gs.Rematch(); err != nil {
				return err
			}
		}
	}
}
