package main

import (
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/arena/config"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/server"
)

// Load reads the configuration and the arenas. Without readable arenas the
// session falls back to the bordered default.
func Load() (*config.Config, []*model.Grid, error) {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	maps, err := server.LoadMaps(cfg.MapDir, func(name string) (io.ReadCloser, error) {
		return ebitenutil.OpenFile(name)
	})
	if err != nil {
		return nil, nil, err
	}
	if len(maps) == 0 {
		logger.Log.Warnf("no arenas in %s, using the bordered default", cfg.MapDir)
	}
	return cfg, maps, nil
}

func LoadFont(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:       size,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	}), nil
}
