package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
)

// LoadMaps reads every *.txt arena in dir through open (os.Open when nil).
// Files that do not parse are skipped with a warning.
func LoadMaps(dir string, open func(string) (io.ReadCloser, error)) ([]*model.Grid, error) {
	if open == nil {
		open = func(name string) (io.ReadCloser, error) { return os.Open(name) }
	}
	names, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	maps := make([]*model.Grid, 0, len(names))
	for _, name := range names {
		g, err := loadMap(name, open)
		if err != nil {
			logger.Log.WithFields(log.Fields{"file": name}).Warnf("skipping arena: %v", err)
			continue
		}
		maps = append(maps, g)
	}
	return maps, nil
}

func loadMap(name string, open func(string) (io.ReadCloser, error)) (*model.Grid, error) {
	file, err := open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return model.Read(file)
}

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_CONFLICT = 409
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	CMD_DONE ResponseCode = iota
	CMD_NOT_FOUND
	CMD_INVALIDE
	CMD_REFUSED
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case CMD_DONE:
		return HTTP_SUCCESS
	case CMD_NOT_FOUND:
		return HTTP_NOT_FOUND
	case CMD_INVALIDE:
		return HTTP_BAD_REQUEST
	case CMD_REFUSED:
		return HTTP_CONFLICT
	default:
		panic(h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_BREAK:
		return "GS_BREAK"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ss SpectatorState) Name() string {
	switch ss {
	case SS_NEW:
		return "NEW"
	case SS_WATCH:
		return "WATCH"
	case SS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}
