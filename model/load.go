package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Read parses a text arena: '#' wall, '.' open, 'S' open tile with a spawn marker.
// Blank lines and lines starting with ';' are skipped.
func Read(reader io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	lines := make([]string, 0)
	for scanner.Scan() {
		s := strings.TrimRight(scanner.Text(), " \r")
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}
		lines = append(lines, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty arena")
	}

	cols := len(lines[0])
	g := NewGrid(cols, len(lines))
	for row, s := range lines {
		if len(s) != cols {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", row, len(s), cols)
		}
		for col, char := range s {
			switch char {
			case '#':
				g.Tiles[col][row] = Wall
			case '.':
			case 'S':
				g.Spawns = append(g.Spawns, Coord{col, row})
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", row, col, char)
			}
		}
	}
	return g, nil
}
