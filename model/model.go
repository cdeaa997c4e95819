package model

import "fmt"

type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

type Tile int

const (
	Open Tile = iota
	Wall
)

// Grid is the walkable tile map of an arena. Tiles are stored by column,
// Tiles[x][y], the same way the map files are addressed.
type Grid struct {
	Cols, Rows int
	Tiles      [][]Tile
	Spawns     []Coord
}

func (g *Grid) In(c Coord) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// IsWall treats everything outside the grid as wall.
func (g *Grid) IsWall(c Coord) bool {
	if !g.In(c) {
		return true
	}
	return g.Tiles[c.X][c.Y] == Wall
}

// SetWall seals one tile and reports whether it was open before.
func (g *Grid) SetWall(c Coord) bool {
	if !g.In(c) || g.Tiles[c.X][c.Y] == Wall {
		return false
	}
	g.Tiles[c.X][c.Y] = Wall
	return true
}

func (g *Grid) Walls() int {
	n := 0
	for _, column := range g.Tiles {
		for _, t := range column {
			if t == Wall {
				n++
			}
		}
	}
	return n
}

func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Cols, g.Rows)
	for x := range g.Tiles {
		copy(c.Tiles[x], g.Tiles[x])
	}
	c.Spawns = append([]Coord(nil), g.Spawns...)
	return c
}
