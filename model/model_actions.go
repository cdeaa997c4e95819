package model

// NewGrid returns an all open grid without spawn markers.
func NewGrid(cols, rows int) *Grid {
	tiles := make([][]Tile, 0, cols)
	for c := 0; c < cols; c++ {
		tiles = append(tiles, make([]Tile, rows))
	}
	return &Grid{Cols: cols, Rows: rows, Tiles: tiles}
}

// NewBorderedGrid is the fallback arena: a wall ring with a spawn marker
// two tiles inside each corner.
func NewBorderedGrid(cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	for c := 0; c < cols; c++ {
		g.Tiles[c][0] = Wall
		g.Tiles[c][rows-1] = Wall
	}
	for r := 0; r < rows; r++ {
		g.Tiles[0][r] = Wall
		g.Tiles[cols-1][r] = Wall
	}
	if cols > 4 && rows > 4 {
		g.Spawns = []Coord{
			{2, 2},
			{cols - 3, rows - 3},
			{cols - 3, 2},
			{2, rows - 3},
		}
	}
	return g
}
