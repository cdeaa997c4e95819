package server

import (
	"io"

	"github.com/fogleman/gg"

	"github.com/zucenko/arena/model"
)

const SNAPSHOT_TILE = 12

// DrawGrid renders walls, open tiles and spawn markers, one square per tile.
func DrawGrid(g *model.Grid, px int) *gg.Context {
	dc := gg.NewContext(g.Cols*px, g.Rows*px)
	dc.SetRGB(0.12, 0.12, 0.14)
	dc.Clear()
	dc.SetRGB(0.55, 0.52, 0.48)
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if g.Tiles[c][r] == model.Wall {
				dc.DrawRectangle(float64(c*px), float64(r*px), float64(px), float64(px))
			}
		}
	}
	dc.Fill()
	dc.SetRGB(0.2, 0.8, 0.4)
	for _, s := range g.Spawns {
		if g.IsWall(s) {
			continue
		}
		dc.DrawCircle(float64(s.X*px+px/2), float64(s.Y*px+px/2), float64(px)/3)
	}
	dc.Fill()
	return dc
}

func WriteGridPNG(w io.Writer, g *model.Grid) error {
	return DrawGrid(g, SNAPSHOT_TILE).EncodePNG(w)
}
