package main

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten"
)

// Nine is a nine patch panel: corners keep their size, edges and center stretch.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

// NewPanel draws the rounded panel source with gg, corner size px.
func NewPanel(px int, c GameColor, alpha float64) (*Nine, error) {
	side := 3 * px
	dc := gg.NewContext(side, side)
	dc.DrawRoundedRectangle(1, 1, float64(side-2), float64(side-2), float64(px)-1)
	dc.SetRGBA(0.08, 0.08, 0.1, 0.85)
	dc.FillPreserve()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.Stroke()

	img, err := ebiten.NewImageFromImage(dc.Image(), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: img,
		alpha:  alpha,
		R:      c.r, G: c.g, B: c.b, Scale: 1,
		positions: [4][2]int{{0, 0}, {px, px}, {2 * px, 2 * px}, {side, side}},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) SetColor(c GameColor, alpha float64) {
	n.R, n.G, n.B = c.r, c.g, c.b
	n.alpha = alpha
}

func (n *Nine) Draw(screen *ebiten.Image) {
	scales := [3][2]float64{
		{n.Scale, n.Scale},
		{n.scaleCenterWidth, n.scaleCenterHeight},
		{n.Scale, n.Scale},
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scales[col][0], scales[row][1])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			src := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
