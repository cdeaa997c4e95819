package main

import (
	"image/color"

	"github.com/zucenko/arena/input"
)

func HexToF32(u uint32, id int) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b, id}
}

type GameColor struct {
	r  float64
	g  float64
	b  float64
	id int
}

func (c GameColor) RGBA(alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(c.r * alpha * 255),
		G: uint8(c.g * alpha * 255),
		B: uint8(c.b * alpha * 255),
		A: uint8(alpha * 255),
	}
}

var COLOR_FLOOR = HexToF32(0x2b2b30, 0)
var COLOR_WALL = HexToF32(0x8a847a, 7)
var COLOR_TEXT = HexToF32(0xf0f0f0, 8)

// one per controller slot
var COLORS = [input.MaxSlots]GameColor{
	HexToF32(0xfa3636, 1),
	HexToF32(0x34b4fb, 2),
	HexToF32(0x0abd38, 3),
	HexToF32(0xedbc1e, 4),
}

func SlotColor(s input.Slot) GameColor {
	if s < 0 || int(s) >= len(COLORS) {
		return COLOR_TEXT
	}
	return COLORS[s]
}
