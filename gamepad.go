package main

import (
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
)

// Pads feeds the samples of seated gamepads to the router. Raw button and axis
// indices are read as the standard layout.
type Pads struct {
	Router   *input.Router
	Deadzone float64
	Seats    *input.Seats

	held map[input.Slot]map[input.Code]bool
}

func NewPads(router *input.Router, deadzone float64, slots []input.Slot) *Pads {
	return &Pads{
		Router:   router,
		Deadzone: deadzone,
		Seats:    input.NewSeats(slots),
		held:     make(map[input.Slot]map[input.Code]bool),
	}
}

// Poll runs between frames, before the game session update. Slots are
// sampled in slot order.
func (p *Pads) Poll() error {
	joined, gone := p.Seats.Sync(ebiten.GamepadIDs())
	for _, seat := range gone {
		logger.Log.WithFields(log.Fields{"slot": seat.Slot, "gamepad": seat.ID}).Info("gamepad disconnected")
		if err := p.neutral(seat.Slot); err != nil {
			return err
		}
	}
	for _, seat := range joined {
		logger.Log.WithFields(log.Fields{"slot": seat.Slot, "gamepad": seat.ID}).Info("gamepad connected")
		p.held[seat.Slot] = make(map[input.Code]bool)
	}
	for _, seat := range p.Seats.Seated() {
		if err := p.sample(seat.Slot, seat.ID); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pads) sample(slot input.Slot, id int) error {
	axes := ebiten.GamepadAxisNum(id)
	for a := input.Axis(0); a < input.AxisCount && int(a) < axes; a++ {
		v := input.Deadzone(ebiten.GamepadAxis(id, int(a)), p.Deadzone)
		if err := p.Router.AxisUpdate(slot, a, v); err != nil {
			return err
		}
	}
	buttons := ebiten.GamepadButtonNum(id)
	for c := input.Code(0); c < input.CodeCount && int(c) < buttons; c++ {
		b := ebiten.GamepadButton(c)
		switch {
		case inpututil.IsGamepadButtonJustPressed(id, b):
			p.held[slot][c] = true
			if err := p.Router.ButtonUpdate(slot, c, true); err != nil {
				return err
			}
		case inpututil.IsGamepadButtonJustReleased(id, b):
			delete(p.held[slot], c)
			if err := p.Router.ButtonUpdate(slot, c, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// neutral releases everything a vanished pad was holding.
func (p *Pads) neutral(slot input.Slot) error {
	for a := input.Axis(0); a < input.AxisCount; a++ {
		if err := p.Router.AxisUpdate(slot, a, 0); err != nil {
			return err
		}
	}
	for c := input.Code(0); c < input.CodeCount; c++ {
		if !p.held[slot][c] {
			continue
		}
		if err := p.Router.ButtonUpdate(slot, c, false); err != nil {
			return err
		}
	}
	delete(p.held, slot)
	return nil
}

func (p *Pads) Connected() int {
	return len(p.Seats.Seated())
}
