package input

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/logger"
)

var (
	ErrUnknownButton   = errors.New("unknown button")
	ErrStickButton     = errors.New("stick buttons have no edges")
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrReentrantUpdate = errors.New("hardware update from inside a handler")
)

// Handler reacts to a press or release edge.
type Handler func()

type vector struct {
	x, y float64
}

func (v vector) neutral() bool {
	return v.x == 0 && v.y == 0
}

type slotState struct {
	sticks    [2]vector
	held      map[Code]bool
	onPress   map[Button]Handler
	onRelease map[Button]Handler
}

// Router turns per slot hardware samples into level state and edge events.
// It is not safe for concurrent use: samples, queries and the frame update
// all run on the game loop.
type Router struct {
	mapping     Mapping
	byCode      map[Code][]Button
	slots       [MaxSlots]slotState
	dispatching bool
}

func NewRouter(m Mapping) *Router {
	if m == nil {
		m = DefaultMapping()
	}
	r := &Router{
		mapping: m,
		byCode:  make(map[Code][]Button),
	}
	for _, codes := range m {
		for _, c := range codes {
			if _, done := r.byCode[c]; !done {
				r.byCode[c] = m.buttons(c)
			}
		}
	}
	for i := range r.slots {
		r.slots[i].held = make(map[Code]bool)
	}
	r.ResetCallbacks()
	return r
}

func (r *Router) slot(s Slot) (*slotState, error) {
	if !s.valid() {
		return nil, fmt.Errorf("slot %d: %w", s, ErrInvalidSlot)
	}
	return &r.slots[s], nil
}

// IsDown reports the level state of a button. Sticks are down while they report a
// non-zero vector.
func (r *Router) IsDown(s Slot, b Button) (bool, error) {
	st, err := r.slot(s)
	if err != nil {
		return false, err
	}
	switch b {
	case MoveStick:
		return !st.sticks[Left].neutral(), nil
	case AimStick:
		return !st.sticks[Right].neutral(), nil
	}
	codes, err := r.mapping.codes(b)
	if err != nil {
		return false, err
	}
	for _, c := range codes {
		if st.held[c] {
			return true, nil
		}
	}
	return false, nil
}

// OnPress installs the press handler of (slot, button), replacing any previous one.
func (r *Router) OnPress(s Slot, b Button, h Handler) error {
	st, err := r.slot(s)
	if err != nil {
		return err
	}
	if _, err := r.mapping.codes(b); err != nil {
		return err
	}
	st.onPress[b] = h
	return nil
}

// OnRelease installs the release handler of (slot, button), replacing any previous one.
func (r *Router) OnRelease(s Slot, b Button, h Handler) error {
	st, err := r.slot(s)
	if err != nil {
		return err
	}
	if _, err := r.mapping.codes(b); err != nil {
		return err
	}
	st.onRelease[b] = h
	return nil
}

// StickAngle returns atan2(y, x) rotated by a quarter turn, so a stick pushed
// along the up axis reads 0. ok is false while the stick is neutral.
func (r *Router) StickAngle(side Side, s Slot) (angle float64, ok bool) {
	if !s.valid() || (side != Left && side != Right) {
		return 0, false
	}
	v := r.slots[s].sticks[side]
	if v.neutral() {
		return 0, false
	}
	return math.Atan2(v.y, v.x) + math.Pi/2, true
}

func (r *Router) LeftStickAngle(s Slot) (float64, bool) {
	return r.StickAngle(Left, s)
}

func (r *Router) RightStickAngle(s Slot) (float64, bool) {
	return r.StickAngle(Right, s)
}

// ResetCallbacks drops every handler of every slot. Stick and button levels stay.
func (r *Router) ResetCallbacks() {
	for i := range r.slots {
		r.slots[i].onPress = make(map[Button]Handler)
		r.slots[i].onRelease = make(map[Button]Handler)
	}
}

// AxisUpdate stores one analog component. A move from exactly zero on the
// vertical move axis also presses UP (negative) or DOWN (positive).
func (r *Router) AxisUpdate(s Slot, a Axis, value float64) error {
	st, err := r.slot(s)
	if err != nil {
		return err
	}
	if r.dispatching {
		return ErrReentrantUpdate
	}

	var v *float64
	switch a {
	case AxisLeftX:
		v = &st.sticks[Left].x
	case AxisLeftY:
		v = &st.sticks[Left].y
	case AxisRightX:
		v = &st.sticks[Right].x
	case AxisRightY:
		v = &st.sticks[Right].y
	default:
		return nil
	}

	if a == VerticalMoveAxis && *v == 0 {
		if value < 0 {
			r.dispatch(s, Up, st.onPress[Up])
		} else if value > 0 {
			r.dispatch(s, Down, st.onPress[Down])
		}
	}
	*v = value
	return nil
}

// ButtonUpdate records a digital sample. Handlers run once per real edge, repeated
// samples of the same state are ignored.
func (r *Router) ButtonUpdate(s Slot, c Code, pressed bool) error {
	st, err := r.slot(s)
	if err != nil {
		return err
	}
	if r.dispatching {
		return ErrReentrantUpdate
	}
	if st.held[c] == pressed {
		return nil
	}
	st.held[c] = pressed

	table := st.onRelease
	if pressed {
		table = st.onPress
	}
	for _, b := range r.byCode[c] {
		r.dispatch(s, b, table[b])
	}
	return nil
}

func (r *Router) dispatch(s Slot, b Button, h Handler) {
	if h == nil {
		return
	}
	logger.Log.WithFields(log.Fields{"slot": s, "button": b.Name()}).Debug("input edge")
	r.dispatching = true
	defer func() { r.dispatching = false }()
	h()
}
