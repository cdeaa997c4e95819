package input

import "fmt"

// Slot is a controller position, 0..MaxSlots-1.
type Slot int

const MaxSlots = 4

func (s Slot) valid() bool {
	return s >= 0 && s < MaxSlots
}

// Button is the device independent gameplay vocabulary.
type Button int

const (
	Fire Button = iota
	Dash
	Reload
	MoveStick
	AimStick
	Up
	Down
	Select
)

func (b Button) Name() string {
	switch b {
	case Fire:
		return "FIRE"
	case Dash:
		return "DASH"
	case Reload:
		return "RELOAD"
	case MoveStick:
		return "MOVE_STICK"
	case AimStick:
		return "AIM_STICK"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Select:
		return "SELECT"
	default:
		return fmt.Sprintf("N/A(%d)", b)
	}
}

func (b Button) isStick() bool {
	return b == MoveStick || b == AimStick
}

// Code is a physical button index in the standard (Xbox 360) layout.
type Code int

const (
	CodeA Code = iota
	CodeB
	CodeX
	CodeY
	CodeLeftBumper
	CodeRightBumper
	CodeLeftTrigger
	CodeRightTrigger
	CodeBack
	CodeStart
	CodeLeftStick
	CodeRightStick
	CodeDPadUp
	CodeDPadDown
	CodeDPadLeft
	CodeDPadRight

	CodeCount
)

// Axis is a physical analog axis index in the standard layout.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY

	AxisCount
)

// VerticalMoveAxis doubles as digital UP/DOWN for menu style navigation.
const VerticalMoveAxis = AxisLeftY

// Side picks one of the two sticks.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) Name() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Mapping binds logical buttons to the physical codes that drive them.
type Mapping map[Button][]Code

// DefaultMapping is the static layout. SELECT is held when either of its codes is.
func DefaultMapping() Mapping {
	return Mapping{
		Fire:   {CodeRightBumper},
		Dash:   {CodeLeftBumper},
		Reload: {CodeRightTrigger},
		Up:     {CodeDPadUp},
		Down:   {CodeDPadDown},
		Select: {CodeRightBumper, CodeA},
	}
}

// codes returns the physical codes of a digital button.
func (m Mapping) codes(b Button) ([]Code, error) {
	if b.isStick() {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrStickButton)
	}
	codes, ok := m[b]
	if !ok || len(codes) == 0 {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrUnknownButton)
	}
	return codes, nil
}

// buttons lists the digital buttons fed by a code, in vocabulary order.
func (m Mapping) buttons(c Code) []Button {
	var out []Button
	for b := Fire; b <= Select; b++ {
		for _, mc := range m[b] {
			if mc == c {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// Deadzone zeroes a stick component whose magnitude is below dz, so a resting
// stick reads as neutral.
func Deadzone(v, dz float64) float64 {
	if v > -dz && v < dz {
		return 0
	}
	return v
}
