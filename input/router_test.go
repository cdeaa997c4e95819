package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDownDigital(t *testing.T) {
	r := NewRouter(nil)

	down, err := r.IsDown(1, Fire)
	require.NoError(t, err)
	assert.False(t, down)

	require.NoError(t, r.ButtonUpdate(1, CodeRightBumper, true))
	down, _ = r.IsDown(1, Fire)
	assert.True(t, down)

	other, _ := r.IsDown(0, Fire)
	assert.False(t, other, "slots share no state")

	require.NoError(t, r.ButtonUpdate(1, CodeRightBumper, false))
	down, _ = r.IsDown(1, Fire)
	assert.False(t, down)
}

func TestIsDownSticks(t *testing.T) {
	r := NewRouter(nil)

	down, err := r.IsDown(0, MoveStick)
	require.NoError(t, err)
	assert.False(t, down)

	require.NoError(t, r.AxisUpdate(0, AxisLeftX, 0.5))
	down, _ = r.IsDown(0, MoveStick)
	assert.True(t, down)
	aim, _ := r.IsDown(0, AimStick)
	assert.False(t, aim)

	require.NoError(t, r.AxisUpdate(0, AxisLeftX, 0))
	down, _ = r.IsDown(0, MoveStick)
	assert.False(t, down)

	require.NoError(t, r.AxisUpdate(0, AxisRightY, -1))
	aim, _ = r.IsDown(0, AimStick)
	assert.True(t, aim)
}

func TestIsDownErrors(t *testing.T) {
	r := NewRouter(nil)

	_, err := r.IsDown(0, Button(42))
	assert.ErrorIs(t, err, ErrUnknownButton)

	_, err = r.IsDown(4, Fire)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = r.IsDown(-1, MoveStick)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestSelectIsEitherCode(t *testing.T) {
	r := NewRouter(nil)
	presses := 0
	require.NoError(t, r.OnPress(2, Select, func() { presses++ }))

	require.NoError(t, r.ButtonUpdate(2, CodeA, true))
	assert.Equal(t, 1, presses, "one code of the pair is enough")
	down, _ := r.IsDown(2, Select)
	assert.True(t, down)

	require.NoError(t, r.ButtonUpdate(2, CodeRightBumper, true))
	assert.Equal(t, 2, presses)

	require.NoError(t, r.ButtonUpdate(2, CodeA, false))
	down, _ = r.IsDown(2, Select)
	assert.True(t, down, "still held through the bumper")
}

func TestPressAndReleaseFireOncePerEdge(t *testing.T) {
	r := NewRouter(nil)
	var presses, releases int
	require.NoError(t, r.OnPress(0, Dash, func() { presses++ }))
	require.NoError(t, r.OnRelease(0, Dash, func() { releases++ }))

	for i := 0; i < 3; i++ {
		require.NoError(t, r.ButtonUpdate(0, CodeLeftBumper, true))
	}
	assert.Equal(t, 1, presses)
	assert.Equal(t, 0, releases)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.ButtonUpdate(0, CodeLeftBumper, false))
	}
	assert.Equal(t, 1, presses)
	assert.Equal(t, 1, releases)

	require.NoError(t, r.ButtonUpdate(0, CodeLeftBumper, true))
	assert.Equal(t, 2, presses)
}

func TestReleaseWithoutPressIsNoEdge(t *testing.T) {
	r := NewRouter(nil)
	releases := 0
	require.NoError(t, r.OnRelease(3, Reload, func() { releases++ }))

	require.NoError(t, r.ButtonUpdate(3, CodeRightTrigger, false))
	assert.Zero(t, releases)
}

func TestLastRegistrationWins(t *testing.T) {
	r := NewRouter(nil)
	var first, second int
	require.NoError(t, r.OnPress(0, Reload, func() { first++ }))
	require.NoError(t, r.OnPress(0, Reload, func() { second++ }))

	require.NoError(t, r.ButtonUpdate(0, CodeRightTrigger, true))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestSharedCodeFiresEveryBoundButton(t *testing.T) {
	r := NewRouter(nil)
	var order []Button
	require.NoError(t, r.OnPress(1, Select, func() { order = append(order, Select) }))
	require.NoError(t, r.OnPress(1, Fire, func() { order = append(order, Fire) }))

	require.NoError(t, r.ButtonUpdate(1, CodeRightBumper, true))
	assert.Equal(t, []Button{Fire, Select}, order)
}

func TestRegisterErrors(t *testing.T) {
	r := NewRouter(nil)
	assert.ErrorIs(t, r.OnPress(0, Button(99), func() {}), ErrUnknownButton)
	assert.ErrorIs(t, r.OnRelease(0, MoveStick, func() {}), ErrStickButton)
	assert.ErrorIs(t, r.OnPress(7, Fire, func() {}), ErrInvalidSlot)
}

func TestResetCallbacksKeepsLevels(t *testing.T) {
	r := NewRouter(nil)
	fired := 0
	require.NoError(t, r.OnPress(0, Fire, func() { fired++ }))
	require.NoError(t, r.OnRelease(0, Fire, func() { fired++ }))
	require.NoError(t, r.ButtonUpdate(0, CodeRightBumper, true))
	require.NoError(t, r.AxisUpdate(0, AxisRightX, 1))
	require.Equal(t, 1, fired)

	r.ResetCallbacks()

	down, _ := r.IsDown(0, Fire)
	assert.True(t, down)
	_, ok := r.RightStickAngle(0)
	assert.True(t, ok)

	require.NoError(t, r.ButtonUpdate(0, CodeRightBumper, false))
	require.NoError(t, r.ButtonUpdate(0, CodeRightBumper, true))
	assert.Equal(t, 1, fired, "stale handlers must not run")
}

func TestStickAngle(t *testing.T) {
	r := NewRouter(nil)

	_, ok := r.LeftStickAngle(0)
	assert.False(t, ok, "neutral before any sample")

	samples := [][2]float64{{1, 0}, {0, -1}, {-0.3, 0.8}, {-1, -1}, {0.25, 0.25}, {0, 1}}
	for _, s := range samples {
		require.NoError(t, r.AxisUpdate(0, AxisLeftX, s[0]))
		require.NoError(t, r.AxisUpdate(0, AxisLeftY, s[1]))
		got, ok := r.LeftStickAngle(0)
		require.True(t, ok)
		assert.InDelta(t, math.Atan2(s[1], s[0])+math.Pi/2, got, 1e-12)
	}

	// pushed straight up reads as the zero reference
	require.NoError(t, r.AxisUpdate(0, AxisLeftX, 0))
	require.NoError(t, r.AxisUpdate(0, AxisLeftY, -1))
	got, _ := r.LeftStickAngle(0)
	assert.InDelta(t, 0, got, 1e-12)

	require.NoError(t, r.AxisUpdate(0, AxisLeftY, 0))
	_, ok = r.LeftStickAngle(0)
	assert.False(t, ok, "neutral once both components are back to zero")

	_, ok = r.StickAngle(Right, 9)
	assert.False(t, ok)
}

func TestVerticalAxisSynthesizesUpDown(t *testing.T) {
	r := NewRouter(nil)
	var ups, downs int
	require.NoError(t, r.OnPress(0, Up, func() { ups++ }))
	require.NoError(t, r.OnPress(0, Down, func() { downs++ }))

	require.NoError(t, r.AxisUpdate(0, AxisLeftY, -0.4))
	assert.Equal(t, 1, ups)
	require.NoError(t, r.AxisUpdate(0, AxisLeftY, -0.9))
	assert.Equal(t, 1, ups, "no edge between values of the same sign")

	// reversal without passing through zero is a known gap
	require.NoError(t, r.AxisUpdate(0, AxisLeftY, 0.7))
	assert.Equal(t, 0, downs)

	require.NoError(t, r.AxisUpdate(0, AxisLeftY, 0))
	require.NoError(t, r.AxisUpdate(0, AxisLeftY, 0.7))
	assert.Equal(t, 1, downs)

	// the aim stick never synthesizes
	require.NoError(t, r.AxisUpdate(0, AxisRightY, -1))
	assert.Equal(t, 1, ups)

	down, _ := r.IsDown(0, Down)
	assert.False(t, down, "synthesized edges do not change digital levels")
}

func TestReentrantUpdateRejected(t *testing.T) {
	r := NewRouter(nil)
	var inner error
	require.NoError(t, r.OnPress(0, Fire, func() {
		inner = r.ButtonUpdate(0, CodeLeftBumper, true)
	}))

	require.NoError(t, r.ButtonUpdate(0, CodeRightBumper, true))
	assert.ErrorIs(t, inner, ErrReentrantUpdate)
	down, _ := r.IsDown(0, Dash)
	assert.False(t, down)

	require.NoError(t, r.ButtonUpdate(0, CodeLeftBumper, true), "dispatch flag cleared afterwards")
}

func TestButtonNames(t *testing.T) {
	assert.Equal(t, "MOVE_STICK", MoveStick.Name())
	assert.Equal(t, "SELECT", Select.Name())
	assert.Equal(t, "N/A(12)", Button(12).Name())
}

func TestDeadzone(t *testing.T) {
	assert.Zero(t, Deadzone(0.19, 0.2))
	assert.Zero(t, Deadzone(-0.19, 0.2))
	assert.Equal(t, 0.2, Deadzone(0.2, 0.2))
	assert.Equal(t, -0.7, Deadzone(-0.7, 0.2))
	assert.Equal(t, 0.05, Deadzone(0.05, 0))
}
