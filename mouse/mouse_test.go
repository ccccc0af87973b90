package mouse_test

import (
	"testing"

	"github.com/emucore/dosmouse/mouse"
	"github.com/stretchr/testify/assert"
)

func TestButtons(t *testing.T) {
	b := mouse.ButtonLeft | mouse.ButtonMiddle
	assert.True(t, b.Left())
	assert.False(t, b.Right())
	assert.True(t, b.Middle())
}

func TestClampRelativeMovement(t *testing.T) {
	assert.Equal(t, float32(10), mouse.ClampRelativeMovement(10))
	assert.Equal(t, float32(2048), mouse.ClampRelativeMovement(5000))
	assert.Equal(t, float32(-2048), mouse.ClampRelativeMovement(-5000))
}

func TestClampToInt8(t *testing.T) {
	assert.Equal(t, int8(127), mouse.ClampToInt8(300))
	assert.Equal(t, int8(-128), mouse.ClampToInt8(-300))
	assert.Equal(t, int8(-5), mouse.ClampToInt8(-5))
}

func TestClampToInt16(t *testing.T) {
	assert.Equal(t, int16(32767), mouse.ClampToInt16(100000))
	assert.Equal(t, int16(-32768), mouse.ClampToInt16(-100000))
	assert.Equal(t, int16(42), mouse.ClampToInt16(42))
}

func TestSensitivityCoeff(t *testing.T) {
	assert.Equal(t, float32(0), mouse.SensitivityCoeff(0))
	assert.InDelta(t, 1.0, mouse.SensitivityCoeff(50), 1e-6)
	assert.InDelta(t, 2.0, mouse.SensitivityCoeff(60), 1e-6)
	assert.InDelta(t, 0.5, mouse.SensitivityCoeff(40), 1e-6)
	assert.InDelta(t, -1.0, mouse.SensitivityCoeff(-50), 1e-6)
}

func TestBallisticsCoeff(t *testing.T) {
	type testCase struct {
		name  string
		speed float32
		want  float32
	}

	cases := []testCase{
		{name: "standstill", speed: 0, want: 0.5},
		{name: "negative clamps low", speed: -1, want: 0.5},
		{name: "half threshold", speed: 0.5, want: 0.75},
		{name: "at threshold", speed: 1, want: 1.0},
		{name: "double threshold", speed: 2, want: 1.5},
		{name: "triple threshold", speed: 3, want: 2.0},
		{name: "beyond cap", speed: 10, want: 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, mouse.BallisticsCoeff(tc.speed), 1e-6)
		})
	}
}
