// Package mouse holds the primitives shared between the virtual mouse
// interfaces: button state, the DOS event mask, movement clamping and the
// speed model feeding pointer ballistics.
package mouse

import "math"

// Buttons is the raw button bitmask reported by the host bridge, already
// squished to the three buttons DOS software knows about.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

func (b Buttons) Left() bool   { return b&ButtonLeft != 0 }
func (b Buttons) Right() bool  { return b&ButtonRight != 0 }
func (b Buttons) Middle() bool { return b&ButtonMiddle != 0 }

// EventMask bits match the callback mask of INT 33h function 0x0c.
type EventMask uint8

const (
	EventMoved          EventMask = 1 << 0
	EventPressedLeft    EventMask = 1 << 1
	EventReleasedLeft   EventMask = 1 << 2
	EventPressedRight   EventMask = 1 << 3
	EventReleasedRight  EventMask = 1 << 4
	EventPressedMiddle  EventMask = 1 << 5
	EventReleasedMiddle EventMask = 1 << 6

	// The wheel extension reuses bit 0 of the guest-visible mask; real
	// wheel drivers multiplex it the same way.
	EventWheelMoved EventMask = 1 << 0
)

// Relative movement beyond this is nonsense from a single host event batch;
// larger values would overflow the mickey arithmetic downstream.
const maxRelMovement = 2048.0

// ClampRelativeMovement bounds an accumulated relative movement without
// dropping it.
func ClampRelativeMovement(rel float32) float32 {
	if rel < -maxRelMovement {
		return -maxRelMovement
	}
	if rel > maxRelMovement {
		return maxRelMovement
	}
	return rel
}

// SensitivityCoeff converts a user sensitivity setting on the -99..99 scale
// to a movement multiplier. 50 is neutral, every ten steps doubles the
// speed, negative settings invert the axis and 0 disables it.
func SensitivityCoeff(setting int16) float32 {
	if setting == 0 {
		return 0
	}
	sign := float32(1)
	if setting < 0 {
		sign = -1
		setting = -setting
	}
	return sign * float32(math.Pow(2, float64(setting-50)/10.0))
}

// ClampToInt8 saturates to the int8 range.
func ClampToInt8(v int32) int8 {
	if v < -128 {
		return -128
	}
	if v > 127 {
		return 127
	}
	return int8(v)
}

// ClampToInt16 saturates to the int16 range.
func ClampToInt16(v int32) int16 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return int16(v)
}
