// Package dosdriver emulates the resident DOS mouse driver (INT 33h) of a
// PC emulator. Host input events are folded into guest-visible driver
// state, a cursor sprite is composited through the machine's video
// services, and registered guest callbacks are invoked through synthetic
// far calls on the guest stack.
package dosdriver

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/emucore/dosmouse/mouse"
)

const (
	cursorSizeX  = 16
	cursorSizeY  = 16
	cursorSizeXY = cursorSizeX * cursorSizeY

	numButtons = 3
)

// CursorType selects the cursor rendering variant.
type CursorType uint8

const (
	CursorSoftware CursorType = 0
	CursorHardware CursorType = 1
	CursorText     CursorType = 2
)

// Background is the saved screen content under the cursor footprint.
type Background struct {
	Enabled bool
	PosX    uint16
	PosY    uint16
	Data    [cursorSizeXY]uint8
}

// State is the guest-visible driver state. Functions 0x15/0x16/0x17 let DOS
// software bulk-copy the whole aggregate to and from guest memory, so the
// layout is flat and fixed: scalar and array fields of explicit width only,
// no pointers or indices that a hostile blob could corrupt, and a field
// order that stays stable for the lifetime of a session.
type State struct {
	Enabled  bool
	WheelAPI bool // CuteMouse wheel extension enabled by the guest

	TimesPressed  [numButtons]uint16
	TimesReleased [numButtons]uint16
	LastReleasedX [numButtons]uint16
	LastReleasedY [numButtons]uint16
	LastPressedX  [numButtons]uint16
	LastPressedY  [numButtons]uint16
	LastWheelX    uint16
	LastWheelY    uint16

	MickeyCounterX int16
	MickeyCounterY int16

	// Sub-mickey remainders carried between updates. Not guest-meaningful
	// but persisted with everything else.
	MickeyDeltaX float32
	MickeyDeltaY float32

	MickeysPerPixelX float32
	MickeysPerPixelY float32

	DoubleSpeedThreshold uint16 // mickeys per second

	GranularityX uint16 // position truncation masks
	GranularityY uint16

	UpdateRegionX [2]int16
	UpdateRegionY [2]int16

	Language uint16 // driver message language, stored but unused
	Mode     uint8  // active video mode number

	SensitivityX uint8
	SensitivityY uint8
	// Third byte accepted and returned by functions 0x1a/0x1b. Meaning
	// unconfirmed; preserved byte-for-byte.
	Unknown01 uint8

	SensitivityCoeffX float32
	SensitivityCoeffY float32

	MinPosX int16
	MaxPosX int16
	MinPosY int16
	MaxPosY int16

	Page        uint8
	InhibitDraw bool
	Hidden      uint16 // nested hide counter; cursor drawn only at 0
	OldHidden   uint16
	ClipX       int16
	ClipY       int16
	HotX        int16
	HotY        int16

	Background Background

	CursorType CursorType

	TextAndMask       uint16
	TextXorMask       uint16
	UserScreenMask    bool
	UserCursorMask    bool
	UserDefScreenMask [cursorSizeX]uint16
	UserDefCursorMask [cursorSizeY]uint16

	CallbackMask uint16
	CallbackSeg  uint16
	CallbackOff  uint16
}

// StateSize is the byte size of the marshalled State, reported to the guest
// by function 0x15.
var StateSize = binary.Size(State{})

// MarshalBinary encodes the state little-endian in declaration order.
func (s *State) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, StateSize))
	if err := binary.Write(buf, binary.LittleEndian, s); err != nil {
		return nil, fmt.Errorf("marshal driver state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a state blob. The guest may hand back arbitrary
// bytes; decoding never fails on content, only on short input.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) < StateSize {
		return fmt.Errorf("unmarshal driver state: got %d bytes, want %d", len(data), StateSize)
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, s); err != nil {
		return fmt.Errorf("unmarshal driver state: %w", err)
	}
	return nil
}

// Hardware is the host-facing mouse state. It survives driver resets and is
// never exposed to the guest as a blob.
type Hardware struct {
	Buttons mouse.Buttons

	// Sub-pixel cursor position in guest coordinates.
	PosX float32
	PosY float32

	CounterW int8 // wheel counter, clamped arithmetic

	Mapped   bool // a physical mouse is mapped directly to this interface
	RawInput bool // host pointer acceleration bypassed
	Captured bool // host pointer grabbed by the emulated session

	RateIsSet bool // sampling rate explicitly negotiated by the guest
	RateHz    uint16
	MinRateHz uint16
}

// pendingEvent accumulates host movement that has not yet been applied to
// the driver state. Sums merge commutatively; the absolute position keeps
// only the latest sample. Contents are clamped rather than dropped when
// they would overflow the representable range.
type pendingEvent struct {
	xRel float32
	yRel float32
	xAbs uint16
	yAbs uint16
	wRel int16
}

func (p *pendingEvent) reset() {
	p.xRel = 0
	p.yRel = 0
	p.wRel = 0
}
