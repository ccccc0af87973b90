package dosdriver

import (
	"math"

	"github.com/emucore/dosmouse/machine"
	"github.com/emucore/dosmouse/mouse"
)

func (d *Driver) limitCoordinates() {
	limit := func(pos *float32, minPos, maxPos int16) {
		if *pos < float32(minPos) {
			*pos = float32(minPos)
		}
		if *pos > float32(maxPos) {
			*pos = float32(maxPos)
		}
	}
	limit(&d.hw.PosX, d.state.MinPosX, d.state.MaxPosX)
	limit(&d.hw.PosY, d.state.MinPosY, d.state.MaxPosY)
}

// updateMickeysOnMove converts pixel movement to mickeys, carrying the
// fractional remainder across calls and committing only whole mickeys to
// the 16-bit counters. The counters wrap modulo 65536 like the hardware
// counter they emulate; they never saturate.
func (d *Driver) updateMickeysOnMove(xRel, yRel float32) {
	update := func(counter *int16, delta *float32, rel float32) {
		*delta += rel

		moved := int16(math.Round(float64(*delta)))
		if moved == 0 {
			return
		}

		*delta -= float32(moved)
		big := int32(*counter) + int32(moved)

		if big > math.MaxInt16 {
			big -= math.MaxUint16 + 1
		} else if big < math.MinInt16 {
			big += math.MaxUint16 + 1
		}
		*counter = int16(big)
	}

	xMov := xRel * d.state.MickeysPerPixelX
	yMov := yRel * d.state.MickeysPerPixelY

	update(&d.state.MickeyCounterX, &d.state.MickeyDeltaX, xMov)
	update(&d.state.MickeyCounterY, &d.state.MickeyDeltaY, yMov)
	d.speed.Update(float32(math.Sqrt(float64(xMov*xMov + yMov*yMov))))
}

func (d *Driver) moveCursorCaptured(xRel, yRel float32) {
	d.updateMickeysOnMove(xRel, yRel)

	d.hw.PosX += xRel
	d.hw.PosY += yRel
}

func (d *Driver) moveCursorSeamless(xRel, yRel float32, xAbs, yAbs uint16) {
	d.updateMickeysOnMove(xRel, yRel)

	// Fraction of the host display area, 0.0 .. 1.0.
	calculate := func(absolute, res, clip uint16) float32 {
		return (float32(absolute) - float32(clip)) / float32(res-1)
	}
	x := calculate(xAbs, d.hostResX, d.hostClipX)
	y := calculate(yAbs, d.hostResY, d.hostClipY)

	mode := d.video.CurrentMode()
	switch {
	case mode.Type == machine.ModeText:
		// Scale by character cell geometry.
		cols := d.mem.ReadWord(machine.BDA(machine.BIOSNumCols))
		rows := float32(25)
		if d.video.Adapter().IsEGAVGA() {
			rows = float32(d.mem.ReadByte(machine.BDA(machine.BIOSNumRows))) + 1
		}
		d.hw.PosX = x * 8 * float32(cols)
		d.hw.PosY = y * 8 * rows
	case d.state.MaxPosX < 2048 || d.state.MaxPosY < 2048 || d.state.MaxPosX != d.state.MaxPosY:
		// Low or non-square addressable ranges lose too much precision
		// under proportional mapping.
		if d.state.MaxPosX > 0 && d.state.MaxPosY > 0 {
			d.hw.PosX = x * float32(d.state.MaxPosX)
			d.hw.PosY = y * float32(d.state.MaxPosY)
		} else {
			d.hw.PosX += xRel
			d.hw.PosY += yRel
		}
	default:
		// Fake relative movement through absolute coordinates.
		d.hw.PosX += xRel
		d.hw.PosY += yRel
	}
}

// moveCursor folds the pending movement into the position and mickey
// counters and decides whether anything guest-observable changed.
func (d *Driver) moveCursor() mouse.EventMask {
	oldPosX := d.posX16()
	oldPosY := d.posY16()
	oldMickeyX := d.state.MickeyCounterX
	oldMickeyY := d.state.MickeyCounterY

	if d.isCaptured() {
		// Raw host input goes through our own ballistics; otherwise the
		// host already applied its pointer acceleration.
		coeff := float32(2.0)
		if d.hw.RawInput {
			norm := d.speed.Speed() / float32(d.state.DoubleSpeedThreshold)
			coeff = mouse.BallisticsCoeff(norm) * 2.0
		}

		tmpX := d.pending.xRel * coeff * d.state.SensitivityCoeffX
		tmpY := d.pending.yRel * coeff * d.state.SensitivityCoeffY

		d.moveCursorCaptured(mouse.ClampRelativeMovement(tmpX),
			mouse.ClampRelativeMovement(tmpY))
	} else {
		d.moveCursorSeamless(d.pending.xRel, d.pending.yRel,
			d.pending.xAbs, d.pending.yAbs)
	}

	// Pending relative movement is now consumed.
	d.pending.xRel = 0
	d.pending.yRel = 0

	d.limitCoordinates()

	// Suppress events that change nothing a guest can observe. Programs
	// polling every frame must not see phantom motion from sub-pixel or
	// sub-mickey movement.
	absChanged := oldPosX != d.posX16() || oldPosY != d.posY16()
	relChanged := oldMickeyX != d.state.MickeyCounterX ||
		oldMickeyY != d.state.MickeyCounterY

	if absChanged || relChanged {
		return mouse.EventMoved
	}
	return 0
}

// UpdateMoved consumes pending movement on the interrupt-rate tick. Under
// the immediate policy the movement was already applied at notification
// time and the event mask is reported unconditionally.
func (d *Driver) UpdateMoved() mouse.EventMask {
	if d.immediate {
		return mouse.EventMoved
	}
	return d.moveCursor()
}

func (d *Driver) moveWheel() mouse.EventMask {
	// Wheel accumulation clamps, it does not wrap.
	d.hw.CounterW = mouse.ClampToInt8(int32(d.hw.CounterW) + int32(d.pending.wRel))

	// Pending wheel scroll is now consumed.
	d.pending.wRel = 0

	d.state.LastWheelX = d.posX16()
	d.state.LastWheelY = d.posY16()

	if d.hw.CounterW != 0 {
		return mouse.EventWheelMoved
	}
	return 0
}

// UpdateWheel consumes pending wheel movement on the interrupt-rate tick.
func (d *Driver) UpdateWheel() mouse.EventMask {
	if d.immediate {
		return mouse.EventWheelMoved
	}
	return d.moveWheel()
}
