package dosdriver

import "github.com/emucore/dosmouse/mouse"

// Host input bridge. These are the only entry points through which host
// events and host capture state reach the driver. They stage deltas in the
// pending accumulator; driver state changes only through the update calls
// (or immediately, when the immediate policy is configured).

// NotifyMoved coalesces a host movement event and reports whether a
// guest-visible mouse-moved event should be raised.
func (d *Driver) NotifyMoved(xRel, yRel float32, xAbs, yAbs uint16) bool {
	eventNeeded := false
	if d.isCaptured() {
		// Captured mode consumes relative movement through stateful
		// acceleration math; whether an event could be omitted is not
		// predictable here, so never dedupe.
		eventNeeded = true
	} else {
		// Seamless mode tracks the absolute position; identical samples
		// can wait. Relative movement alone is unreliable anyway.
		if d.pending.xAbs != xAbs || d.pending.yAbs != yAbs {
			eventNeeded = true
		}
	}

	// Always accumulate, even without an event: fine motion must not be
	// lost. Clamped, never dropped.
	d.pending.xRel = mouse.ClampRelativeMovement(d.pending.xRel + xRel)
	d.pending.yRel = mouse.ClampRelativeMovement(d.pending.yRel + yRel)
	d.pending.xAbs = xAbs
	d.pending.yAbs = yAbs

	// Do not try to skip the event flow when no callback is registered;
	// Master of Orion II reconfigures its callback constantly and skips
	// events if notifications get too clever.

	if !eventNeeded {
		return false
	}

	if d.immediate {
		return d.moveCursor() != 0
	}
	return true
}

// NotifyWheel coalesces host wheel movement. Wheel motion is invisible
// until the guest has enabled the wheel extension (function 0x11).
func (d *Driver) NotifyWheel(wRel int16) bool {
	if !d.state.WheelAPI {
		return false
	}

	// Guest code can read the counter in 16-bit form, but scrolling
	// hundreds of lines per event would be insane; keep it in 8 bits.
	d.pending.wRel = int16(mouse.ClampToInt8(int32(d.pending.wRel) + int32(wRel)))

	if d.pending.wRel == 0 {
		return false
	}

	if d.immediate {
		return d.moveWheel() != 0
	}
	return true
}

// UpdateButtons records press/release edges against the last-known button
// mask and returns the DOS event bits that fired.
func (d *Driver) UpdateButtons(newButtons mouse.Buttons) mouse.EventMask {
	if d.hw.Buttons == newButtons {
		return 0
	}

	markPressed := func(idx int) {
		d.state.LastPressedX[idx] = d.posX16()
		d.state.LastPressedY[idx] = d.posY16()
		d.state.TimesPressed[idx]++
	}
	markReleased := func(idx int) {
		d.state.LastReleasedX[idx] = d.posX16()
		d.state.LastReleasedY[idx] = d.posY16()
		d.state.TimesReleased[idx]++
	}

	var mask mouse.EventMask
	old := d.hw.Buttons

	if newButtons.Left() && !old.Left() {
		markPressed(0)
		mask |= mouse.EventPressedLeft
	} else if !newButtons.Left() && old.Left() {
		markReleased(0)
		mask |= mouse.EventReleasedLeft
	}

	if newButtons.Right() && !old.Right() {
		markPressed(1)
		mask |= mouse.EventPressedRight
	} else if !newButtons.Right() && old.Right() {
		markReleased(1)
		mask |= mouse.EventReleasedRight
	}

	if newButtons.Middle() && !old.Middle() {
		markPressed(2)
		mask |= mouse.EventPressedMiddle
	} else if !newButtons.Middle() && old.Middle() {
		markReleased(2)
		mask |= mouse.EventReleasedMiddle
	}

	d.hw.Buttons = newButtons
	return mask
}

// NotifyMapped records whether a physical mouse is mapped directly to this
// interface.
func (d *Driver) NotifyMapped(enabled bool) {
	d.hw.Mapped = enabled
}

// NotifyCaptured records whether the host pointer is grabbed by the
// emulated session.
func (d *Driver) NotifyCaptured(enabled bool) {
	d.hw.Captured = enabled
}

// NotifyRawInput records whether host pointer acceleration is bypassed; the
// driver applies its own ballistics only to raw input.
func (d *Driver) NotifyRawInput(enabled bool) {
	d.hw.RawInput = enabled
}

// NotifyDisplayArea records the host display resolution and clipping origin
// used to map absolute coordinates in seamless mode.
func (d *Driver) NotifyDisplayArea(resX, resY, clipX, clipY uint16) {
	if resX < 2 {
		resX = 2
	}
	if resY < 2 {
		resY = 2
	}
	d.hostResX = resX
	d.hostResY = resY
	d.hostClipX = clipX
	d.hostClipY = clipY
}
