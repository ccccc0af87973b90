package dosdriver

import (
	"github.com/emucore/dosmouse/machine"
	"github.com/emucore/dosmouse/mouse"
)

// User callback invocation. The driver never calls guest code directly: it
// builds a synthetic far-call frame on the guest stack and lets the CPU
// loop run it. The frame makes the guest routine return into the driver's
// completion trampoline; the loop then acknowledges through
// FinishCallback. While a callback is running further events are still
// coalesced, never nested.

// HasCallback reports whether the guest asked to be notified about any of
// the events in mask.
func (d *Driver) HasCallback(mask mouse.EventMask) bool {
	return d.state.CallbackMask&uint16(mask) != 0
}

// CallbackRunning reports whether a guest callback is currently executing.
func (d *Driver) CallbackRunning() bool {
	return d.callbackRunning
}

// StartCallback populates the guest registers for the callback convention
// and pushes the synthetic frame. The caller must only invoke it when
// HasCallback is true and no callback is running.
func (d *Driver) StartCallback(mask mouse.EventMask, buttons mouse.Buttons, r *machine.Regs) {
	d.callbackRunning = true

	moved := mask&mouse.EventMoved != 0
	wheelMoved := mask&mouse.EventWheelMoved != 0

	// AH=1 on seamless motion is the vbados/javispedro extension for
	// Windows mouse integration; DOSBox-X and dosemu2 carry it too.
	if !d.isCaptured() && moved {
		r.SetAH(1)
	} else {
		r.SetAH(0)
	}

	r.SetAL(uint8(mask))
	r.SetBL(uint8(buttons))
	if wheelMoved {
		r.SetBH(d.readResetWheel8())
	} else {
		r.SetBH(0)
	}
	r.CX = d.posX16()
	r.DX = d.posY16()
	r.SI = uint16(d.state.MickeyCounterX)
	r.DI = uint16(d.state.MickeyCounterY)

	// Far return into our trampoline, then the far call target; the CPU
	// pops the target first and runs the guest routine.
	d.stack.Push16(d.callbackReturn.Seg)
	d.stack.Push16(d.callbackReturn.Off)
	d.stack.Push16(d.state.CallbackSeg)
	d.stack.Push16(d.state.CallbackOff)
}

// FinishCallback is called by the CPU loop when the guest routine returned
// into the completion trampoline.
func (d *Driver) FinishCallback() {
	d.callbackRunning = false
}
