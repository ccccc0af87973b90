package dosdriver

import (
	"log/slog"
	"math"

	"github.com/emucore/dosmouse/machine"
	"github.com/emucore/dosmouse/mouse"
)

// RateListener receives the effective sampling rate whenever the rate
// policy recomputes it. The interface layer uses it to pace event delivery.
type RateListener func(hz uint16)

// CallTracer observes the register file around every dispatched INT 33h
// call. Wired by the host for diagnostic dumps.
type CallTracer interface {
	Trace(entry bool, fn uint16, r *machine.Regs)
}

// Options wires a Driver to the owning machine.
type Options struct {
	Memory machine.Memory
	Ports  machine.PortIO
	Video  machine.Video
	Stack  machine.Stack

	// PIC may be nil when the machine has no interrupt controller model.
	PIC machine.IntController

	// CallbackReturn is the far address of the driver's completion
	// trampoline. The guest callback returns there; the CPU loop must
	// then call FinishCallback.
	CallbackReturn machine.FarPtr

	// Immediate applies pending movement at notification time instead of
	// waiting for the interrupt-rate tick.
	Immediate bool

	RateListener RateListener
	Logger       *slog.Logger
	Tracer       CallTracer
}

// Driver is one instance of the emulated DOS mouse driver. All methods must
// be called from the machine's execution thread.
type Driver struct {
	state   State
	hw      Hardware
	pending pendingEvent

	mem    machine.Memory
	ports  machine.PortIO
	video  machine.Video
	stack  machine.Stack
	pic    machine.IntController
	logger *slog.Logger
	tracer CallTracer

	immediate    bool
	rateListener RateListener

	callbackReturn  machine.FarPtr
	callbackRunning bool

	speed *mouse.SpeedEstimator

	// Host display geometry for seamless absolute mapping.
	hostResX  uint16
	hostResY  uint16
	hostClipX uint16
	hostClipY uint16

	// Saved VGA state around cursor pixel access. Not part of the
	// guest-persistable aggregate.
	vgaSequAddress uint8
	vgaSequData    uint8
	vgaGRDC        [9]uint8
}

// New installs a driver instance on the given machine. The initial state
// matches a freshly loaded resident driver: cursor hidden, sensitivity at
// defaults, a hardware reset followed by a software reset.
func New(o Options) *Driver {
	d := &Driver{
		mem:            o.Memory,
		ports:          o.Ports,
		video:          o.Video,
		stack:          o.Stack,
		pic:            o.PIC,
		logger:         o.Logger,
		tracer:         o.Tracer,
		immediate:      o.Immediate,
		rateListener:   o.RateListener,
		callbackReturn: o.CallbackReturn,
		speed:          mouse.NewSpeedEstimator(1.0),
		hostResX:       2,
		hostResY:       2,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	// Wasteland probes these before ever calling reset.
	d.state.CallbackSeg = 0x6362
	d.state.Hidden = 1
	d.state.Mode = 0xff

	d.setSensitivity(50, 50, 50)
	d.resetHardware()
	d.reset()
	return d
}

// State returns a copy of the guest-visible state, for inspection.
func (d *Driver) State() State { return d.state }

// Hardware returns a copy of the host-facing state, for inspection.
func (d *Driver) Hardware() Hardware { return d.hw }

func (d *Driver) isCaptured() bool {
	// A mapped physical mouse delivers no absolute host position, so it
	// is handled like a captured pointer.
	return d.hw.Captured || d.hw.Mapped
}

// posX16 returns the guest-visible horizontal position: rounded and
// truncated to the reporting granularity of the emulated hardware.
func (d *Driver) posX16() uint16 {
	return uint16(int32(math.Round(float64(d.hw.PosX)))) & d.state.GranularityX
}

func (d *Driver) posY16() uint16 {
	return uint16(int32(math.Round(float64(d.hw.PosY)))) & d.state.GranularityY
}

func (d *Driver) setMickeyPixelRate(ratioX, ratioY int16) {
	// Ratios are mickeys per 8 pixels; non-positive values are ignored
	// per the interface contract.
	if ratioX > 0 && ratioY > 0 {
		const pixels = 8.0
		d.state.MickeysPerPixelX = float32(ratioX) / pixels
		d.state.MickeysPerPixelY = float32(ratioY) / pixels
	}
}

func (d *Driver) setDoubleSpeedThreshold(threshold uint16) {
	if threshold != 0 {
		d.state.DoubleSpeedThreshold = threshold
	} else {
		d.state.DoubleSpeedThreshold = 64
	}
}

func (d *Driver) setSensitivity(x, y, unknown uint16) {
	clamp := func(v uint16) uint8 {
		if v > 100 {
			return 100
		}
		return uint8(v)
	}
	d.state.SensitivityX = clamp(x)
	d.state.SensitivityY = clamp(y)
	d.state.Unknown01 = clamp(unknown)

	// 0 stops movement entirely, 50 is neutral, 100 roughly doubles it.
	// Linear is close enough to observed driver behavior.
	d.state.SensitivityCoeffX = float32(d.state.SensitivityX) / 50.0
	d.state.SensitivityCoeffY = float32(d.state.SensitivityY) / 50.0
}

func (d *Driver) updateDriverActive() {
	active := d.state.CallbackMask != 0
	d.logger.Debug("driver activity changed", "active", active)
}

// resetHardware performs the hardware-level part of function 0x00: the
// wheel extension and counter are cleared here and only here (CuteMouse
// relies on a software reset keeping the extension enabled), the mouse IRQ
// line is dropped and the negotiated sampling rate forgotten.
func (d *Driver) resetHardware() {
	d.state.WheelAPI = false
	d.hw.CounterW = 0

	if d.pic != nil {
		d.pic.LowerIRQ(12)
	}

	d.hw.RateIsSet = false
	d.notifyRate()
}

// reset is the software reset shared by functions 0x00 and 0x21.
func (d *Driver) reset() {
	// Not strictly driver state, but stale values here would leak into
	// the next session.
	d.hw.CounterW = 0
	d.pending.reset()

	d.BeforeNewVideoMode()
	d.AfterNewVideoMode(false)

	d.setMickeyPixelRate(8, 16)
	d.setDoubleSpeedThreshold(0)

	d.state.Enabled = true

	d.hw.PosX = float32((d.state.MaxPosX + 1) / 2)
	d.hw.PosY = float32((d.state.MaxPosY + 1) / 2)

	d.state.MickeyCounterX = 0
	d.state.MickeyCounterY = 0
	d.state.MickeyDeltaX = 0
	d.state.MickeyDeltaY = 0

	d.state.LastWheelX = 0
	d.state.LastWheelY = 0

	for i := 0; i < numButtons; i++ {
		d.state.TimesPressed[i] = 0
		d.state.TimesReleased[i] = 0
		d.state.LastPressedX[i] = 0
		d.state.LastPressedY[i] = 0
		d.state.LastReleasedX[i] = 0
		d.state.LastReleasedY[i] = 0
	}

	d.state.CallbackMask = 0
	d.callbackRunning = false

	d.updateDriverActive()
}

// readResetWheel8 returns the wheel counter for 8-bit reads and clears it;
// reading always consumes.
func (d *Driver) readResetWheel8() uint8 {
	if !d.state.WheelAPI {
		return 0
	}
	w := d.hw.CounterW
	d.hw.CounterW = 0
	return uint8(w)
}

func (d *Driver) readResetWheel16() uint16 {
	if !d.state.WheelAPI {
		return 0
	}
	w := int16(d.hw.CounterW)
	d.hw.CounterW = 0
	return uint16(w)
}
