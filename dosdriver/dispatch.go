package dosdriver

import (
	"encoding/binary"
	"sort"

	"github.com/emucore/dosmouse/machine"
)

// int33Handler binds one INT 33h function selector to its implementation.
// Entries with a nil fn are documented but not emulated; they leave the
// registers in the defined "unsupported" state and log the feature name.
type int33Handler struct {
	name string
	fn   func(d *Driver, r *machine.Regs)
}

var int33Table = map[uint16]int33Handler{
	0x00: {"reset driver and read status", (*Driver).fnResetDriver},
	0x01: {"show mouse cursor", (*Driver).fnShowCursor},
	0x02: {"hide mouse cursor", (*Driver).fnHideCursor},
	0x03: {"get position and button status", (*Driver).fnGetPosition},
	0x04: {"position mouse cursor", (*Driver).fnSetPosition},
	0x05: {"get button press / wheel data", (*Driver).fnGetButtonPress},
	0x06: {"get button release / wheel data", (*Driver).fnGetButtonRelease},
	0x07: {"define horizontal cursor range", (*Driver).fnSetRangeX},
	0x08: {"define vertical cursor range", (*Driver).fnSetRangeY},
	0x09: {"define graphics cursor", (*Driver).fnSetGraphicsCursor},
	0x0a: {"define text cursor", (*Driver).fnSetTextCursor},
	0x0b: {"read motion data", (*Driver).fnReadMotion},
	0x0c: {"define user callback parameters", (*Driver).fnSetCallback},
	0x0d: {"light pen emulation on", nil},
	0x0e: {"light pen emulation off", nil},
	0x0f: {"define mickey/pixel rate", (*Driver).fnSetMickeyPixelRate},
	0x10: {"define screen region for updating", (*Driver).fnSetUpdateRegion},
	0x11: {"get mouse capabilities", (*Driver).fnWheelAPI},
	0x12: {"set large graphics cursor block", nil},
	0x13: {"set double-speed threshold", (*Driver).fnSetDoubleSpeedThreshold},
	0x14: {"exchange event handler", (*Driver).fnExchangeCallback},
	0x15: {"get driver storage space requirements", (*Driver).fnStateSize},
	0x16: {"save driver state", (*Driver).fnSaveState},
	0x17: {"load driver state", (*Driver).fnLoadState},
	0x18: {"set alternate mouse user handler", nil},
	0x19: {"set alternate mouse user handler", nil},
	0x1a: {"set mouse sensitivity", (*Driver).fnSetSensitivity},
	0x1b: {"get mouse sensitivity", (*Driver).fnGetSensitivity},
	0x1c: {"set interrupt rate", (*Driver).fnSetInterruptRate},
	0x1d: {"set display page number", (*Driver).fnSetPage},
	0x1e: {"get display page number", (*Driver).fnGetPage},
	0x1f: {"disable mouse driver", (*Driver).fnDisableDriver},
	0x20: {"enable mouse driver", (*Driver).fnEnableDriver},
	0x21: {"software reset", (*Driver).fnSoftwareReset},
	0x22: {"set language for messages", (*Driver).fnSetLanguage},
	0x23: {"get language for messages", (*Driver).fnGetLanguage},
	0x24: {"get version, mouse type and IRQ", (*Driver).fnGetVersion},
	0x25: {"get general driver information", nil},
	0x26: {"get maximum virtual coordinates", (*Driver).fnGetMaxCoordinates},
	0x27: {"get masks and mickey counts", (*Driver).fnGetMasksAndMotion},
	0x28: {"set video mode", nil},
	0x29: {"enumerate video modes", nil},
	0x2a: {"get cursor hot spot", (*Driver).fnGetHotSpot},
	0x2b: {"load acceleration profiles", nil},
	0x2c: {"get acceleration profiles", nil},
	0x2d: {"select acceleration profile", nil},
	0x2e: {"set acceleration profile names", nil},
	0x2f: {"mouse hardware reset", nil},
	0x30: {"get/set BallPoint information", nil},
	0x31: {"get current min/max virtual coordinates", (*Driver).fnGetRange},
	0x32: {"get active advanced functions", nil},
	0x33: {"get/switch acceleration profile", nil},
	0x34: {"get initialization file", nil},
	0x35: {"LCD screen large pointer support", nil},
	0x4d: {"return pointer to copyright string", nil},
	0x6d: {"get version string", nil},
	0x70: {"Mouse Systems installation check", nil},
	0x72: {"Mouse Systems extension", nil},
	0x73: {"Mouse Systems button assignments", nil},
}

// FunctionInfo describes one entry of the INT 33h dispatch table.
type FunctionInfo struct {
	Number      uint16
	Name        string
	Implemented bool
}

// Functions returns the INT 33h dispatch table sorted by function number.
func Functions() []FunctionInfo {
	out := make([]FunctionInfo, 0, len(int33Table))
	for fn, h := range int33Table {
		out = append(out, FunctionInfo{Number: fn, Name: h.name, Implemented: h.fn != nil})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Int33 services one INT 33h call. Every function completes synchronously;
// results travel back through the register file only.
func (d *Driver) Int33(r *machine.Regs) {
	fn := r.AX
	if d.tracer != nil {
		d.tracer.Trace(true, fn, r)
	}

	switch h, ok := int33Table[fn]; {
	case ok && h.fn != nil:
		h.fn(d, r)
	case ok:
		d.logger.Error("mouse function not implemented", "feature", h.name,
			"function", fn)
	case fn == 0x53c1:
		// Logitech CyberMan. Ignored by regular mouse drivers.
		d.logger.Debug("CyberMan mouse function ignored", "function", fn)
	default:
		d.logger.Error("unknown mouse function", "function", fn)
	}

	if d.tracer != nil {
		d.tracer.Trace(false, fn, r)
	}
}

func (d *Driver) fnResetDriver(r *machine.Regs) {
	d.resetHardware()
	d.fnSoftwareReset(r)
}

func (d *Driver) fnSoftwareReset(r *machine.Regs) {
	r.AX = 0xffff // driver installed
	r.BX = 3      // three buttons
	d.reset()
}

func (d *Driver) fnShowCursor(r *machine.Regs) {
	if d.state.Hidden != 0 {
		d.state.Hidden--
	}
	d.state.UpdateRegionY[1] = -1 // offscreen
	d.DrawCursor()
}

func (d *Driver) fnHideCursor(r *machine.Regs) {
	if d.video.CurrentMode().Type != machine.ModeText {
		d.restoreCursorBackground()
	} else {
		d.restoreCursorBackgroundText()
	}
	d.state.Hidden++
}

func (d *Driver) fnGetPosition(r *machine.Regs) {
	r.SetBL(uint8(d.hw.Buttons))
	r.SetBH(d.readResetWheel8()) // CuteMouse clears the wheel counter too
	r.CX = d.posX16()
	r.DX = d.posY16()
}

func (d *Driver) fnSetPosition(r *machine.Regs) {
	// Skip a coordinate that already rounds to the requested value;
	// rounding would otherwise move the cursor (arena, Wolf).
	if int32(int16(r.CX)) != int32(d.posX16()) {
		d.hw.PosX = float32(r.CX)
	}
	if int32(int16(r.DX)) != int32(d.posY16()) {
		d.hw.PosY = float32(r.DX)
	}
	d.limitCoordinates()
	d.DrawCursor()
}

func (d *Driver) fnGetButtonPress(r *machine.Regs) {
	idx := r.BX
	switch {
	case idx == 0xffff && d.state.WheelAPI:
		// Magic index selecting the wheel instead of a button.
		r.BX = d.readResetWheel16()
		r.CX = d.state.LastWheelX
		r.DX = d.state.LastWheelY
	case idx < numButtons:
		r.AX = uint16(d.hw.Buttons)
		r.BX = d.state.TimesPressed[idx]
		r.CX = d.state.LastPressedX[idx]
		r.DX = d.state.LastPressedY[idx]
		// Reading consumes the counter.
		d.state.TimesPressed[idx] = 0
	default:
		r.AX = uint16(d.hw.Buttons)
		r.BX = 0
		r.CX = 0
		r.DX = 0
	}
}

func (d *Driver) fnGetButtonRelease(r *machine.Regs) {
	idx := r.BX
	switch {
	case idx == 0xffff && d.state.WheelAPI:
		r.BX = d.readResetWheel16()
		r.CX = d.state.LastWheelX
		r.DX = d.state.LastWheelY
	case idx < numButtons:
		r.AX = uint16(d.hw.Buttons)
		r.BX = d.state.TimesReleased[idx]
		r.CX = d.state.LastReleasedX[idx]
		r.DX = d.state.LastReleasedY[idx]
		d.state.TimesReleased[idx] = 0
	default:
		r.AX = uint16(d.hw.Buttons)
		r.BX = 0
		r.CX = 0
		r.DX = 0
	}
}

func (d *Driver) fnSetRangeX(r *machine.Regs) {
	// Bounds arrive in either order (Lemmings vs Iron Seed).
	lo, hi := int16(r.CX), int16(r.DX)
	if lo > hi {
		lo, hi = hi, lo
	}
	d.state.MinPosX = lo
	d.state.MaxPosX = hi
	// Re-clamp immediately. Battle Chess.
	d.limitCoordinates()
	d.logger.Debug("horizontal range defined", "min", lo, "max", hi)
}

func (d *Driver) fnSetRangeY(r *machine.Regs) {
	lo, hi := int16(r.CX), int16(r.DX)
	if lo > hi {
		lo, hi = hi, lo
	}
	d.state.MinPosY = lo
	d.state.MaxPosY = hi
	d.limitCoordinates()
	d.logger.Debug("vertical range defined", "min", lo, "max", hi)
}

func (d *Driver) fnSetGraphicsCursor(r *machine.Regs) {
	clampHot := func(reg uint16, size int16) int16 {
		v := int16(reg)
		if v < -size {
			return -size
		}
		if v > size {
			return size
		}
		return v
	}

	src := machine.FarPtr{Seg: r.ES, Off: r.DX}.Linear()
	var raw [cursorSizeY * 4]byte
	d.mem.BlockRead(src, raw[:])
	for i := 0; i < cursorSizeY; i++ {
		d.state.UserDefScreenMask[i] = binary.LittleEndian.Uint16(raw[i*2:])
		d.state.UserDefCursorMask[i] = binary.LittleEndian.Uint16(raw[cursorSizeY*2+i*2:])
	}
	d.state.UserScreenMask = true
	d.state.UserCursorMask = true
	d.state.HotX = clampHot(r.BX, cursorSizeX)
	d.state.HotY = clampHot(r.CX, cursorSizeY)
	d.state.CursorType = CursorText
	d.DrawCursor()
}

func (d *Driver) fnSetTextCursor(r *machine.Regs) {
	if r.BX != 0 {
		d.state.CursorType = CursorHardware
	} else {
		d.state.CursorType = CursorSoftware
	}
	d.state.TextAndMask = r.CX
	d.state.TextXorMask = r.DX
	if r.BX != 0 {
		d.video.SetCursorShape(r.CL(), r.DL())
		d.logger.Debug("hardware text cursor selected")
	}
	d.DrawCursor()
}

func (d *Driver) fnReadMotion(r *machine.Regs) {
	r.CX = uint16(d.state.MickeyCounterX)
	r.DX = uint16(d.state.MickeyCounterY)
	// Reading consumes the counters.
	d.state.MickeyCounterX = 0
	d.state.MickeyCounterY = 0
}

func (d *Driver) fnSetCallback(r *machine.Regs) {
	d.state.CallbackMask = r.CX
	d.state.CallbackSeg = r.ES
	d.state.CallbackOff = r.DX
	d.updateDriverActive()
}

func (d *Driver) fnSetMickeyPixelRate(r *machine.Regs) {
	d.setMickeyPixelRate(int16(r.CX), int16(r.DX))
}

func (d *Driver) fnSetUpdateRegion(r *machine.Regs) {
	d.state.UpdateRegionX[0] = int16(r.CX)
	d.state.UpdateRegionY[0] = int16(r.DX)
	d.state.UpdateRegionX[1] = int16(r.SI)
	d.state.UpdateRegionY[1] = int16(r.DI)
	d.DrawCursor()
}

func (d *Driver) fnWheelAPI(r *machine.Regs) {
	// CuteMouse wheel extension. The call itself switches the extension
	// on; a previous implementation reported Genius Mouse button counts
	// here instead, but the wheel is the more useful answer.
	r.AX = 0x574d // 'WM', detection signature
	r.BX = 0      // reserved capability flags
	r.CX = 1      // wheel supported
	d.state.WheelAPI = true
	d.hw.CounterW = 0
}

func (d *Driver) fnSetDoubleSpeedThreshold(r *machine.Regs) {
	d.setDoubleSpeedThreshold(r.BX)
}

func (d *Driver) fnExchangeCallback(r *machine.Regs) {
	oldSeg := d.state.CallbackSeg
	oldOff := d.state.CallbackOff
	oldMask := d.state.CallbackMask

	d.state.CallbackMask = r.CX
	d.state.CallbackSeg = r.ES
	d.state.CallbackOff = r.DX
	d.updateDriverActive()

	// A true exchange: the previous registration travels back.
	r.CX = oldMask
	r.DX = oldOff
	r.ES = oldSeg
}

func (d *Driver) fnStateSize(r *machine.Regs) {
	r.BX = uint16(StateSize)
}

func (d *Driver) fnSaveState(r *machine.Regs) {
	d.logger.Warn("saving driver state")
	blob, err := d.state.MarshalBinary()
	if err != nil {
		d.logger.Error("driver state marshal failed", "error", err)
		return
	}
	d.mem.BlockWrite(machine.FarPtr{Seg: r.ES, Off: r.DX}.Linear(), blob)
}

func (d *Driver) fnLoadState(r *machine.Regs) {
	d.logger.Warn("loading driver state")
	blob := make([]byte, StateSize)
	d.mem.BlockRead(machine.FarPtr{Seg: r.ES, Off: r.DX}.Linear(), blob)
	if err := d.state.UnmarshalBinary(blob); err != nil {
		d.logger.Error("driver state load failed", "error", err)
		return
	}
	d.pending.reset()
	d.updateDriverActive()
	// Guests can load arbitrary bytes; re-derive the sensitivity
	// coefficients from the raw values, clamping as usual.
	d.setSensitivity(uint16(d.state.SensitivityX),
		uint16(d.state.SensitivityY),
		uint16(d.state.Unknown01))
}

func (d *Driver) fnSetSensitivity(r *machine.Regs) {
	// Ralf Brown claims this duplicates 0x0f and 0x13; real drivers
	// (Mouse Systems 8.00, IBM 8.20) disagree.
	d.setSensitivity(r.BX, r.CX, r.DX)
}

func (d *Driver) fnGetSensitivity(r *machine.Regs) {
	r.BX = uint16(d.state.SensitivityX)
	r.CX = uint16(d.state.SensitivityY)
	r.DX = uint16(d.state.Unknown01)
}

func (d *Driver) fnSetInterruptRate(r *machine.Regs) {
	d.setInterruptRate(r.BX)
}

func (d *Driver) fnSetPage(r *machine.Regs) {
	d.state.Page = r.BL()
}

func (d *Driver) fnGetPage(r *machine.Regs) {
	r.BX = uint16(d.state.Page)
}

func (d *Driver) fnDisableDriver(r *machine.Regs) {
	// ES:BX should point at the old interrupt handler; nothing sensible
	// to report here.
	r.BX = 0
	r.ES = 0
	d.state.Enabled = false
	d.state.OldHidden = d.state.Hidden
	d.state.Hidden = 1
	// Success code: Ralf Brown says AX=0x20, CuteMouse says 0x1f, both
	// agree 0xffff is failure. AX already holds 0x1f.
}

func (d *Driver) fnEnableDriver(r *machine.Regs) {
	d.state.Enabled = true
	d.state.Hidden = d.state.OldHidden
}

func (d *Driver) fnSetLanguage(r *machine.Regs) {
	// 0=English, 1=French, 2=Dutch, 3=German, ... stored, never used.
	d.state.Language = r.BX
}

func (d *Driver) fnGetLanguage(r *machine.Regs) {
	r.BX = d.state.Language
}

func (d *Driver) fnGetVersion(r *machine.Regs) {
	r.BX = 0x805  // reports version 8.05
	r.SetCH(0x04) // PS/2 type
	r.SetCL(0)    // PS/2 mouse, otherwise the IRQ number
}

func (d *Driver) fnGetMaxCoordinates(r *machine.Regs) {
	if d.state.Enabled {
		r.BX = 0x0000
	} else {
		r.BX = 0xffff
	}
	r.CX = uint16(d.state.MaxPosX)
	r.DX = uint16(d.state.MaxPosY)
}

func (d *Driver) fnGetMasksAndMotion(r *machine.Regs) {
	r.AX = d.state.TextAndMask
	r.BX = d.state.TextXorMask
	d.fnReadMotion(r)
}

func (d *Driver) fnGetHotSpot(r *machine.Regs) {
	// Microsoft reports visibility as a negative byte counter.
	r.SetAL(uint8(-int8(d.state.Hidden)))
	r.BX = uint16(d.state.HotX)
	r.CX = uint16(d.state.HotY)
	r.DX = 0x04 // PS/2 mouse type
}

func (d *Driver) fnGetRange(r *machine.Regs) {
	r.AX = uint16(d.state.MinPosX)
	r.BX = uint16(d.state.MinPosY)
	r.CX = uint16(d.state.MaxPosX)
	r.DX = uint16(d.state.MaxPosY)
}

// Int33Backdoor is the legacy stack-indirect entry point. The caller's
// stack holds DS-relative pointers to the register values; they are
// marshalled into the register file, dispatched through the regular
// handler, and written back, including segment results for functions 0x14
// and 0x1f.
func (d *Driver) Int33Backdoor(r *machine.Regs) {
	stackWord := func(off uint16) uint16 {
		return d.mem.ReadWord(machine.FarPtr{Seg: r.SS, Off: r.SP + off}.Linear())
	}
	dsWord := func(off uint16) uint16 {
		return d.mem.ReadWord(machine.FarPtr{Seg: r.DS, Off: off}.Linear())
	}
	dsWriteWord := func(off, v uint16) {
		d.mem.WriteWord(machine.FarPtr{Seg: r.DS, Off: off}.Linear(), v)
	}

	axPt := stackWord(0x0a)
	bxPt := stackWord(0x08)
	cxPt := stackWord(0x06)
	dxPt := stackWord(0x04)

	// The registers themselves are overwritten.
	fn := dsWord(axPt)
	r.AX = fn
	r.BX = dsWord(bxPt)
	r.CX = dsWord(cxPt)
	r.DX = dsWord(dxPt)

	// Functions taking buffers or far pointers need ES fixed up.
	switch fn {
	case 0x09, 0x16, 0x17:
		r.ES = r.DS
	case 0x0c, 0x14:
		if r.BX != 0 {
			r.ES = r.BX
		} else {
			r.ES = r.DS
		}
	case 0x10:
		// The update region rectangle sits behind the DX pointer.
		r.CX = dsWord(dxPt)
		r.DX = dsWord(dxPt + 2)
		r.SI = dsWord(dxPt + 4)
		r.DI = dsWord(dxPt + 6)
	}

	d.Int33(r)

	dsWriteWord(axPt, r.AX)
	dsWriteWord(bxPt, r.BX)
	dsWriteWord(cxPt, r.CX)
	dsWriteWord(dxPt, r.DX)
	switch fn {
	case 0x1f:
		dsWriteWord(bxPt, r.ES)
	case 0x14:
		dsWriteWord(cxPt, r.ES)
	}
}
