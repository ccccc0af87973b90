package dosdriver_test

import (
	"testing"

	"github.com/emucore/dosmouse/machine"
	"github.com/emucore/dosmouse/mouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCallbackBuildsFarCallFrame(t *testing.T) {
	m, d := newTestRig(t)
	d.NotifyCaptured(true)

	r := &machine.Regs{}
	r.CX = 0x00ff
	r.DX = 0x0042
	r.ES = 0x1234
	call(d, r, 0x0c)

	d.UpdateButtons(mouse.ButtonLeft)

	cr := &machine.Regs{}
	d.StartCallback(mouse.EventPressedLeft, mouse.ButtonLeft, cr)

	assert.True(t, d.CallbackRunning())
	assert.Equal(t, uint8(mouse.EventPressedLeft), cr.AL())
	assert.Equal(t, uint8(0), cr.AH())
	assert.Equal(t, uint8(1), cr.BL())
	assert.Equal(t, uint8(0), cr.BH())
	assert.Equal(t, uint16(320), cr.CX)
	assert.Equal(t, uint16(96), cr.DX)

	// The frame returns into the completion trampoline, then far-calls the
	// guest routine.
	require.Len(t, m.Stk.Words, 4)
	assert.Equal(t, callbackReturn.Seg, m.Stk.Words[0])
	assert.Equal(t, callbackReturn.Off, m.Stk.Words[1])
	assert.Equal(t, uint16(0x1234), m.Stk.Words[2])
	assert.Equal(t, uint16(0x0042), m.Stk.Words[3])

	d.FinishCallback()
	assert.False(t, d.CallbackRunning())
}

func TestStartCallbackSeamlessMotionExtension(t *testing.T) {
	_, d := newTestRig(t)

	r := &machine.Regs{}
	r.CX = 0x0001
	r.DX = 0x0010
	r.ES = 0x2000
	call(d, r, 0x0c)

	cr := &machine.Regs{}
	d.StartCallback(mouse.EventMoved, 0, cr)

	// AH=1 marks absolute (seamless) motion for integration drivers.
	assert.Equal(t, uint8(1), cr.AH())
	assert.Equal(t, uint8(mouse.EventMoved), cr.AL())
}

func TestStartCallbackDeliversWheelCounter(t *testing.T) {
	_, d := newTestRig(t)

	r := &machine.Regs{}
	call(d, r, 0x11)
	d.NotifyWheel(5)
	d.UpdateWheel()

	cr := &machine.Regs{}
	d.StartCallback(mouse.EventWheelMoved, 0, cr)
	assert.Equal(t, uint8(5), cr.BH())

	// Delivery consumed the counter.
	assert.Equal(t, int8(0), d.Hardware().CounterW)
}

func TestStartCallbackDeliversMickeys(t *testing.T) {
	_, d := newTestRig(t)
	d.NotifyCaptured(true)
	d.NotifyMoved(8, -4, 0, 0)
	d.UpdateMoved()

	cr := &machine.Regs{}
	d.StartCallback(mouse.EventMoved, 0, cr)
	assert.Equal(t, int16(16), int16(cr.SI))
	assert.Equal(t, int16(-16), int16(cr.DI))
}

func TestHasCallbackMatchesMask(t *testing.T) {
	_, d := newTestRig(t)

	r := &machine.Regs{}
	r.CX = uint16(mouse.EventPressedLeft | mouse.EventReleasedLeft)
	r.DX = 0x0100
	r.ES = 0x0200
	call(d, r, 0x0c)

	assert.True(t, d.HasCallback(mouse.EventPressedLeft))
	assert.False(t, d.HasCallback(mouse.EventMoved))
	assert.False(t, d.HasCallback(mouse.EventPressedRight))
}

func TestBackdoorMarshalsThroughGuestMemory(t *testing.T) {
	m, d := newTestRig(t)

	const (
		ds = 0x2000
		ss = 0x3000
		sp = 0x0100
	)

	// DS-relative variables holding the virtual registers.
	const (
		axVar = 0x0010
		bxVar = 0x0012
		cxVar = 0x0014
		dxVar = 0x0016
	)

	writeDS := func(off, v uint16) {
		m.Mem.WriteWord(machine.FarPtr{Seg: ds, Off: off}.Linear(), v)
	}
	readDS := func(off uint16) uint16 {
		return m.Mem.ReadWord(machine.FarPtr{Seg: ds, Off: off}.Linear())
	}

	// The stack carries pointers to the variables.
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x0a}.Linear(), axVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x08}.Linear(), bxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x06}.Linear(), cxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x04}.Linear(), dxVar)

	writeDS(axVar, 0x0003) // get position
	writeDS(bxVar, 0)
	writeDS(cxVar, 0)
	writeDS(dxVar, 0)

	r := &machine.Regs{DS: ds, SS: ss, SP: sp}
	d.Int33Backdoor(r)

	assert.Equal(t, uint16(320), readDS(cxVar))
	assert.Equal(t, uint16(96), readDS(dxVar))
}

func TestBackdoorUpdateRegionIndirection(t *testing.T) {
	m, d := newTestRig(t)

	const (
		ds = 0x2000
		ss = 0x3000
		sp = 0x0100
	)

	const (
		axVar   = 0x0010
		bxVar   = 0x0012
		cxVar   = 0x0014
		dxVar   = 0x0016
		rectVar = 0x0020
	)

	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x0a}.Linear(), axVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x08}.Linear(), bxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x06}.Linear(), cxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x04}.Linear(), rectVar)

	writeWord := func(off, v uint16) {
		m.Mem.WriteWord(machine.FarPtr{Seg: ds, Off: off}.Linear(), v)
	}
	writeWord(axVar, 0x0010) // set update region
	// The rectangle sits behind the DX pointer.
	writeWord(rectVar, 100)
	writeWord(rectVar+2, 50)
	writeWord(rectVar+4, 300)
	writeWord(rectVar+6, 150)

	r := &machine.Regs{DS: ds, SS: ss, SP: sp}
	d.Int33Backdoor(r)

	st := d.State()
	assert.Equal(t, int16(100), st.UpdateRegionX[0])
	assert.Equal(t, int16(50), st.UpdateRegionY[0])
	assert.Equal(t, int16(300), st.UpdateRegionX[1])
	assert.Equal(t, int16(150), st.UpdateRegionY[1])
}

func TestBackdoorCallbackExchangeReturnsSegment(t *testing.T) {
	m, d := newTestRig(t)

	// Register a callback the regular way first.
	r := &machine.Regs{}
	r.CX = 0x0003
	r.DX = 0x1111
	r.ES = 0x2222
	call(d, r, 0x0c)

	const (
		ds = 0x2000
		ss = 0x3000
		sp = 0x0100
	)
	const (
		axVar = 0x0010
		bxVar = 0x0012
		cxVar = 0x0014
		dxVar = 0x0016
	)

	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x0a}.Linear(), axVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x08}.Linear(), bxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x06}.Linear(), cxVar)
	m.Mem.WriteWord(machine.FarPtr{Seg: ss, Off: sp + 0x04}.Linear(), dxVar)

	writeDS := func(off, v uint16) {
		m.Mem.WriteWord(machine.FarPtr{Seg: ds, Off: off}.Linear(), v)
	}
	readDS := func(off uint16) uint16 {
		return m.Mem.ReadWord(machine.FarPtr{Seg: ds, Off: off}.Linear())
	}

	writeDS(axVar, 0x0014) // exchange callback
	writeDS(bxVar, 0x4444) // new segment travels via BX
	writeDS(cxVar, 0x000f)
	writeDS(dxVar, 0x3333)

	br := &machine.Regs{DS: ds, SS: ss, SP: sp}
	d.Int33Backdoor(br)

	// The old registration comes back, the old segment through CX.
	assert.Equal(t, uint16(0x1111), readDS(dxVar))
	assert.Equal(t, uint16(0x2222), readDS(cxVar))

	st := d.State()
	assert.Equal(t, uint16(0x4444), st.CallbackSeg)
	assert.Equal(t, uint16(0x3333), st.CallbackOff)
	assert.Equal(t, uint16(0x000f), st.CallbackMask)
}
