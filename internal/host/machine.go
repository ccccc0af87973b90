// Package host provides a headless reference machine implementing the
// guest-side interfaces the driver needs: a conventional-memory slab,
// text and graphics framebuffers, VGA register latches and a recorded
// stack. It backs the package tests and the demo command; a real emulator
// supplies its own implementations instead.
package host

import (
	"github.com/emucore/dosmouse/machine"
)

const memorySize = 1 << 20 // one megabyte of conventional memory

// Machine is a minimal headless PC: enough memory, video and port plumbing
// to run the DOS mouse driver against.
type Machine struct {
	Mem   Memory
	Ports Ports
	Vid   Video
	Stk   Stack
	PIC   PIC
}

// New returns a machine initialized to 80x25 color text mode.
func New() *Machine {
	m := &Machine{}
	m.Mem.data = make([]byte, memorySize)
	m.Vid.adapter = machine.AdapterVGA
	m.Ports.regs = make(map[uint16]uint8)
	m.SetTextMode(0x03, 80, 25)
	return m
}

// SetTextMode programs a BIOS text mode: the mode byte, column count, row
// count and CRTC base land in the BIOS data area like the video BIOS would
// leave them.
func (m *Machine) SetTextMode(mode uint8, cols, rows uint16) {
	m.Vid.mode = machine.VideoMode{
		Number: mode,
		Type:   machine.ModeText,
		Width:  cols * 8,
		Height: rows * 8,
	}
	m.Vid.cols = cols
	m.Vid.rows = rows
	m.Vid.text = make([]uint16, int(cols)*int(rows)*8) // all pages
	m.Mem.WriteByte(machine.BDA(machine.BIOSVideoMode), mode)
	m.Mem.WriteWord(machine.BDA(machine.BIOSNumCols), cols)
	m.Mem.WriteWord(machine.BDA(machine.BIOSPageSize), cols*rows*2)
	m.Mem.WriteByte(machine.BDA(machine.BIOSCurrentPage), 0)
	m.Mem.WriteWord(machine.BDA(machine.BIOSCRTCAddress), 0x3d4)
	m.Mem.WriteByte(machine.BDA(machine.BIOSNumRows), uint8(rows-1))
}

// SetGraphicsMode programs a BIOS graphics mode with the given resolution.
func (m *Machine) SetGraphicsMode(mode uint8, width, height uint16) {
	m.Vid.mode = machine.VideoMode{
		Number: mode,
		Type:   machine.ModeGraphics,
		Width:  width,
		Height: height,
	}
	m.Vid.pixels = make([]uint8, int(width)*int(height))
	m.Mem.WriteByte(machine.BDA(machine.BIOSVideoMode), mode)
}

// Memory is a flat conventional-memory slab.
type Memory struct {
	data []byte
}

func (m *Memory) ReadByte(addr uint32) uint8 {
	if addr >= uint32(len(m.data)) {
		return 0xff
	}
	return m.data[addr]
}

func (m *Memory) WriteByte(addr uint32, v uint8) {
	if addr < uint32(len(m.data)) {
		m.data[addr] = v
	}
}

func (m *Memory) ReadWord(addr uint32) uint16 {
	return uint16(m.ReadByte(addr)) | uint16(m.ReadByte(addr+1))<<8
}

func (m *Memory) WriteWord(addr uint32, v uint16) {
	m.WriteByte(addr, uint8(v))
	m.WriteByte(addr+1, uint8(v>>8))
}

func (m *Memory) BlockRead(addr uint32, buf []byte) {
	for i := range buf {
		buf[i] = m.ReadByte(addr + uint32(i))
	}
}

func (m *Memory) BlockWrite(addr uint32, data []byte) {
	for i, b := range data {
		m.WriteByte(addr+uint32(i), b)
	}
}

// Ports latches every write and answers reads from the same latch, which
// is exactly what the cursor compositor's save/restore pairing needs.
type Ports struct {
	regs map[uint16]uint8
	// Log keeps the write sequence for tests.
	Log []PortWrite
}

// PortWrite is one recorded port output.
type PortWrite struct {
	Port  uint16
	Value uint8
}

func (p *Ports) In(port uint16) uint8 {
	// Indexed register pairs (VGA sequencer, graphics controller, CRTC)
	// read back through the currently latched index.
	switch port {
	case machine.VGARegSequData:
		return p.regs[indexed(machine.VGARegSequAddress, p.regs[machine.VGARegSequAddress])]
	case machine.VGARegGRDCData:
		return p.regs[indexed(machine.VGARegGRDCAddress, p.regs[machine.VGARegGRDCAddress])]
	case crtcData:
		return p.regs[indexed(crtcAddress, p.regs[crtcAddress])]
	}
	return p.regs[port]
}

func (p *Ports) Out(port uint16, v uint8) {
	p.Log = append(p.Log, PortWrite{Port: port, Value: v})
	switch port {
	case machine.VGARegSequData:
		p.regs[indexed(machine.VGARegSequAddress, p.regs[machine.VGARegSequAddress])] = v
	case machine.VGARegGRDCData:
		p.regs[indexed(machine.VGARegGRDCAddress, p.regs[machine.VGARegGRDCAddress])] = v
	case crtcData:
		p.regs[indexed(crtcAddress, p.regs[crtcAddress])] = v
	default:
		p.regs[port] = v
	}
}

// Color CRTC register pair; the BIOS data area advertises the same base.
const (
	crtcAddress uint16 = 0x3d4
	crtcData    uint16 = 0x3d5
)

// Indexed returns the latched value of an indexed register, for tests.
func (p *Ports) Indexed(addrPort uint16, index uint8) uint8 {
	return p.regs[indexed(addrPort, index)]
}

// SetIndexed pre-loads an indexed register value.
func (p *Ports) SetIndexed(addrPort uint16, index, v uint8) {
	p.regs[indexed(addrPort, index)] = v
}

// indexed maps (index port, index) pairs into a private key space above
// the 16-bit port range.
func indexed(addrPort uint16, index uint8) uint16 {
	return 0x8000 | addrPort&0xff<<8 | uint16(index)
}

// Video keeps separate text cells and a graphics framebuffer, whichever
// the current mode uses.
type Video struct {
	mode    machine.VideoMode
	adapter machine.Adapter

	cols, rows uint16
	text       []uint16 // char | attr<<8 per cell, pages back to back
	pixels     []uint8

	CursorShape [2]uint8
}

func (v *Video) Adapter() machine.Adapter { return v.adapter }

// SetAdapter overrides the emulated adapter family.
func (v *Video) SetAdapter(a machine.Adapter) { v.adapter = a }

func (v *Video) CurrentMode() machine.VideoMode { return v.mode }

func (v *Video) cell(col, row uint16, page uint8) int {
	idx := int(page)*int(v.cols)*int(v.rows) + int(row)*int(v.cols) + int(col)
	if idx < 0 || idx >= len(v.text) {
		return -1
	}
	return idx
}

func (v *Video) ReadCharAttr(col, row uint16, page uint8) uint16 {
	if idx := v.cell(col, row, page); idx >= 0 {
		return v.text[idx]
	}
	return 0
}

func (v *Video) WriteChar(col, row uint16, page uint8, chr, attr uint8, useAttr bool) {
	idx := v.cell(col, row, page)
	if idx < 0 {
		return
	}
	if useAttr {
		v.text[idx] = uint16(chr) | uint16(attr)<<8
	} else {
		v.text[idx] = v.text[idx]&0xff00 | uint16(chr)
	}
}

func (v *Video) GetPixel(x, y uint16, page uint8) uint8 {
	idx := int(y)*int(v.mode.Width) + int(x)
	if idx < 0 || idx >= len(v.pixels) {
		return 0
	}
	return v.pixels[idx]
}

func (v *Video) PutPixel(x, y uint16, page uint8, color uint8) {
	idx := int(y)*int(v.mode.Width) + int(x)
	if idx >= 0 && idx < len(v.pixels) {
		v.pixels[idx] = color
	}
}

func (v *Video) SetCursorShape(start, end uint8) {
	v.CursorShape = [2]uint8{start, end}
}

// Stack records pushed words most-recent-first, the way the CPU would pop
// them.
type Stack struct {
	Words []uint16
}

func (s *Stack) Push16(v uint16) {
	s.Words = append(s.Words, v)
}

// Reset clears the recorded words.
func (s *Stack) Reset() { s.Words = nil }

// PIC records lowered IRQ lines.
type PIC struct {
	Lowered []uint8
}

func (p *PIC) LowerIRQ(line uint8) {
	p.Lowered = append(p.Lowered, line)
}
