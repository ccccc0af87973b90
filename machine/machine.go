// Package machine defines the narrow interfaces through which the DOS mouse
// driver core reaches the surrounding PC emulation: real-mode memory, port
// I/O, video services, and the CPU stack. The emulator owning the machine
// provides the implementations; internal/host carries a headless reference
// implementation used by tests and the demo command.
package machine

// FarPtr is a real-mode segment:offset pair.
type FarPtr struct {
	Seg uint16
	Off uint16
}

// Linear returns the 20-bit physical address of the pointer.
func (p FarPtr) Linear() uint32 {
	return uint32(p.Seg)<<4 + uint32(p.Off)
}

// Memory provides access to guest conventional memory by physical address.
type Memory interface {
	ReadByte(addr uint32) uint8
	WriteByte(addr uint32, v uint8)
	// ReadWord and WriteWord are little-endian, matching the guest CPU.
	ReadWord(addr uint32) uint16
	WriteWord(addr uint32, v uint16)
	BlockRead(addr uint32, buf []byte)
	BlockWrite(addr uint32, data []byte)
}

// PortIO provides raw port input/output, used for direct video register
// access while compositing the cursor.
type PortIO interface {
	In(port uint16) uint8
	Out(port uint16, v uint8)
}

// Adapter identifies the emulated video adapter family.
type Adapter uint8

const (
	AdapterCGA Adapter = iota
	AdapterEGA
	AdapterVGA
)

// IsEGAVGA reports whether the adapter keeps EGA/VGA BIOS data (row count,
// character height) in the BIOS data area.
func (a Adapter) IsEGAVGA() bool {
	return a == AdapterEGA || a == AdapterVGA
}

// VideoModeType classifies the active BIOS video mode.
type VideoModeType uint8

const (
	ModeText VideoModeType = iota
	ModeGraphics
)

// VideoMode describes the active BIOS video mode as far as the mouse driver
// cares about it.
type VideoMode struct {
	Number uint8
	Type   VideoModeType
	Width  uint16 // pixel width (graphics) or cell width * 8 (text)
	Height uint16
}

// Video exposes the BIOS/VGA drawing services the cursor compositor needs.
// WriteChar and ReadCharAttr access the screen directly, bypassing the BIOS
// cursor position (some spreadsheets move it behind the driver's back).
type Video interface {
	Adapter() Adapter
	CurrentMode() VideoMode
	GetPixel(x, y uint16, page uint8) uint8
	PutPixel(x, y uint16, page uint8, color uint8)
	// ReadCharAttr returns character | attribute<<8 for the given cell.
	ReadCharAttr(col, row uint16, page uint8) uint16
	WriteChar(col, row uint16, page uint8, chr, attr uint8, useAttr bool)
	// SetCursorShape reprograms the hardware text cursor scanlines.
	SetCursorShape(start, end uint8)
}

// Stack pushes 16-bit values onto the guest stack. The driver uses it to
// build the synthetic far-call frame for user callbacks.
type Stack interface {
	Push16(v uint16)
}

// IntController lets the driver drop an asserted interrupt line during a
// hardware reset.
type IntController interface {
	LowerIRQ(line uint8)
}
