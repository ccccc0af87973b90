package machine

// Regs is the 16-bit register file of the guest CPU at an interrupt entry
// point. Dispatch handlers read their arguments from it and write their
// results back; the emulator copies it to and from the real CPU state.
type Regs struct {
	AX uint16
	BX uint16
	CX uint16
	DX uint16
	SI uint16
	DI uint16
	BP uint16
	SP uint16

	ES uint16
	DS uint16
	SS uint16
}

func (r *Regs) AL() uint8 { return uint8(r.AX) }
func (r *Regs) AH() uint8 { return uint8(r.AX >> 8) }
func (r *Regs) BL() uint8 { return uint8(r.BX) }
func (r *Regs) BH() uint8 { return uint8(r.BX >> 8) }
func (r *Regs) CL() uint8 { return uint8(r.CX) }
func (r *Regs) CH() uint8 { return uint8(r.CX >> 8) }
func (r *Regs) DL() uint8 { return uint8(r.DX) }
func (r *Regs) DH() uint8 { return uint8(r.DX >> 8) }

func (r *Regs) SetAL(v uint8) { r.AX = r.AX&0xff00 | uint16(v) }
func (r *Regs) SetAH(v uint8) { r.AX = r.AX&0x00ff | uint16(v)<<8 }
func (r *Regs) SetBL(v uint8) { r.BX = r.BX&0xff00 | uint16(v) }
func (r *Regs) SetBH(v uint8) { r.BX = r.BX&0x00ff | uint16(v)<<8 }
func (r *Regs) SetCL(v uint8) { r.CX = r.CX&0xff00 | uint16(v) }
func (r *Regs) SetCH(v uint8) { r.CX = r.CX&0x00ff | uint16(v)<<8 }
func (r *Regs) SetDL(v uint8) { r.DX = r.DX&0xff00 | uint16(v) }
func (r *Regs) SetDH(v uint8) { r.DX = r.DX&0x00ff | uint16(v)<<8 }
