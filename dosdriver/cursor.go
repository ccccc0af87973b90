package dosdriver

import "github.com/emucore/dosmouse/machine"

// Default cursor shape: the classic arrow, plus the text mode and/xor pair
// that inverts the cell under the cursor.
const (
	defaultTextAndMask uint16 = 0x77ff
	defaultTextXorMask uint16 = 0x7700
)

var defaultScreenMask = [cursorSizeY]uint16{
	0x3fff, 0x1fff, 0x0fff, 0x07ff, 0x03ff, 0x01ff, 0x00ff, 0x007f,
	0x003f, 0x001f, 0x01ff, 0x00ff, 0x30ff, 0xf87f, 0xf87f, 0xfcff,
}

var defaultCursorMask = [cursorSizeY]uint16{
	0x0000, 0x4000, 0x6000, 0x7000, 0x7800, 0x7c00, 0x7e00, 0x7f00,
	0x7f80, 0x7c00, 0x6c00, 0x4600, 0x0600, 0x0300, 0x0300, 0x0000,
}

// ***************************************************************************
// Text mode cursor
// ***************************************************************************

func (d *Driver) restoreCursorBackgroundText() {
	if d.state.Hidden != 0 || d.state.InhibitDraw {
		return
	}

	if d.state.Background.Enabled {
		page := d.mem.ReadByte(machine.BDA(machine.BIOSCurrentPage))
		d.video.WriteChar(d.state.Background.PosX,
			d.state.Background.PosY,
			page,
			d.state.Background.Data[0],
			d.state.Background.Data[1],
			true)
		d.state.Background.Enabled = false
	}
}

func (d *Driver) drawCursorText() {
	d.restoreCursorBackgroundText()

	// Cursor suppressed inside the update region.
	x := d.posX16()
	y := d.posY16()
	if int32(y) <= int32(d.state.UpdateRegionY[1]) && int32(y) >= int32(d.state.UpdateRegionY[0]) &&
		int32(x) <= int32(d.state.UpdateRegionX[1]) && int32(x) >= int32(d.state.UpdateRegionX[0]) {
		return
	}

	d.state.Background.PosX = x / 8
	d.state.Background.PosY = y / 8
	if d.state.Mode < 2 {
		d.state.Background.PosX /= 2
	}

	// Use the page the BIOS considers current, not state.Page (CV).
	page := d.mem.ReadByte(machine.BDA(machine.BIOSCurrentPage))

	if d.state.CursorType == CursorSoftware {
		cell := d.video.ReadCharAttr(d.state.Background.PosX,
			d.state.Background.PosY, page)
		d.state.Background.Data[0] = uint8(cell)
		d.state.Background.Data[1] = uint8(cell >> 8)
		d.state.Background.Enabled = true

		cell &= d.state.TextAndMask
		cell ^= d.state.TextXorMask

		d.video.WriteChar(d.state.Background.PosX,
			d.state.Background.PosY,
			page,
			uint8(cell),
			uint8(cell>>8),
			true)
	} else {
		// Hardware text cursor: park the CRTC cursor on the cell.
		pageSize := d.mem.ReadWord(machine.BDA(machine.BIOSPageSize))
		cols := d.mem.ReadWord(machine.BDA(machine.BIOSNumCols))
		address := uint16(page) * pageSize
		address += (d.state.Background.PosY*cols + d.state.Background.PosX) * 2
		address /= 2

		crtc := d.mem.ReadWord(machine.BDA(machine.BIOSCRTCAddress))
		d.ports.Out(crtc, 0x0e)
		d.ports.Out(crtc+1, uint8(address>>8))
		d.ports.Out(crtc, 0x0f)
		d.ports.Out(crtc+1, uint8(address))
	}
}

// ***************************************************************************
// Graphics mode cursor
// ***************************************************************************

// saveVGARegisters snapshots the graphics controller and sequencer state,
// then forces read/write mode 0 with all planes mapped so pixel access
// behaves. Always paired with restoreVGARegisters; the pair must never be
// interrupted by a nested draw.
func (d *Driver) saveVGARegisters() {
	switch d.video.Adapter() {
	case machine.AdapterVGA:
		for i := uint8(0); i < 9; i++ {
			d.ports.Out(machine.VGARegGRDCAddress, i)
			d.vgaGRDC[i] = d.ports.In(machine.VGARegGRDCData)
		}
		d.ports.Out(machine.VGARegGRDCAddress, 3)
		d.ports.Out(machine.VGARegGRDCData, 0) // no rotate, no operation
		d.ports.Out(machine.VGARegGRDCAddress, 5)
		d.ports.Out(machine.VGARegGRDCData, d.vgaGRDC[5]&0xf0) // mode 0

		// Map all planes. Celtic Tales.
		d.vgaSequAddress = d.ports.In(machine.VGARegSequAddress)
		d.ports.Out(machine.VGARegSequAddress, 2)
		d.vgaSequData = d.ports.In(machine.VGARegSequData)
		d.ports.Out(machine.VGARegSequData, 0xf)
	case machine.AdapterEGA:
		d.ports.Out(machine.VGARegSequAddress, 2)
		d.ports.Out(machine.VGARegSequData, 0xf)
	}
}

func (d *Driver) restoreVGARegisters() {
	if d.video.Adapter() == machine.AdapterVGA {
		for i := uint8(0); i < 9; i++ {
			d.ports.Out(machine.VGARegGRDCAddress, i)
			d.ports.Out(machine.VGARegGRDCData, d.vgaGRDC[i])
		}
		d.ports.Out(machine.VGARegSequAddress, 2)
		d.ports.Out(machine.VGARegSequData, d.vgaSequData)
		d.ports.Out(machine.VGARegSequAddress, d.vgaSequAddress)
	}
}

// clipCursorArea trims the cursor footprint to the clip bounds. Clipped
// rows and columns become offsets into the sprite masks instead of being
// dropped.
func (d *Driver) clipCursorArea(x1, x2, y1, y2 *int16) (addX1, addX2, addY uint16) {
	if *y1 < 0 {
		addY = uint16(-*y1)
		*y1 = 0
	}
	if *y2 > d.state.ClipY {
		*y2 = d.state.ClipY
	}
	if *x1 < 0 {
		addX1 = uint16(-*x1)
		*x1 = 0
	}
	if *x2 > d.state.ClipX {
		addX2 = uint16(*x2 - d.state.ClipX)
		*x2 = d.state.ClipX
	}
	return addX1, addX2, addY
}

func (d *Driver) restoreCursorBackground() {
	if d.state.Hidden != 0 || d.state.InhibitDraw || !d.state.Background.Enabled {
		return
	}

	d.saveVGARegisters()

	x1 := int16(d.state.Background.PosX)
	y1 := int16(d.state.Background.PosY)
	x2 := x1 + cursorSizeX - 1
	y2 := y1 + cursorSizeY - 1

	addX1, addX2, addY := d.clipCursorArea(&x1, &x2, &y1, &y2)

	dataPos := addY * cursorSizeX
	for y := y1; y <= y2; y++ {
		dataPos += addX1
		for x := x1; x <= x2; x++ {
			d.video.PutPixel(uint16(x), uint16(y), d.state.Page,
				d.state.Background.Data[dataPos])
			dataPos++
		}
		dataPos += addX2
	}
	d.state.Background.Enabled = false

	d.restoreVGARegisters()
}

// DrawCursor composites the cursor at the current position: restore the
// previous background, bail inside the update region, save the new
// background, paint the sprite.
func (d *Driver) DrawCursor() {
	if d.state.Hidden != 0 || d.state.InhibitDraw {
		return
	}

	mode := d.video.CurrentMode()
	if mode.Type == machine.ModeText {
		d.drawCursorText()
		return
	}

	// The BIOS page is not the actual page in some cases (QQP games), so
	// no page check here.

	d.state.ClipX = int16(mode.Width) - 1
	d.state.ClipY = int16(mode.Height) - 1

	// Horizontal ratio compresses the 640-wide virtual coordinate space
	// onto narrower modes (320x200 and friends).
	xRatio := int16(640)
	if mode.Width > 0 {
		xRatio /= int16(mode.Width)
	}
	if xRatio == 0 {
		xRatio = 1
	}

	d.restoreCursorBackground()

	d.saveVGARegisters()

	// Save background under the new footprint.
	x1 := int16(d.posX16())/xRatio - d.state.HotX
	y1 := int16(d.posY16()) - d.state.HotY
	x2 := x1 + cursorSizeX - 1
	y2 := y1 + cursorSizeY - 1

	addX1, addX2, addY := d.clipCursorArea(&x1, &x2, &y1, &y2)

	dataPos := addY * cursorSizeX
	for y := y1; y <= y2; y++ {
		dataPos += addX1
		for x := x1; x <= x2; x++ {
			d.state.Background.Data[dataPos] =
				d.video.GetPixel(uint16(x), uint16(y), d.state.Page)
			dataPos++
		}
		dataPos += addX2
	}
	d.state.Background.Enabled = true
	d.state.Background.PosX = uint16(int16(d.posX16())/xRatio - d.state.HotX)
	d.state.Background.PosY = uint16(int16(d.posY16()) - d.state.HotY)

	// Paint the sprite.
	screenMask := &defaultScreenMask
	if d.state.UserScreenMask {
		screenMask = &d.state.UserDefScreenMask
	}
	cursorMask := &defaultCursorMask
	if d.state.UserCursorMask {
		cursorMask = &d.state.UserDefCursorMask
	}

	dataPos = addY * cursorSizeX
	for y := y1; y <= y2; y++ {
		scMask := screenMask[addY+uint16(y-y1)]
		cuMask := cursorMask[addY+uint16(y-y1)]
		if addX1 > 0 {
			// Off-bound columns shift into the mask, they are not
			// dropped.
			scMask <<= addX1
			cuMask <<= addX1
			dataPos += addX1
		}
		for x := x1; x <= x2; x++ {
			const highestBit = 1 << (cursorSizeX - 1)
			var pixel uint8
			if scMask&highestBit != 0 {
				pixel = d.state.Background.Data[dataPos]
			}
			if cuMask&highestBit != 0 {
				pixel ^= 0x0f
			}
			scMask <<= 1
			cuMask <<= 1
			d.video.PutPixel(uint16(x), uint16(y), d.state.Page, pixel)
			dataPos++
		}
		dataPos += addX2
	}

	d.restoreVGARegisters()
}
