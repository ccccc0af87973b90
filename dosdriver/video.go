package dosdriver

import "github.com/emucore/dosmouse/machine"

// BeforeNewVideoMode is called by the video BIOS right before a mode
// change. The cursor background belongs to the dying mode, so it is put
// back now and the cursor is hidden until the application shows it again.
func (d *Driver) BeforeNewVideoMode() {
	if d.video.CurrentMode().Type != machine.ModeText {
		d.restoreCursorBackground()
	} else {
		d.restoreCursorBackgroundText()
	}

	d.state.Hidden = 1
	d.state.OldHidden = 1
	d.state.Background.Enabled = false
}

// AfterNewVideoMode is called once the new mode is in effect. It
// reinitializes the per-mode driver state: granularity masks, position
// bounds, cursor shape and the update region. setMode is true when the
// guest requested the change through the video BIOS (as opposed to a
// driver reset re-running the sequence).
func (d *Driver) AfterNewVideoMode(setMode bool) {
	d.state.InhibitDraw = false

	mode := d.mem.ReadByte(machine.BDA(machine.BIOSVideoMode))
	if setMode && mode == d.state.Mode {
		d.logger.Debug("new video mode is the same as the old", "mode", mode)
	}

	d.state.GranularityX = 0xffff
	d.state.GranularityY = 0xffff

	switch mode {
	case 0x00, 0x01, 0x02, 0x03, 0x07:
		// Text modes: positions are reported in character-cell units.
		if mode < 2 {
			d.state.GranularityX = 0xfff0
		} else {
			d.state.GranularityX = 0xfff8
		}
		d.state.GranularityY = 0xfff8
		rows := uint16(24)
		if d.video.Adapter().IsEGAVGA() {
			rows = uint16(d.mem.ReadByte(machine.BDA(machine.BIOSNumRows)))
		}
		if rows == 0 || rows > 250 {
			rows = 24
		}
		d.state.MaxPosY = int16(8*(rows+1) - 1)
	case 0x04, 0x05, 0x06, 0x08, 0x09, 0x0a, 0x0d, 0x0e, 0x13:
		if mode == 0x0d || mode == 0x13 {
			d.state.GranularityX = 0xfffe
		}
		d.state.MaxPosY = 199
	case 0x0f, 0x10:
		d.state.MaxPosY = 349
	case 0x11, 0x12:
		d.state.MaxPosY = 479
	default:
		d.logger.Error("unhandled video mode on reset", "mode", mode)
		d.state.InhibitDraw = true
		return
	}

	d.state.Mode = mode
	d.state.MaxPosX = 639
	d.state.MinPosX = 0
	d.state.MinPosY = 0
	d.state.HotX = 0
	d.state.HotY = 0
	d.state.UserScreenMask = false
	d.state.UserCursorMask = false
	d.state.TextAndMask = defaultTextAndMask
	d.state.TextXorMask = defaultTextXorMask
	d.state.Page = 0
	d.state.UpdateRegionY[1] = -1 // offscreen
	d.state.CursorType = CursorSoftware
	d.state.Enabled = true
}
