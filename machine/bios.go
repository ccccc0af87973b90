package machine

// BIOS data area locations (segment 0x40) the driver reads directly.
const (
	BIOSSeg = 0x40

	BIOSVideoMode   = 0x49 // current video mode number, byte
	BIOSNumCols     = 0x4a // text columns, word
	BIOSPageSize    = 0x4c // video page size in bytes, word
	BIOSCurrentPage = 0x62 // active display page, byte
	BIOSCRTCAddress = 0x63 // CRTC index port, word
	BIOSNumRows     = 0x84 // text rows minus one (EGA/VGA only), byte
)

// BDA returns the physical address of a BIOS data area offset.
func BDA(off uint16) uint32 {
	return FarPtr{Seg: BIOSSeg, Off: off}.Linear()
}

// VGA register ports touched around cursor pixel access.
const (
	VGARegSequAddress uint16 = 0x3c4
	VGARegSequData    uint16 = 0x3c5
	VGARegGRDCAddress uint16 = 0x3ce
	VGARegGRDCData    uint16 = 0x3cf
)
