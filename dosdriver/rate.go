package dosdriver

// Sampling-rate policy. Real drivers program the PS/2 sampling rate to
// 60-100 Hz; the original DOSBox updated everything in realtime with
// 200 Hz callbacks, which is too much for some guests (the Ultima
// Underworlds). The effective rate is the guest-negotiated rate if one was
// set, else the user-configured minimum, else 200 Hz (the PS/2 maximum).
const defaultRateHz = 200

// notifyRate pushes the effective sampling rate to the interface layer.
func (d *Driver) notifyRate() {
	if d.rateListener == nil {
		return
	}
	switch {
	case d.hw.RateIsSet:
		// Guest value wins; the interface layer still enforces the
		// configured minimum.
		d.rateListener(d.hw.RateHz)
	case d.hw.MinRateHz != 0:
		d.rateListener(d.hw.MinRateHz)
	default:
		d.rateListener(defaultRateHz)
	}
}

// setInterruptRate services function 0x1c: a small enumerated set of rate
// identifiers, anything above the defined range selecting the maximum.
func (d *Driver) setInterruptRate(rateID uint16) {
	var hz uint16
	switch rateID {
	case 0:
		hz = 0 // no interrupts; not modeled beyond remembering it
	case 1:
		hz = 30
	case 2:
		hz = 50
	case 3:
		hz = 100
	default:
		hz = 200
	}

	if hz != 0 {
		d.hw.RateIsSet = true
		d.hw.RateHz = hz
		d.notifyRate()
	}
}

// NotifyMinRate records the host/user-configured minimum sampling rate. A
// guest-negotiated rate stays in force.
func (d *Driver) NotifyMinRate(hz uint16) {
	d.hw.MinRateHz = hz

	if d.hw.RateIsSet {
		return
	}
	d.notifyRate()
}
