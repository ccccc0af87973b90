package cmd

import (
	"fmt"
	"log/slog"

	"github.com/emucore/dosmouse/dosdriver"
	"github.com/emucore/dosmouse/internal/config"
	"github.com/emucore/dosmouse/internal/host"
	"github.com/emucore/dosmouse/internal/log"
	"github.com/emucore/dosmouse/machine"
	"github.com/emucore/dosmouse/mouse"
)

// Run drives a headless machine with a scripted mouse session, so the
// driver's guest-visible behaviour can be inspected from the command line.
type Run struct {
	Mouse config.Settings `embed:"" prefix:"mouse."`

	Moves   int  `help:"Number of scripted mouse movements to feed" default:"16"`
	Clicks  int  `help:"Number of scripted button clicks to feed" default:"4"`
	Capture bool `help:"Run the session with the mouse captured (relative mode)" default:"true" negatable:""`
}

// Run is called by Kong when the run command is executed.
func (c *Run) Run(logger *slog.Logger, tracer log.CallTracer) error {
	if err := c.Mouse.Validate(); err != nil {
		return err
	}
	if !c.Mouse.DriverEnable {
		return fmt.Errorf("driver is disabled in the configuration, nothing to run")
	}

	m := host.New()
	drv := dosdriver.New(dosdriver.Options{
		Memory:         &m.Mem,
		Ports:          &m.Ports,
		Video:          &m.Vid,
		Stack:          &m.Stk,
		PIC:            &m.PIC,
		CallbackReturn: machine.FarPtr{Seg: 0xf000, Off: 0x2000},
		Immediate:      c.Mouse.Immediate,
		Logger:         logger,
		Tracer:         tracer,
		RateListener: func(hz uint16) {
			logger.Debug("sampling rate changed", "hz", hz)
		},
	})

	sensX, sensY, err := config.ParseSensitivityPair(c.Mouse.Sensitivity)
	if err != nil {
		return err
	}
	coeffX := mouse.SensitivityCoeff(sensX)
	coeffY := mouse.SensitivityCoeff(sensY)
	drv.NotifyRawInput(c.Mouse.RawInput)
	drv.NotifyCaptured(c.Capture)
	if c.Mouse.MinRateHz != 0 {
		drv.NotifyMinRate(c.Mouse.MinRateHz)
	}

	r := &machine.Regs{}

	r.AX = 0x00
	drv.Int33(r)
	logger.Info("driver reset", "installed", fmt.Sprintf("%04x", r.AX), "buttons", r.BX)

	r.AX = 0x24
	drv.Int33(r)
	logger.Info("driver version", "version", fmt.Sprintf("%d.%02d", r.BX>>8, r.BX&0xff),
		"mouse_type", r.CH(), "irq", r.CL())

	r.AX = 0x01
	drv.Int33(r)

	for i := 0; i < c.Moves; i++ {
		drv.NotifyMoved(coeffX*float32(5+i), coeffY*float32(3+i),
			uint16(i*40), uint16(i*25))
		if drv.UpdateMoved() != 0 {
			drv.DrawCursor()
		}
	}
	for i := 0; i < c.Clicks; i++ {
		drv.UpdateButtons(mouseButtons(i))
	}

	r.AX = 0x03
	drv.Int33(r)
	logger.Info("cursor position", "x", int16(r.CX), "y", int16(r.DX),
		"buttons", fmt.Sprintf("%03b", r.BL()))

	r.AX = 0x0b
	drv.Int33(r)
	logger.Info("motion counters", "mickeys_x", int16(r.CX), "mickeys_y", int16(r.DX))

	r.AX = 0x05
	r.BX = 0
	drv.Int33(r)
	logger.Info("left button presses", "count", r.BX, "last_x", int16(r.CX), "last_y", int16(r.DX))

	r.AX = 0x15
	drv.Int33(r)
	logger.Info("driver state size", "bytes", r.BX)

	r.AX = 0x02
	drv.Int33(r)

	st := drv.State()
	hw := drv.Hardware()
	logger.Info("session finished",
		"pos_x", hw.PosX, "pos_y", hw.PosY,
		"times_pressed_left", st.TimesPressed[0],
		"times_released_left", st.TimesReleased[0])
	return nil
}

func mouseButtons(i int) mouse.Buttons {
	if i%2 == 0 {
		return mouse.ButtonLeft
	}
	return 0
}
