// Package config holds mouse emulation settings and the parsers for the
// user-facing value formats (sensitivity expressions, device model names,
// sampling rate limits).
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultSensitivity is the neutral sensitivity setting (1.0 multiplier).
	DefaultSensitivity = 50

	sensitivityUserMax     = 99
	sensitivityDoubleSteps = 10.0
)

// PS2Model selects the emulated PS/2 pointer model.
type PS2Model uint8

const (
	PS2Standard PS2Model = iota
	PS2IntelliMouse
	PS2Explorer
)

func (m PS2Model) String() string {
	switch m {
	case PS2Standard:
		return "standard"
	case PS2IntelliMouse:
		return "intellimouse"
	case PS2Explorer:
		return "explorer"
	}
	return "unknown"
}

// ParsePS2Model maps a config string to a PS2Model.
func ParsePS2Model(s string) (PS2Model, error) {
	switch s {
	case "standard", "":
		return PS2Standard, nil
	case "intellimouse":
		return PS2IntelliMouse, nil
	case "explorer":
		return PS2Explorer, nil
	}
	return PS2Standard, fmt.Errorf("unknown ps/2 mouse model %q", s)
}

// COMModel selects the emulated serial pointer protocol.
type COMModel uint8

const (
	COMMicrosoft COMModel = iota
	COMLogitech
	COMWheel
	COMMouseSystems
)

func (m COMModel) String() string {
	switch m {
	case COMMicrosoft:
		return "2button"
	case COMLogitech:
		return "3button"
	case COMWheel:
		return "wheel"
	case COMMouseSystems:
		return "msm"
	}
	return "unknown"
}

// ParseSerialModel maps a config string to a COMModel. The "+msm" variants
// additionally enable automatic Mouse Systems protocol fallback.
func ParseSerialModel(s string) (model COMModel, autoMSM bool, err error) {
	switch s {
	case "2button":
		return COMMicrosoft, false, nil
	case "3button":
		return COMLogitech, false, nil
	case "wheel", "":
		return COMWheel, false, nil
	case "msm":
		return COMMouseSystems, false, nil
	case "2button+msm":
		return COMMicrosoft, true, nil
	case "3button+msm":
		return COMLogitech, true, nil
	case "wheel+msm":
		return COMWheel, true, nil
	}
	return COMWheel, false, fmt.Errorf("unknown serial mouse model %q", s)
}

// ValidMinRates lists the sampling rates (Hz) accepted as a minimum rate
// override. The values correspond to rates of period-correct pointing
// devices; anything faster only costs emulation speed.
var ValidMinRates = []uint16{40, 60, 80, 100, 125, 160, 200, 250, 330, 500}

// ValidateMinRate checks a minimum sampling rate override. Zero means no
// override and is always accepted.
func ValidateMinRate(hz uint16) error {
	if hz == 0 {
		return nil
	}
	for _, r := range ValidMinRates {
		if r == hz {
			return nil
		}
	}
	return fmt.Errorf("invalid minimum sampling rate %d Hz (valid: %v)", hz, ValidMinRates)
}

// ParseSensitivity converts a user sensitivity expression to the internal
// -99..99 scale. Values containing a decimal point are treated as a
// multiplier (1.0 is neutral, each doubling adds ten steps, a negative value
// inverts the axis); plain integers are taken as the internal value directly.
func ParseSensitivity(s string) (int16, error) {
	if s == "" {
		return DefaultSensitivity, nil
	}

	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return DefaultSensitivity, fmt.Errorf("invalid sensitivity value %q", s)
		}
		sign := int16(1)
		if f < 0 {
			f = -f
			sign = -1
		} else if f == 0 {
			return 0, nil
		}
		steps := math.Log2(f)*sensitivityDoubleSteps + DefaultSensitivity
		rounded := int16(math.Round(math.Max(steps, 1.0)))
		return clampSensitivity(sign * rounded), nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return DefaultSensitivity, fmt.Errorf("invalid sensitivity value %q", s)
	}
	return clampSensitivity(int16(min(max(v, math.MinInt16), math.MaxInt16))), nil
}

// ParseSensitivityPair parses an "x" or "x,y" sensitivity expression. A
// single value applies to both axes.
func ParseSensitivityPair(s string) (x, y int16, err error) {
	parts := strings.SplitN(s, ",", 2)
	x, err = ParseSensitivity(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return x, x, nil
	}
	y, err = ParseSensitivity(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func clampSensitivity(v int16) int16 {
	if v > sensitivityUserMax {
		return sensitivityUserMax
	}
	if v < -sensitivityUserMax {
		return -sensitivityUserMax
	}
	return v
}

// Settings is the runtime mouse configuration shared by the driver and CLI.
type Settings struct {
	Immediate    bool   `json:"immediate" yaml:"immediate" toml:"immediate" help:"Update cursor position immediately on mouse events instead of at the sampling rate." default:"false"`
	RawInput     bool   `json:"raw_input" yaml:"raw_input" toml:"raw_input" help:"Feed host mouse input to the guest without host acceleration applied." default:"true" negatable:""`
	Sensitivity  string `json:"sensitivity" yaml:"sensitivity" toml:"sensitivity" help:"Mouse sensitivity, as a multiplier (e.g. 1.5) or internal -99..99 value; x or x,y." default:"1.0"`
	MinRateHz    uint16 `json:"min_rate_hz" yaml:"min_rate_hz" toml:"min_rate_hz" help:"Minimum sampling rate in Hz forced on the emulated mouse (0 = no minimum)." default:"0"`
	PS2Model     string `json:"ps2_model" yaml:"ps2_model" toml:"ps2_model" help:"Emulated PS/2 mouse model (standard, intellimouse)." default:"intellimouse"`
	SerialModel  string `json:"serial_model" yaml:"serial_model" toml:"serial_model" help:"Emulated serial mouse model (2button, 3button, wheel, msm, and +msm variants)." default:"wheel"`
	DriverEnable bool   `json:"driver_enable" yaml:"driver_enable" toml:"driver_enable" help:"Expose the built-in DOS mouse driver to the guest." default:"true" negatable:""`
}

// Validate checks every field that has a restricted value set.
func (s *Settings) Validate() error {
	if _, _, err := ParseSensitivityPair(s.Sensitivity); err != nil {
		return err
	}
	if err := ValidateMinRate(s.MinRateHz); err != nil {
		return err
	}
	if _, err := ParsePS2Model(s.PS2Model); err != nil {
		return err
	}
	if _, _, err := ParseSerialModel(s.SerialModel); err != nil {
		return err
	}
	return nil
}
