package config_test

import (
	"testing"

	"github.com/emucore/dosmouse/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSensitivity(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int16
		wantErr bool
	}

	cases := []testCase{
		{name: "empty means neutral", input: "", want: 50},
		{name: "neutral multiplier", input: "1.0", want: 50},
		{name: "double", input: "2.0", want: 60},
		{name: "half", input: "0.5", want: 40},
		{name: "quadruple", input: "4.0", want: 70},
		{name: "zero multiplier", input: "0.0", want: 0},
		{name: "inverted axis", input: "-1.0", want: -50},
		{name: "plain integer", input: "75", want: 75},
		{name: "integer clamped high", input: "200", want: 99},
		{name: "integer clamped low", input: "-150", want: -99},
		{name: "garbage", input: "fast", wantErr: true},
		{name: "garbage float", input: "1.2.3", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := config.ParseSensitivity(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSensitivityPair(t *testing.T) {
	x, y, err := config.ParseSensitivityPair("2.0, 0.5")
	require.NoError(t, err)
	assert.Equal(t, int16(60), x)
	assert.Equal(t, int16(40), y)

	// A single value covers both axes.
	x, y, err = config.ParseSensitivityPair("1.0")
	require.NoError(t, err)
	assert.Equal(t, int16(50), x)
	assert.Equal(t, int16(50), y)

	_, _, err = config.ParseSensitivityPair("1.0,oops")
	assert.Error(t, err)
}

func TestValidateMinRate(t *testing.T) {
	assert.NoError(t, config.ValidateMinRate(0))
	assert.NoError(t, config.ValidateMinRate(125))
	assert.NoError(t, config.ValidateMinRate(500))
	assert.Error(t, config.ValidateMinRate(90))
	assert.Error(t, config.ValidateMinRate(1000))
}

func TestParseSerialModel(t *testing.T) {
	type testCase struct {
		input       string
		wantModel   config.COMModel
		wantAutoMSM bool
	}

	cases := []testCase{
		{input: "2button", wantModel: config.COMMicrosoft},
		{input: "3button", wantModel: config.COMLogitech},
		{input: "wheel", wantModel: config.COMWheel},
		{input: "msm", wantModel: config.COMMouseSystems},
		{input: "2button+msm", wantModel: config.COMMicrosoft, wantAutoMSM: true},
		{input: "3button+msm", wantModel: config.COMLogitech, wantAutoMSM: true},
		{input: "wheel+msm", wantModel: config.COMWheel, wantAutoMSM: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			model, autoMSM, err := config.ParseSerialModel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.wantModel, model)
			assert.Equal(t, tc.wantAutoMSM, autoMSM)
		})
	}

	_, _, err := config.ParseSerialModel("trackball")
	assert.Error(t, err)
}

func TestParsePS2Model(t *testing.T) {
	m, err := config.ParsePS2Model("intellimouse")
	require.NoError(t, err)
	assert.Equal(t, config.PS2IntelliMouse, m)

	_, err = config.ParsePS2Model("serial")
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	s := config.Settings{
		Sensitivity: "1.0",
		MinRateHz:   125,
		PS2Model:    "intellimouse",
		SerialModel: "wheel",
	}
	assert.NoError(t, s.Validate())

	s.MinRateHz = 77
	assert.Error(t, s.Validate())

	s.MinRateHz = 0
	s.Sensitivity = "broken"
	assert.Error(t, s.Validate())
}
