package dosdriver_test

import (
	"testing"

	"github.com/emucore/dosmouse/dosdriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateBlobLength(t *testing.T) {
	var s dosdriver.State
	blob, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, blob, dosdriver.StateSize)
}

func TestStateRoundTrip(t *testing.T) {
	s := dosdriver.State{
		Enabled:              true,
		WheelAPI:             true,
		MickeyCounterX:       -1234,
		MickeyCounterY:       4321,
		MickeyDeltaX:         0.25,
		MickeysPerPixelX:     1.5,
		DoubleSpeedThreshold: 32,
		MaxPosX:              639,
		MaxPosY:              479,
		Hidden:               2,
		CallbackMask:         0x7f,
		CallbackSeg:          0x1234,
		CallbackOff:          0x5678,
	}
	s.TimesPressed[1] = 7
	s.UserDefScreenMask[3] = 0xaaaa

	blob, err := s.MarshalBinary()
	require.NoError(t, err)

	var got dosdriver.State
	require.NoError(t, got.UnmarshalBinary(blob))
	assert.Equal(t, s, got)
}

func TestStateUnmarshalShortInput(t *testing.T) {
	var s dosdriver.State
	err := s.UnmarshalBinary(make([]byte, dosdriver.StateSize-1))
	assert.Error(t, err)
}
