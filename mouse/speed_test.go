package mouse_test

import (
	"testing"
	"time"

	"github.com/emucore/dosmouse/mouse"
	"github.com/stretchr/testify/assert"
)

func TestSpeedEstimator(t *testing.T) {
	now := time.Unix(1000, 0)
	e := mouse.NewSpeedEstimator(1.0)
	e.SetClock(func() time.Time { return now })

	assert.Equal(t, float32(0), e.Speed())

	e.Update(10)
	now = now.Add(100 * time.Millisecond)
	e.Update(10)
	now = now.Add(100 * time.Millisecond)

	// 20 units over 200ms.
	assert.InDelta(t, 100.0, e.Speed(), 1.0)
}

func TestSpeedEstimatorWindowExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	e := mouse.NewSpeedEstimator(1.0)
	e.SetClock(func() time.Time { return now })

	e.Update(50)
	now = now.Add(time.Second)
	assert.Equal(t, float32(0), e.Speed(),
		"samples older than the window must not count")
}

func TestSpeedEstimatorScale(t *testing.T) {
	now := time.Unix(1000, 0)
	e := mouse.NewSpeedEstimator(2.0)
	e.SetClock(func() time.Time { return now })

	e.Update(10)
	now = now.Add(100 * time.Millisecond)
	assert.InDelta(t, 200.0, e.Speed(), 1.0)
}

func TestSpeedEstimatorReset(t *testing.T) {
	now := time.Unix(1000, 0)
	e := mouse.NewSpeedEstimator(1.0)
	e.SetClock(func() time.Time { return now })

	e.Update(10)
	e.Reset()
	assert.Equal(t, float32(0), e.Speed())
}
