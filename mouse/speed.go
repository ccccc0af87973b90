package mouse

import "time"

// Window over which mouse speed is averaged. Short enough to follow quick
// flicks, long enough to smooth out event-rate jitter.
const speedWindow = 400 * time.Millisecond

type speedSample struct {
	when time.Time
	dist float32
}

// SpeedEstimator measures pointer speed in scaled distance units per second
// from the stream of movement deltas. The scale is chosen by the caller so
// that, after dividing by the driver's double-speed threshold, 1.0 means
// "exactly at the threshold".
type SpeedEstimator struct {
	scale   float32
	samples []speedSample
	now     func() time.Time
}

// NewSpeedEstimator returns an estimator applying the given scale to each
// recorded distance.
func NewSpeedEstimator(scale float32) *SpeedEstimator {
	return &SpeedEstimator{scale: scale, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (e *SpeedEstimator) SetClock(now func() time.Time) {
	e.now = now
}

// Update records a movement distance at the current time.
func (e *SpeedEstimator) Update(dist float32) {
	t := e.now()
	e.prune(t)
	e.samples = append(e.samples, speedSample{when: t, dist: dist * e.scale})
}

// Speed returns the scaled distance per second over the measurement window.
func (e *SpeedEstimator) Speed() float32 {
	t := e.now()
	e.prune(t)
	if len(e.samples) == 0 {
		return 0
	}
	var sum float32
	for _, s := range e.samples {
		sum += s.dist
	}
	elapsed := t.Sub(e.samples[0].when)
	if elapsed < time.Millisecond {
		elapsed = time.Millisecond
	}
	return sum / float32(elapsed.Seconds())
}

// Reset drops all recorded samples.
func (e *SpeedEstimator) Reset() {
	e.samples = e.samples[:0]
}

func (e *SpeedEstimator) prune(t time.Time) {
	cutoff := t.Add(-speedWindow)
	i := 0
	for i < len(e.samples) && e.samples[i].when.Before(cutoff) {
		i++
	}
	if i > 0 {
		e.samples = append(e.samples[:0], e.samples[i:]...)
	}
}

// BallisticsCoeff maps a normalized pointer speed (1.0 = the double-speed
// threshold) to a movement multiplier, following the 2:1 scaling model of
// the PS/2 specification: movement below the threshold is attenuated,
// movement above is amplified up to twice the base rate.
func BallisticsCoeff(normSpeed float32) float32 {
	const (
		minCoeff = 0.5
		maxCoeff = 2.0
	)
	if normSpeed <= 0 {
		return minCoeff
	}
	// Linear between the salient points (0, 0.5) .. (1, 1) .. (3, 2).
	var coeff float32
	if normSpeed < 1 {
		coeff = minCoeff + normSpeed*(1-minCoeff)
	} else {
		coeff = 1 + (normSpeed-1)*(maxCoeff-1)/2
	}
	if coeff > maxCoeff {
		return maxCoeff
	}
	return coeff
}
