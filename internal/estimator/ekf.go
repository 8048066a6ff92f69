package estimator

import "math"

// Filter tuning. Process noise trusts the current state to move faster than
// the resistance state; resistance drifts slowly as the cell ages and heats.
const (
	initialCurrent    = 0.0
	initialResistance = 0.3

	processNoiseCurrent    = 0.01
	processNoiseResistance = 0.001
	measurementNoise       = 0.1

	// MinResistance is the lower physical bound on the internal resistance
	// estimate. The state is projected onto it after every update.
	MinResistance = 0.05
)

// SagFilter is a two-state extended Kalman filter that infers instantaneous
// current draw and battery internal resistance from terminal voltage sag.
// Neither quantity is measured directly: the only measurement is the drop
// between the open-circuit voltage estimate and the terminal voltage, which
// the filter models as I*R and linearizes around the current belief.
//
// The dynamics are a random walk, so prediction leaves the state untouched
// and only inflates the covariance.
type SagFilter struct {
	// state vector [I, R]
	x [2]float64
	// covariance P
	p [2][2]float64
	// process noise Q
	q [2][2]float64
	// measurement noise variance
	r float64
}

// NewSagFilter returns a filter with a neutral belief: zero current, a
// typical pack resistance, and unit covariance.
func NewSagFilter() *SagFilter {
	return &SagFilter{
		x: [2]float64{initialCurrent, initialResistance},
		p: [2][2]float64{{1, 0}, {0, 1}},
		q: [2][2]float64{{processNoiseCurrent, 0}, {0, processNoiseResistance}},
		r: measurementNoise,
	}
}

// Update folds one voltage reading into the belief and returns the new
// current estimate. The sag measurement is clamped at zero before use: a
// terminal voltage above the OCV estimate is sensor noise, not charge flowing
// backwards.
//
// After the update the state is projected onto the physical region (I >= 0,
// R >= MinResistance). The projection is not fed back into the covariance,
// so repeated clamping can leave the filter statistically overconfident.
func (f *SagFilter) Update(terminalV, ocvEstimate float64) float64 {
	sag := math.Max(0, ocvEstimate-terminalV)

	// Predict: random walk, P = P + Q.
	f.p[0][0] += f.q[0][0]
	f.p[0][1] += f.q[0][1]
	f.p[1][0] += f.q[1][0]
	f.p[1][1] += f.q[1][1]

	// Linearize sag = I*R around the predicted state: H = [R, I].
	h0 := f.x[1]
	h1 := f.x[0]

	// Innovation covariance S = H P H^T + r (scalar).
	ph0 := f.p[0][0]*h0 + f.p[0][1]*h1
	ph1 := f.p[1][0]*h0 + f.p[1][1]*h1
	s := h0*ph0 + h1*ph1 + f.r

	// Gain K = P H^T / S.
	k0 := ph0 / s
	k1 := ph1 / s

	// Innovation against the predicted measurement.
	y := sag - f.x[0]*f.x[1]

	f.x[0] += k0 * y
	f.x[1] += k1 * y

	// P = P - outer(K, H) * S.
	f.p[0][0] -= k0 * h0 * s
	f.p[0][1] -= k0 * h1 * s
	f.p[1][0] -= k1 * h0 * s
	f.p[1][1] -= k1 * h1 * s

	// Project onto the physical region.
	f.x[0] = math.Max(0, f.x[0])
	f.x[1] = math.Max(MinResistance, f.x[1])

	return f.x[0]
}

// Current returns the latest current-draw estimate in amps.
func (f *SagFilter) Current() float64 {
	return f.x[0]
}

// Resistance returns the latest internal-resistance estimate in ohms.
func (f *SagFilter) Resistance() float64 {
	return f.x[1]
}
