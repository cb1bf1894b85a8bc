package gamemath

import "math"

// ChargeWindow is the span the charge timer is clamped to.
func ChargeWindow(minSeconds, maxSeconds float64) float64 {
	return math.Max(minSeconds, maxSeconds)
}

// AccumulateCharge advances the charge timer by dt. A non-positive window
// accumulates without bound.
func AccumulateCharge(timer, dt, window float64) float64 {
	timer += dt
	if window > 0 && timer > window {
		timer = window
	}
	return timer
}

// NormalizedCharge maps the timer onto [0, 1] over the window.
func NormalizedCharge(timer, window float64) float64 {
	if window <= 0 {
		return 0
	}
	return Saturate(timer / window)
}

// ThrowCharge normalizes the timer for throw strength. Charge only counts past
// the minimum: with no maximum there is no charge, with min == max the throw
// is either uncharged or fully charged, otherwise charge ramps from min to max.
func ThrowCharge(timer, minSeconds, maxSeconds float64) float64 {
	switch {
	case maxSeconds <= 0:
		return 0
	case minSeconds >= maxSeconds:
		if timer >= maxSeconds {
			return 1
		}
		return 0
	default:
		return Saturate((timer - minSeconds) / (maxSeconds - minSeconds))
	}
}

// ThrowImpulse scales the base impulse by charge. Both factors are floored at
// one so a tap still throws.
func ThrowImpulse(baseImpulse, charge, chargeMultiplier float64) float64 {
	return math.Max(1, baseImpulse) * math.Max(1, 1+charge*chargeMultiplier)
}

// ThrowSpeed clamps an impulse to the configured maximum speed (0 = none).
func ThrowSpeed(impulse, maxSpeed float64) float64 {
	if maxSpeed > 0 && impulse > maxSpeed {
		return maxSpeed
	}
	return impulse
}

// QueuedThrowSpeed is the release speed of a queued throw.
func QueuedThrowSpeed(minSpeed, maxSpeed, charge float64) float64 {
	return Lerp(minSpeed, maxSpeed, Saturate(charge))
}
