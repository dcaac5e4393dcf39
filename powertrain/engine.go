package powertrain

import "math"

// engineResponseRate scales how fast RPM relaxes toward the throttle
// target, divided by the flywheel inertia (heavier flywheels rev slower).
const engineResponseRate = 1.5

// Engine models an internal-combustion engine through a two-segment
// piecewise-linear torque curve: rising from zero at idle to MaxTorque at
// MaxTorqueRPM, then falling to 70% of MaxTorque approaching redline.
type Engine struct {
	MaxPower     float64 // W
	MaxPowerRPM  float64
	MaxTorque    float64 // N·m
	MaxTorqueRPM float64
	IdleRPM      float64
	RedlineRPM   float64
	Inertia      float64 // flywheel inertia, kg·m²

	// RPM is the current crankshaft speed, mutated by Update
	RPM float64
}

// TorqueAt returns the curve torque at the given RPM, without throttle.
// Zero at and below idle, zero at and above redline (rev limiter).
func (e *Engine) TorqueAt(rpm float64) float64 {
	if rpm <= e.IdleRPM || rpm >= e.RedlineRPM {
		return 0
	}

	if rpm <= e.MaxTorqueRPM {
		return e.MaxTorque * (rpm - e.IdleRPM) / (e.MaxTorqueRPM - e.IdleRPM)
	}

	// falls off linearly to 70% of peak at redline
	fall := (rpm - e.MaxTorqueRPM) / (e.RedlineRPM - e.MaxTorqueRPM)
	return e.MaxTorque * (1 - 0.3*fall)
}

// Update advances the engine by one step and returns the produced torque:
// the curve torque at the current RPM scaled by throttle. RPM relaxes
// toward the throttle target between idle and redline, at a rate damped by
// the flywheel inertia.
func (e *Engine) Update(dt, throttle float64) float64 {
	torque := e.TorqueAt(e.RPM) * throttle

	target := e.IdleRPM + throttle*(e.RedlineRPM-e.IdleRPM)
	rate := engineResponseRate / math.Max(e.Inertia, 1e-3)
	e.RPM += (target - e.RPM) * math.Min(1, rate*dt)
	e.RPM = math.Min(math.Max(e.RPM, e.IdleRPM), e.RedlineRPM)

	return torque
}

// PassengerCarEngine is a mid-size sedan engine
func PassengerCarEngine() Engine {
	return Engine{
		MaxPower:     120e3,
		MaxPowerRPM:  5500,
		MaxTorque:    250.0,
		MaxTorqueRPM: 3500,
		IdleRPM:      800,
		RedlineRPM:   6500,
		Inertia:      0.25,
		RPM:          800,
	}
}

// SportsCarEngine is a high-revving performance engine
func SportsCarEngine() Engine {
	return Engine{
		MaxPower:     350e3,
		MaxPowerRPM:  7000,
		MaxTorque:    500.0,
		MaxTorqueRPM: 4500,
		IdleRPM:      900,
		RedlineRPM:   8000,
		Inertia:      0.18,
		RPM:          900,
	}
}

// SUVEngine is a low-revving truck engine with a heavy flywheel
func SUVEngine() Engine {
	return Engine{
		MaxPower:     180e3,
		MaxPowerRPM:  5000,
		MaxTorque:    400.0,
		MaxTorqueRPM: 3000,
		IdleRPM:      750,
		RedlineRPM:   5800,
		Inertia:      0.35,
		RPM:          750,
	}
}
