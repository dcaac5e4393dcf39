package powertrain

// Automatic shift thresholds, crankshaft RPM
const (
	upshiftRPM   = 5500.0
	downshiftRPM = 2000.0
)

// GearNeutral and GearReverse are the special gear indices; forward gears
// count from 1.
const (
	GearReverse = -1
	GearNeutral = 0
)

// Transmission selects a gear ratio between engine and differential.
// Gear state changes either through explicit ShiftUp/ShiftDown calls
// (manual) or through the built-in RPM thresholds (automatic). Every gear
// change resets TimeSinceShift; while it is below ShiftTime the
// transmission is still engaging and transmits at half efficiency.
type Transmission struct {
	GearRatios   []float64 // forward ratios, gear 1 first
	ReverseRatio float64   // stored positive; applied negated
	Efficiency   float64
	ShiftTime    float64 // s
	Automatic    bool

	CurrentGear    int // -1 reverse, 0 neutral, >= 1 forward
	TimeSinceShift float64
}

// CurrentGearRatio returns the ratio of the engaged gear: zero in neutral,
// the negated reverse ratio in reverse.
func (t *Transmission) CurrentGearRatio() float64 {
	switch {
	case t.CurrentGear == GearNeutral:
		return 0
	case t.CurrentGear == GearReverse:
		return -t.ReverseRatio
	default:
		return t.GearRatios[t.CurrentGear-1]
	}
}

// ShiftUp engages the next gear up (reverse → neutral → 1 → 2 → ...).
// No-op at the top gear.
func (t *Transmission) ShiftUp() {
	if t.CurrentGear >= len(t.GearRatios) {
		return
	}

	t.CurrentGear++
	t.TimeSinceShift = 0
}

// ShiftDown engages the next gear down (... → 2 → 1 → neutral → reverse).
// No-op in reverse.
func (t *Transmission) ShiftDown() {
	if t.CurrentGear <= GearReverse {
		return
	}

	t.CurrentGear--
	t.TimeSinceShift = 0
}

// Update advances the shift timer and, for automatic transmissions, applies
// the RPM shift thresholds. Returns the engaged ratio, the effective
// efficiency (halved while a shift is still engaging) and the gear index.
func (t *Transmission) Update(dt, engineRPM float64) (ratio, efficiency float64, gear int) {
	t.TimeSinceShift += dt

	if t.Automatic {
		switch {
		case engineRPM > upshiftRPM && t.CurrentGear >= 1 && t.CurrentGear < len(t.GearRatios):
			t.CurrentGear++
			t.TimeSinceShift = 0
		case engineRPM < downshiftRPM && t.CurrentGear > 1:
			t.CurrentGear--
			t.TimeSinceShift = 0
		}
	}

	efficiency = t.Efficiency
	if t.TimeSinceShift < t.ShiftTime {
		efficiency *= 0.5
	}

	return t.CurrentGearRatio(), efficiency, t.CurrentGear
}

// Manual6Speed is a close-ratio six-speed manual gearbox, starting in first
func Manual6Speed() Transmission {
	return Transmission{
		GearRatios:     []float64{3.8, 2.2, 1.5, 1.1, 0.85, 0.65},
		ReverseRatio:   3.5,
		Efficiency:     0.92,
		ShiftTime:      0.3,
		CurrentGear:    1,
		TimeSinceShift: 0.3,
	}
}

// Automatic5Speed is a passenger-car automatic, starting in first
func Automatic5Speed() Transmission {
	return Transmission{
		GearRatios:     []float64{3.5, 2.1, 1.4, 1.0, 0.75},
		ReverseRatio:   3.2,
		Efficiency:     0.85,
		ShiftTime:      0.5,
		Automatic:      true,
		CurrentGear:    1,
		TimeSinceShift: 0.5,
	}
}

// Automatic4Speed is a truck automatic with tall gears, starting in first
func Automatic4Speed() Transmission {
	return Transmission{
		GearRatios:     []float64{3.0, 1.9, 1.3, 0.9},
		ReverseRatio:   2.9,
		Efficiency:     0.82,
		ShiftTime:      0.6,
		Automatic:      true,
		CurrentGear:    1,
		TimeSinceShift: 0.6,
	}
}
