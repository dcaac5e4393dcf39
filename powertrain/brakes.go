package powertrain

// BrakingSystem fixes the total brake torque and its static front/rear
// distribution. ABS is recorded but carries no control logic here.
type BrakingSystem struct {
	MaxBrakeTorque float64 // N·m at full pressure, total over all wheels
	FrontBias      float64 // fraction of torque on the front axle, [0, 1]
	ABS            bool
}

// FrontBrakeTorque returns the brake torque per front wheel at the given
// pressure, with the front-axle share split over two wheels.
func (b BrakingSystem) FrontBrakeTorque(pressure float64) float64 {
	return b.MaxBrakeTorque * clamp01(pressure) * b.FrontBias / 2
}

// RearBrakeTorque returns the brake torque per rear wheel at the given
// pressure, with the rear-axle share split over two wheels.
func (b BrakingSystem) RearBrakeTorque(pressure float64) float64 {
	return b.MaxBrakeTorque * clamp01(pressure) * (1 - b.FrontBias) / 2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
