package powertrain

// Drivetrain identifies which axle receives engine torque
type Drivetrain int

const (
	// FWD drives the front axle
	FWD Drivetrain = iota
	// RWD drives the rear axle
	RWD
	// AWD drives all four wheels
	AWD
)

func (d Drivetrain) String() string {
	switch d {
	case FWD:
		return "FWD"
	case RWD:
		return "RWD"
	case AWD:
		return "AWD"
	}
	return "unknown"
}

// DrivenWheels returns how many wheels receive engine torque
func (d Drivetrain) DrivenWheels() int {
	if d == AWD {
		return 4
	}
	return 2
}

// Powertrain composes an engine, a transmission, a drivetrain layout and a
// braking system into the per-step wheel torque of one vehicle. One
// instance per vehicle, constructed at scenario setup; Update is the sole
// mutator of engine RPM and gear state.
type Powertrain struct {
	Engine            Engine
	Transmission      Transmission
	Drivetrain        Drivetrain
	DifferentialRatio float64
	Brakes            BrakingSystem

	// Driver inputs, clamped to [0, 1] on every Update
	Throttle      float64
	BrakePressure float64
}

// Update advances engine and transmission by one step with the given
// driver inputs and returns the total wheel torque:
// engine torque × gear ratio × differential ratio × efficiency.
func (p *Powertrain) Update(dt, throttle, brake float64) float64 {
	p.Throttle = clamp01(throttle)
	p.BrakePressure = clamp01(brake)

	engineTorque := p.Engine.Update(dt, p.Throttle)
	ratio, efficiency, _ := p.Transmission.Update(dt, p.Engine.RPM)

	return engineTorque * ratio * p.DifferentialRatio * efficiency
}

// BrakeTorquePerWheel returns the brake torque on each wheel at the current
// pressure, split evenly across all four wheels regardless of drivetrain.
// The bias-weighted per-axle figures are available from Brakes directly.
func (p *Powertrain) BrakeTorquePerWheel() float64 {
	return p.Brakes.MaxBrakeTorque * p.BrakePressure / 4
}

// TorquePerDrivenWheel splits a total wheel torque over the driven wheels
func (p *Powertrain) TorquePerDrivenWheel(total float64) float64 {
	return total / float64(p.Drivetrain.DrivenWheels())
}

// PassengerCar is a front-wheel-drive sedan with an automatic gearbox
func PassengerCar() *Powertrain {
	return &Powertrain{
		Engine:            PassengerCarEngine(),
		Transmission:      Automatic5Speed(),
		Drivetrain:        FWD,
		DifferentialRatio: 3.9,
		Brakes:            BrakingSystem{MaxBrakeTorque: 3000, FrontBias: 0.6, ABS: true},
	}
}

// SportsCar is a rear-wheel-drive coupe with a six-speed manual
func SportsCar() *Powertrain {
	return &Powertrain{
		Engine:            SportsCarEngine(),
		Transmission:      Manual6Speed(),
		Drivetrain:        RWD,
		DifferentialRatio: 3.42,
		Brakes:            BrakingSystem{MaxBrakeTorque: 4500, FrontBias: 0.62, ABS: true},
	}
}

// SUV is an all-wheel-drive truck with a four-speed automatic
func SUV() *Powertrain {
	return &Powertrain{
		Engine:            SUVEngine(),
		Transmission:      Automatic4Speed(),
		Drivetrain:        AWD,
		DifferentialRatio: 4.1,
		Brakes:            BrakingSystem{MaxBrakeTorque: 3800, FrontBias: 0.55, ABS: true},
	}
}
