// Command reconstruction runs a minimal barrier-impact scenario: a
// passenger car accelerates under its powertrain, strikes a fixed barrier,
// and the contact solver resolves the impact. It stands in for the full
// simulation driver, which owns integration and collision detection.
package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact"
	"github.com/reconlabs/impact/body"
	"github.com/reconlabs/impact/constraint"
	"github.com/reconlabs/impact/powertrain"
)

const (
	dt          = 1.0 / 60.0
	carMass     = 1400.0 // kg
	wheelRadius = 0.31   // m
)

func main() {
	world := impact.NewWorld()

	car := body.NewBody(
		body.Transform{Position: mgl64.Vec3{-30, 0.7, 0}, Rotation: mgl64.QuatIdent()},
		carMass,
		body.SolidBoxInertia(carMass, mgl64.Vec3{2.2, 0.7, 0.9}),
	)
	barrier := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{0, 1, 0}})
	world.AddBody(car)
	world.AddBody(barrier)

	pt := powertrain.PassengerCar()

	// Acceleration phase: full throttle, torque to the driven wheels
	for tick := 0; tick < 360; tick++ {
		wheelTorque := pt.Update(dt, 1.0, 0.0)
		force := wheelTorque / wheelRadius

		car.LinearVelocity = car.LinearVelocity.Add(mgl64.Vec3{force * dt / carMass, 0, 0})
		car.Transform.Position = car.Transform.Position.Add(car.LinearVelocity.Mul(dt))
	}

	fmt.Printf("at barrier: %.1f m/s, gear %d, %.0f rpm\n",
		car.LinearVelocity.X(), pt.Transmission.CurrentGear, pt.Engine.RPM)

	// Impact: one frontal contact against the barrier, iterated to
	// convergence the way the driver's tick loop would
	front := car.Transform.Position.Add(mgl64.Vec3{2.2, 0, 0})
	contact := &constraint.ContactConstraint{
		BodyA:       car,
		BodyB:       barrier,
		PointA:      front,
		PointB:      front,
		Normal:      mgl64.Vec3{1, 0, 0},
		Penetration: 0.05,
		Restitution: 0.1,
		Friction:    0.7,
	}
	world.Contacts = []*constraint.ContactConstraint{contact}

	preKE := kineticEnergy(car)
	if err := world.SolveConstraints(dt); err != nil {
		log.Printf("skipped constraints: %v", err)
	}
	postKE := kineticEnergy(car)

	fmt.Printf("impact impulse: %.0f N·s\n", contact.AccumulatedNormalImpulse)
	fmt.Printf("post-impact: %.1f m/s, dissipated %.0f J\n", car.LinearVelocity.X(), preKE-postKE)
}

func kineticEnergy(rb *body.RigidBody) float64 {
	v := rb.LinearVelocity.Len()
	return 0.5 * v * v / rb.InverseMass
}
