package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact/body"
)

const (
	// restitutionThreshold is the approach speed (m/s) below which no bounce
	// is produced. Suppresses restitution jitter on near-rest contacts.
	restitutionThreshold = 1.0

	// minTangentSpeed is the relative tangential speed (m/s) below which no
	// friction impulse is computed.
	minTangentSpeed = 1e-6
)

// ContactConstraint resolves non-penetration and Coulomb friction between
// two bodies at one contact point. Contacts are created fresh each tick by
// the collision-detection pass; the accumulated impulse fields persist
// across the solver iterations of that tick so that clamping stays correct,
// and may be seeded from the previous tick's matching contact to warm-start
// the solve.
type ContactConstraint struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	// Contact points in world space, one per body. They may diverge by up
	// to the penetration depth.
	PointA mgl64.Vec3
	PointB mgl64.Vec3

	// Normal points from BodyA towards BodyB
	Normal mgl64.Vec3

	// Penetration is the signed overlap depth; positive means overlapping
	Penetration float64

	Restitution float64 // 0 = no rebound, 1 = perfect restitution
	Friction    float64 // Coulomb coefficient, >= 0

	// Running impulse totals. Clamping operates on these, and only the
	// delta since the last clamp is ever applied to the bodies.
	AccumulatedNormalImpulse  float64
	AccumulatedTangentImpulse mgl64.Vec3
}

// Solve applies one normal and one friction impulse to both bodies.
//
// baumgarteFactor controls how much of the penetration beyond contactSlop
// is fed back as a separating bias velocity each step; correcting the full
// overlap in one step would inject energy and make resting stacks pop.
//
// A degenerate configuration (near-zero effective mass, i.e. both bodies
// immovable along the normal) is a silent no-op, not an error.
func (c *ContactConstraint) Solve(dt, baumgarteFactor, contactSlop float64) error {
	a := c.BodyA
	b := c.BodyB

	rA := c.PointA.Sub(a.Transform.Position)
	rB := c.PointB.Sub(b.Transform.Position)

	invMassA := a.EffectiveInverseMass()
	invMassB := b.EffectiveInverseMass()
	iaInv := a.WorldInverseInertia()
	ibInv := b.WorldInverseInertia()

	relativeVel := b.VelocityAtPoint(c.PointB).Sub(a.VelocityAtPoint(c.PointA))
	normalVel := relativeVel.Dot(c.Normal)

	rACrossN := rA.Cross(c.Normal)
	rBCrossN := rB.Cross(c.Normal)
	effectiveMass := invMassA + invMassB +
		iaInv.Mul3x1(rACrossN).Dot(rACrossN) +
		ibInv.Mul3x1(rBCrossN).Dot(rBCrossN)

	if effectiveMass < minEffectiveMass {
		return nil
	}

	// Positional bias: push out a fraction of the overlap beyond the slop
	var bias float64
	if c.Penetration > contactSlop {
		bias = baumgarteFactor * (c.Penetration - contactSlop) / dt
	}

	// Restitution bias, only for fast-approaching contacts
	if normalVel < -restitutionThreshold {
		bias += -c.Restitution * normalVel
	}

	// Contacts may only push. Clamp the running total, apply the delta.
	lambda := -(normalVel - bias) / effectiveMass
	oldNormal := c.AccumulatedNormalImpulse
	c.AccumulatedNormalImpulse = math.Max(0, oldNormal+lambda)
	applyImpulses(a, b, rA, rB, c.Normal.Mul(c.AccumulatedNormalImpulse-oldNormal))

	if c.Friction <= 0 {
		return nil
	}

	// Friction acts on the post-normal-impulse velocity
	relativeVel = b.VelocityAtPoint(c.PointB).Sub(a.VelocityAtPoint(c.PointA))
	normalVel = relativeVel.Dot(c.Normal)

	tangentVel := relativeVel.Sub(c.Normal.Mul(normalVel))
	tangentSpeed := tangentVel.Len()
	if tangentSpeed <= minTangentSpeed {
		return nil
	}
	tangentDir := tangentVel.Mul(1.0 / tangentSpeed)

	rACrossT := rA.Cross(tangentDir)
	rBCrossT := rB.Cross(tangentDir)
	effectiveMassTangent := invMassA + invMassB +
		iaInv.Mul3x1(rACrossT).Dot(rACrossT) +
		ibInv.Mul3x1(rBCrossT).Dot(rBCrossT)

	if effectiveMassTangent < minEffectiveMass {
		return nil
	}

	// Impulse that would zero the tangential velocity, bounded by the
	// friction cone: |tangent impulse| <= μ * normal impulse
	lambdaTangent := -tangentSpeed / effectiveMassTangent
	maxFriction := c.Friction * c.AccumulatedNormalImpulse

	oldTangent := c.AccumulatedTangentImpulse
	newTangent := oldTangent.Add(tangentDir.Mul(lambdaTangent))
	if l := newTangent.Len(); l > maxFriction {
		if maxFriction > 0 {
			newTangent = newTangent.Mul(maxFriction / l)
		} else {
			newTangent = mgl64.Vec3{}
		}
	}
	c.AccumulatedTangentImpulse = newTangent
	applyImpulses(a, b, rA, rB, newTangent.Sub(oldTangent))

	return nil
}
